// Copyright (c) 2026 OpsForge Labs All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package vcapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// sessionPath is the session creation/deletion endpoint.
const sessionPath = "/com/vmware/cis/session"

// ErrSessionClosed indicates an API call on a session that has already been
// logged out. Hitting it is a sequencing bug in the caller, not a remote
// failure.
var ErrSessionClosed = errors.New("vcapi: session already terminated")

// Session is an authenticated handle on the remote API, created by
// [Client.Login] and invalidated by [Session.Logout]. It is bound to the
// client that created it and is good for exactly one run.
type Session struct {
	c      *Client
	token  string
	closed bool
}

// Login authenticates against the session endpoint with HTTP basic auth and
// returns a live Session carrying the opaque token the endpoint issued.
// Any non-2xx response fails with an [*APIError] carrying the response body.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	status, body, err := c.do(ctx, http.MethodPost, sessionPath, "", nil, func(req *http.Request) {
		req.SetBasicAuth(username, password)
	})
	if err != nil {
		return nil, err
	}
	if !success(status) {
		return nil, &APIError{Op: "login", StatusCode: status, Body: string(body)}
	}

	var result struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("vcapi: decode session token: %w", err)
	}
	if result.Value == "" {
		return nil, &APIError{Op: "login", StatusCode: status, Body: "empty session token in response"}
	}

	return &Session{c: c, token: result.Value}, nil
}

// Logout deletes the remote session. The in-memory session is marked
// unusable even when the remote call fails; there is nothing more a caller
// can do with it either way.
func (s *Session) Logout(ctx context.Context) error {
	if s.closed {
		return ErrSessionClosed
	}

	status, body, err := s.c.do(ctx, http.MethodDelete, sessionPath, s.token, nil, nil)
	s.closed = true
	s.token = ""
	if err != nil {
		return err
	}
	if !success(status) {
		return &APIError{Op: "logout", StatusCode: status, Body: string(body)}
	}
	return nil
}

// WithSession runs fn inside a session scope: login, fn, logout. Logout is
// attempted exactly once on every exit path once login has succeeded,
// including when fn fails; a failed login short-circuits before anything
// else. The error of fn wins over a logout error, with the logout failure
// noted alongside.
func (c *Client) WithSession(ctx context.Context, username, password string, fn func(context.Context, *Session) error) error {
	session, err := c.Login(ctx, username, password)
	if err != nil {
		return err
	}

	fnErr := fn(ctx, session)
	logoutErr := session.Logout(ctx)

	if fnErr != nil {
		if logoutErr != nil {
			return fmt.Errorf("%w (session cleanup also failed: %v)", fnErr, logoutErr)
		}
		return fnErr
	}
	return logoutErr
}
