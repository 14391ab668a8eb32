// Copyright (c) 2026 OpsForge Labs All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/opsforge-io/vcenter-cert-rotate/src/config"
	"github.com/opsforge-io/vcenter-cert-rotate/src/internal/rotate"
	x509chain "github.com/opsforge-io/vcenter-cert-rotate/src/internal/x509/chain"
	"github.com/opsforge-io/vcenter-cert-rotate/src/logger"
	"github.com/spf13/cobra"
)

var (
	host           string
	credentialFile string
	certFile       string
	keyFile        string
	chainFile      string
	caBundleFile   string
	insecure       bool
	fetchMissing   bool
	dryRun         bool
	timeoutSecs    int
	showTree       bool
	showTable      bool
	logFile        string
	configFile     string
)

var (
	// ErrHostRequired indicates a live run without a management endpoint.
	ErrHostRequired = errors.New("--host is required")

	// ErrCertAndKeyRequired indicates a run without the new TLS identity.
	ErrCertAndKeyRequired = errors.New("--cert and --key are required")

	// ErrCredentialsRequired indicates a live run without a credential file.
	ErrCredentialsRequired = errors.New("--credentials is required")
)

// OperationPerformed indicates whether a rotation run was started.
var OperationPerformed bool

// OperationPerformedSuccessfully indicates whether the run completed without error.
var OperationPerformedSuccessfully bool

// Execute runs the root command with the given context, version, and logger.
// It returns an error when chain construction or any API call fails; the
// caller maps that to a non-zero exit status.
func Execute(ctx context.Context, version string, log logger.Logger) error {
	rootCmd := &cobra.Command{
		Use:           "vcenter-cert-rotate",
		Short:         "Rotate the TLS certificate of a vCenter-style management endpoint",
		Long: `vcenter-cert-rotate assembles an ordered trust chain from a leaf
certificate and supplied intermediates, completing it from a local CA bundle
when needed, then replaces the endpoint's TLS identity through its
session-authenticated certificate-management API.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execRotate(cmd.Context(), cmd, version, log)
		},
	}
	rootCmd.SetContext(ctx)

	flags := rootCmd.Flags()
	flags.StringVar(&host, "host", "", "management endpoint, host or host:port")
	flags.StringVar(&credentialFile, "credentials", "", "file containing username:password on one line")
	flags.StringVar(&certFile, "cert", "", "leaf certificate PEM file")
	flags.StringVar(&keyFile, "key", "", "private key PEM file matching the leaf")
	flags.StringVar(&chainFile, "chain", "", "intermediate chain PEM file (optional)")
	flags.StringVar(&caBundleFile, "ca-bundle", "", "trusted CA bundle used to complete incomplete chains (default: system bundle)")
	flags.BoolVarP(&insecure, "insecure", "k", false, "disable TLS verification on the initial connection (insecure)")
	flags.BoolVar(&fetchMissing, "fetch-missing", false, "fetch missing issuers via their AIA URLs before falling back to the CA bundle")
	flags.BoolVar(&dryRun, "dry-run", false, "assemble and print the chain without touching the endpoint")
	flags.IntVar(&timeoutSecs, "timeout", 0, "per-call API timeout in seconds (default 30)")
	flags.BoolVarP(&showTree, "tree", "t", false, "print the resolved chain as an ASCII tree")
	flags.BoolVar(&showTable, "table", false, "print the resolved chain as a markdown table")
	flags.StringVar(&logFile, "log-file", "", "append structured JSON log entries to this file")
	flags.StringVar(&configFile, "config", "", "YAML or JSON configuration file (flags override file values)")

	return rootCmd.ExecuteContext(ctx)
}

// applyConfigFile fills unset flags from the configuration file.
func applyConfigFile(cmd *cobra.Command) error {
	if configFile == "" {
		return nil
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if !flags.Changed("host") && cfg.Host != "" {
		host = cfg.Host
	}
	if !flags.Changed("credentials") && cfg.Credentials != "" {
		credentialFile = cfg.Credentials
	}
	if !flags.Changed("cert") && cfg.Cert != "" {
		certFile = cfg.Cert
	}
	if !flags.Changed("key") && cfg.Key != "" {
		keyFile = cfg.Key
	}
	if !flags.Changed("chain") && cfg.Chain != "" {
		chainFile = cfg.Chain
	}
	if !flags.Changed("ca-bundle") && cfg.CABundle != "" {
		caBundleFile = cfg.CABundle
	}
	if !flags.Changed("insecure") && cfg.Insecure {
		insecure = true
	}
	if !flags.Changed("fetch-missing") && cfg.FetchMissing {
		fetchMissing = true
	}
	if !flags.Changed("timeout") && cfg.TimeoutSeconds > 0 {
		timeoutSecs = cfg.TimeoutSeconds
	}
	if !flags.Changed("log-file") && cfg.LogFile != "" {
		logFile = cfg.LogFile
	}
	return nil
}

// execRotate reads the input files and drives one rotation run.
func execRotate(ctx context.Context, cmd *cobra.Command, version string, log logger.Logger) error {
	if err := applyConfigFile(cmd); err != nil {
		return err
	}

	if host == "" && !dryRun {
		return ErrHostRequired
	}
	if certFile == "" || keyFile == "" {
		return ErrCertAndKeyRequired
	}
	if credentialFile == "" && !dryRun {
		return ErrCredentialsRequired
	}

	if logFile != "" {
		fileLog, closeLog, err := logger.NewFileLogger(logFile)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer closeLog()
		log = logger.Tee(log, fileLog)
	}

	leafPEM, err := os.ReadFile(certFile)
	if err != nil {
		return fmt.Errorf("read leaf certificate: %w", err)
	}
	keyPEM, err := os.ReadFile(keyFile)
	if err != nil {
		return fmt.Errorf("read private key: %w", err)
	}

	var intermediatesPEM []byte
	if chainFile != "" {
		if intermediatesPEM, err = os.ReadFile(chainFile); err != nil {
			return fmt.Errorf("read intermediate chain: %w", err)
		}
	}

	bundle, err := loadBundle()
	if err != nil {
		return err
	}

	var cred *config.Credential
	if credentialFile != "" {
		if cred, err = config.LoadCredential(credentialFile); err != nil {
			return err
		}
	} else {
		cred = &config.Credential{}
	}

	opts := rotate.Options{
		Host:             host,
		Username:         cred.Username,
		Password:         cred.Password,
		LeafPEM:          leafPEM,
		KeyPEM:           keyPEM,
		IntermediatesPEM: intermediatesPEM,
		Bundle:           bundle,
		Insecure:         insecure,
		FetchMissing:     fetchMissing,
		DryRun:           dryRun,
		Timeout:          time.Duration(timeoutSecs) * time.Second,
		Version:          version,
	}

	OperationPerformed = true
	report, err := rotate.Run(ctx, opts, log)
	if report != nil {
		printChain(report, log)
	}
	if err != nil {
		return err
	}

	if report.DryRun {
		log.Printf("dry run: would import %d trust anchor(s) and install %q on %s",
			len(report.Chain.TrustAnchors()), report.Chain.Leaf().Subject.CommonName, host)
	} else {
		log.Printf("imported %d trust anchor(s), installed new TLS identity on %s",
			report.Imported, host)
	}

	OperationPerformedSuccessfully = true
	return nil
}

// loadBundle loads the configured CA bundle, or the system bundle when none
// is configured. A missing system bundle is only fatal once the chain needs
// it, so the error is deferred to chain resolution by returning nil.
func loadBundle() (*x509chain.Bundle, error) {
	if caBundleFile != "" {
		return x509chain.LoadBundle(caBundleFile)
	}

	bundle, err := x509chain.LoadSystemBundle()
	if err != nil {
		return nil, nil
	}
	return bundle, nil
}

// printChain writes the requested chain visualization.
func printChain(report *rotate.Report, log logger.Logger) {
	if report.Chain == nil {
		return
	}
	if showTree {
		log.Println(report.Chain.RenderASCIITree())
	}
	if showTable {
		log.Println(report.Chain.RenderTable())
	}
}
