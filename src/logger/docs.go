// Copyright (c) 2026 OpsForge Labs All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package logger provides the logging surface of vcenter-cert-rotate:
// a plain CLI logger for interactive runs and a zap-backed structured
// logger for the log file of unattended runs, both behind one interface.
package logger
