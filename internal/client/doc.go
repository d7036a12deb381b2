// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client runtime.
//
// Every invocation starts the session machine, waits until the restored
// session and any pending redirect result have been applied, runs one
// command and exits.
package client
