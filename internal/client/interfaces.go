// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Execute runs one command line and returns its error.
	Execute(ctx context.Context, args []string) error
}

// PasswordReader prompts for a secret without echoing it.
type PasswordReader interface {
	ReadPassword(prompt string) (string, error)
}
