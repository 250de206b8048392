// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the drive command line.
//
// [App] holds the process wiring: configuration, the keypair store, the
// blob store and the unlocked session. Each cobra command borrows what it
// needs from App, so tests can inject in-memory stores and scripted
// password input.
package client
