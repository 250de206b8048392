// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	errNoHandler       = errors.New("blob server has no handler")
	errNoListenAddress = errors.New("blob server has no listen address")
)
