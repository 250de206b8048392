// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

const buildInfoUnset = "N/A"

// AppBuildInfo is the build metadata linked into the drive and blobd
// binaries. It is printed by "drive version" and served by the blob
// server's version endpoint.
type AppBuildInfo struct {
	Version string `json:"version"`
	Date    string `json:"buildDate"`
	Commit  string `json:"buildCommit"`
}

// NewAppBuildInfo fills empty values with "N/A".
func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	return AppBuildInfo{
		Version: orUnset(version),
		Date:    orUnset(date),
		Commit:  orUnset(commit),
	}
}

// WithVersion overrides an unset version, e.g. from configuration.
func (a AppBuildInfo) WithVersion(version string) AppBuildInfo {
	if (a.Version == "" || a.Version == buildInfoUnset) && version != "" {
		a.Version = version
	}
	return a
}

func (a AppBuildInfo) String() string {
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s", a.Version, a.Date, a.Commit)
}

func orUnset(s string) string {
	if s == "" {
		return buildInfoUnset
	}
	return s
}
