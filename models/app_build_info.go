// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// AppBuildInfo is the linker-injected metadata of a pass-guard binary.
type AppBuildInfo struct {
	Version string
	Date    string
	Commit  string
}

// String renders the metadata one field per line, unknown fields as N/A.
func (a AppBuildInfo) String() string {
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s\n",
		orNA(a.Version), orNA(a.Date), orNA(a.Commit))
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
