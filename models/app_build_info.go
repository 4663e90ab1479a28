// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "strings"

// notAvailable stands in for build metadata the linker did not inject.
const notAvailable = "N/A"

// AppBuildInfo is the build metadata of the desk client, injected with
// -ldflags at release time.
type AppBuildInfo struct {
	version string
	date    string
	commit  string
}

// BuildInfoEntry is one labelled line of the about window.
type BuildInfoEntry struct {
	Label string
	Value string
}

func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	return AppBuildInfo{
		version: strings.TrimSpace(version),
		date:    strings.TrimSpace(date),
		commit:  strings.TrimSpace(commit),
	}
}

func (a AppBuildInfo) BuildVersion() string { return orNotAvailable(a.version) }

func (a AppBuildInfo) BuildDate() string { return orNotAvailable(a.date) }

func (a AppBuildInfo) BuildCommit() string { return orNotAvailable(a.commit) }

// IsRelease reports whether a version was injected at build time.
func (a AppBuildInfo) IsRelease() bool {
	return a.version != ""
}

// Entries lists the metadata in display order, with N/A for missing values.
func (a AppBuildInfo) Entries() []BuildInfoEntry {
	return []BuildInfoEntry{
		{Label: "Version", Value: a.BuildVersion()},
		{Label: "Date", Value: a.BuildDate()},
		{Label: "Commit", Value: a.BuildCommit()},
	}
}

func orNotAvailable(v string) string {
	if v == "" {
		return notAvailable
	}
	return v
}
