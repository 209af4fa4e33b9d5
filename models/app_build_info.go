// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// BuildValueNotAvailable replaces build metadata that was not injected at link
// time.
const BuildValueNotAvailable = "N/A"

// AppBuildInfo carries build metadata injected with -ldflags into cmd/client.
type AppBuildInfo struct {
	buildVersion string
	buildDate    string
	buildCommit  string
}

// NewAppBuildInfo builds AppBuildInfo, substituting BuildValueNotAvailable
// for empty values.
func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		buildVersion: orNotAvailable(buildVersion),
		buildDate:    orNotAvailable(buildDate),
		buildCommit:  orNotAvailable(buildCommit),
	}
}

func orNotAvailable(v string) string {
	if v == "" {
		return BuildValueNotAvailable
	}
	return v
}

func (a AppBuildInfo) BuildVersion() string { return a.buildVersion }
func (a AppBuildInfo) BuildDate() string    { return a.buildDate }
func (a AppBuildInfo) BuildCommit() string  { return a.buildCommit }

// String renders the three lines printed at client startup.
func (a AppBuildInfo) String() string {
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s", a.buildVersion, a.buildDate, a.buildCommit)
}

// AppVersionResponse is the body of GET /api/version.
type AppVersionResponse struct {
	Version string `json:"version"`
	Date    string `json:"build_date"`
	Commit  string `json:"build_commit"`
}

// NewAppVersionResponse exposes a for JSON encoding.
func NewAppVersionResponse(a AppBuildInfo) AppVersionResponse {
	return AppVersionResponse{Version: a.buildVersion, Date: a.buildDate, Commit: a.buildCommit}
}
