// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/MKhiriev/go-applicant-desk/models"
)

func renderBuildInfoWindow(info models.AppBuildInfo) string {
	lines := []string{"Application: Applicant Desk"}
	for _, e := range info.Entries() {
		lines = append(lines, e.Label+": "+e.Value)
	}
	if !info.IsRelease() {
		lines = append(lines, "", helpStyle.Render("development build"))
	}
	return renderPage("ABOUT", strings.Join(lines, "\n"), "esc: back")
}
