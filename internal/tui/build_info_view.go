// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"github.com/MKhiriev/go-visit-sync/models"
)

func renderBuildInfoWindow(info models.AppBuildInfo) string {
	body := boxStyle.Render("Application: visit sync client\n" + info.String())
	return renderPage("ABOUT", body, "esc: back")
}
