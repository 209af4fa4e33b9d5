// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"time"

	"github.com/MKhiriev/go-visit-sync/models"
)

type tickMsg time.Time

type syncDoneMsg struct {
	report models.SyncReport
	err    error
}

type pendingLoadedMsg struct {
	views []models.PendingVisitView
	err   error
}
