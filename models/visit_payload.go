// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// VisitType classifies a technical visit.
type VisitType string

const (
	VisitTypeTechnical     VisitType = "technical"
	VisitTypeFollowUp      VisitType = "follow_up"
	VisitTypeDiagnostic    VisitType = "diagnostic"
	VisitTypeHarvest       VisitType = "harvest"
	VisitTypeAudit         VisitType = "audit"
	VisitTypePhytosanitary VisitType = "phytosanitary"
)

// VisitStatus is the business status of the visit itself (not its sync state).
type VisitStatus string

const (
	VisitStatusScheduled  VisitStatus = "scheduled"
	VisitStatusInProgress VisitStatus = "in_progress"
	VisitStatusCompleted  VisitStatus = "completed"
	VisitStatusCancelled  VisitStatus = "cancelled"
)

// AllowedVisitTypes lists every VisitType accepted at capture time.
var AllowedVisitTypes = []VisitType{
	VisitTypeTechnical,
	VisitTypeFollowUp,
	VisitTypeDiagnostic,
	VisitTypeHarvest,
	VisitTypeAudit,
	VisitTypePhytosanitary,
}

// AllowedVisitStatuses lists every VisitStatus accepted at capture time.
var AllowedVisitStatuses = []VisitStatus{
	VisitStatusScheduled,
	VisitStatusInProgress,
	VisitStatusCompleted,
	VisitStatusCancelled,
}

// VisitPayload is the typed form of a visit filled in by the field technician.
// It is validated and serialized once at capture time; afterwards it travels
// through the store and the sync engine as opaque JSON.
type VisitPayload struct {
	ClientID string `json:"client_id"`
	FarmID   string `json:"farm_id"`
	PlotID   string `json:"plot_id"`

	Title string `json:"title"`

	// Date is the visit day in YYYY-MM-DD form.
	Date string `json:"visit_date"`

	// StartTime and EndTime are wall-clock times in HH:MM form.
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`

	VisitType VisitType   `json:"visit_type"`
	Status    VisitStatus `json:"status"`

	Objective       *string `json:"objective,omitempty"`
	Observations    *string `json:"observations,omitempty"`
	Recommendations *string `json:"recommendations,omitempty"`

	Climate     *string  `json:"climate,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`

	Crop           *string `json:"crop,omitempty"`
	CropVariety    *string `json:"crop_variety,omitempty"`
	PhenologyStage *string `json:"phenology_stage,omitempty"`
	Season         *string `json:"season,omitempty"`
}
