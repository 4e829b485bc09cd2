package dto

import "stats-impact-backend/internal/stats"

// PeriodeResponse echoes the normalized date range back to the caller so the
// UI can show which period the figures cover.
type PeriodeResponse struct {
	DateFrom string `json:"date_from,omitempty"`
	DateTo   string `json:"date_to,omitempty"`
	Secteur  string `json:"secteur,omitempty"`
}

type DashboardResponse struct {
	Periode        PeriodeResponse           `json:"periode"`
	Volume         stats.VolumeStats         `json:"volume"`
	Frequentation  stats.FrequencyStats      `json:"frequentation"`
	Transversalite stats.TransversaliteStats `json:"transversalite"`
	Demographie    stats.DemographyStats     `json:"demographie"`
	Occupation     stats.OccupancyStats      `json:"occupation"`
}

// MagatoResponse flattens the presence matrix into "pid_sid" keys so it
// serializes as a plain JSON object.
type MagatoResponse struct {
	View               stats.View             `json:"view"`
	Restricted         bool                   `json:"restricted"`
	Macro              *stats.MagatoMacro     `json:"macro,omitempty"`
	Participants       []stats.ParticipantRow `json:"participants,omitempty"`
	Sessions           []stats.MatrixSession  `json:"sessions,omitempty"`
	Matrix             map[string]bool        `json:"matrix,omitempty"`
	SessionsCapped     bool                   `json:"sessions_capped"`
	ParticipantsCapped bool                   `json:"participants_capped"`
}

type SecteurListResponse struct {
	Secteurs []string `json:"secteurs"`
}

type YearListResponse struct {
	Years []int `json:"years"`
}
