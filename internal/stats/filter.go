// Package stats is the aggregation engine: filter normalization, sector
// scoping and the statistic tables computed over an in-memory snapshot of
// ateliers, sessions, presences and participants. Everything here is pure;
// loading the snapshot and persisting anything is the caller's business.
package stats

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

type View string

const (
	ViewMacro  View = "macro"
	ViewMatrix View = "matrix"
)

const dateLayout = "2006-01-02"

// Filter is the canonical form of a stats query. Zero values mean
// "unconstrained" (nil dates, empty secteur, zero atelier id).
type Filter struct {
	DateFrom         *time.Time
	DateTo           *time.Time
	Secteur          string
	AtelierID        int
	ParticipantQuery string
	View             View
	MaxSessions      int
	MaxParticipants  int
}

// Limits bounds the matrix size caps. The export path tolerates bigger
// matrices than the interactive dashboard.
type Limits struct {
	DefaultSessions     int
	MinSessions         int
	MaxSessions         int
	DefaultParticipants int
	MinParticipants     int
	MaxParticipants     int
}

var (
	DashboardLimits = Limits{
		DefaultSessions:     40,
		MinSessions:         5,
		MaxSessions:         200,
		DefaultParticipants: 250,
		MinParticipants:     20,
		MaxParticipants:     1000,
	}
	ExportLimits = Limits{
		DefaultSessions:     40,
		MinSessions:         5,
		MaxSessions:         400,
		DefaultParticipants: 250,
		MinParticipants:     20,
		MaxParticipants:     5000,
	}
)

// Normalize turns raw query values into a canonical Filter. Malformed fields
// degrade to their defaults, never fail the request: unparseable dates become
// nil, an unknown view becomes macro, bad counts fall back to the default
// before clamping. Reversed date bounds are swapped.
func Normalize(values url.Values, limits Limits) Filter {
	f := Filter{
		DateFrom:        parseDate(values.Get("date_from")),
		DateTo:          parseDate(values.Get("date_to")),
		Secteur:         strings.TrimSpace(values.Get("secteur")),
		MaxSessions:     parseCount(values.Get("max_sessions"), limits.DefaultSessions, limits.MinSessions, limits.MaxSessions),
		MaxParticipants: parseCount(values.Get("max_participants"), limits.DefaultParticipants, limits.MinParticipants, limits.MaxParticipants),
	}

	if f.DateFrom != nil && f.DateTo != nil && f.DateFrom.After(*f.DateTo) {
		f.DateFrom, f.DateTo = f.DateTo, f.DateFrom
	}

	if id, err := strconv.Atoi(values.Get("atelier_id")); err == nil && id > 0 {
		f.AtelierID = id
	}

	f.ParticipantQuery = strings.TrimSpace(values.Get("participant_q"))

	view := strings.ToLower(strings.TrimSpace(values.Get("view")))
	if view == "" {
		view = strings.ToLower(strings.TrimSpace(values.Get("magato_view")))
	}
	if view == string(ViewMatrix) {
		f.View = ViewMatrix
	} else {
		f.View = ViewMacro
	}

	return f
}

// DefaultToYear fills an entirely open date range with the current calendar
// year, the dashboard's default period.
func (f Filter) DefaultToYear(now time.Time) Filter {
	if f.DateFrom != nil || f.DateTo != nil {
		return f
	}
	from := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
	f.DateFrom = &from
	f.DateTo = &to
	return f
}

func parseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil
	}
	return &d
}

func parseCount(raw string, def, min, max int) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		v = def
	}
	return clamp(v, min, max)
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
