package stats

import "strings"

// Caller carries what the engine needs to know about the requesting user:
// the capability predicate and the assigned sector for restricted users.
type Caller struct {
	Capabilities   map[string]bool
	SecteurAssigne string
}

func (c Caller) Can(capability string) bool {
	return c.Capabilities[capability]
}

// Capability strings, mirrored from the RBAC layer.
const (
	CapStatsView           = "statsimpact:view"
	CapStatsViewAll        = "statsimpact:view_all"
	CapAllSecteurs         = "scope:all_secteurs"
	CapParticipantsViewAll = "participants:view_all"
)

// EffectiveSecteur resolves the sector the query actually runs against.
// Holders of scope:all_secteurs keep whatever they asked for (possibly
// nothing, meaning all sectors). Anyone else is pinned to their assigned
// sector regardless of the requested value.
func EffectiveSecteur(f Filter, c Caller) string {
	if c.Can(CapAllSecteurs) {
		return f.Secteur
	}
	if assigned := strings.TrimSpace(c.SecteurAssigne); assigned != "" {
		return assigned
	}
	return f.Secteur
}

// ApplyScope returns the filter with its sector replaced by the effective
// one. Every aggregation entry point goes through this.
func ApplyScope(f Filter, c Caller) Filter {
	f.Secteur = EffectiveSecteur(f, c)
	return f
}

// ProbesOtherSecteur reports a sector-restricted caller explicitly asking
// for a sector that is not theirs. Such a request is flagged restricted
// rather than silently rescoped on views that would otherwise leak the
// existence of cross-sector data.
func ProbesOtherSecteur(f Filter, c Caller) bool {
	if c.Can(CapAllSecteurs) {
		return false
	}
	assigned := strings.TrimSpace(c.SecteurAssigne)
	return f.Secteur != "" && assigned != "" && f.Secteur != assigned
}

// CanDeleteParticipant decides whether the caller may purge a participant.
// presenceSecteurs is the distinct set of sectors the participant has
// presences in. Without participants:view_all, deletion is allowed only when
// those sectors are empty or exactly the caller's own sector.
func CanDeleteParticipant(presenceSecteurs []string, c Caller) bool {
	if c.Can(CapParticipantsViewAll) {
		return true
	}
	assigned := strings.TrimSpace(c.SecteurAssigne)
	for _, s := range presenceSecteurs {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if s != assigned {
			return false
		}
	}
	return true
}
