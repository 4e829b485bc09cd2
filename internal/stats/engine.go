package stats

import (
	"sort"
	"time"
)

// CountBucket is one labelled count inside a distribution, with its share of
// the distribution total.
type CountBucket struct {
	Label string  `json:"label"`
	Count int     `json:"count"`
	Pct   float64 `json:"pct"`
}

// VolumeBucket aggregates throughput for one calendar month.
type VolumeBucket struct {
	Month       string `json:"month"`
	NbSessions  int    `json:"nb_sessions"`
	NbPresences int    `json:"nb_presences"`
}

type VolumeStats struct {
	Buckets        []VolumeBucket `json:"buckets"`
	TotalSessions  int            `json:"total_sessions"`
	TotalPresences int            `json:"total_presences"`
}

// VolumeActivity counts in-scope sessions and presences per month.
func VolumeActivity(s *Snapshot, f Filter) VolumeStats {
	sessions := s.scopedSessions(f)
	presences := s.presencesFor(sessions)

	sessionMonth := make(map[int]string, len(sessions))
	byMonth := make(map[string]*VolumeBucket)
	for _, sess := range sessions {
		m := monthKey(sess.Date)
		sessionMonth[sess.ID] = m
		b := byMonth[m]
		if b == nil {
			b = &VolumeBucket{Month: m}
			byMonth[m] = b
		}
		b.NbSessions++
	}
	for _, p := range presences {
		if b := byMonth[sessionMonth[p.SessionID]]; b != nil {
			b.NbPresences++
		}
	}

	out := VolumeStats{
		TotalSessions:  len(sessions),
		TotalPresences: len(presences),
	}
	for _, b := range byMonth {
		out.Buckets = append(out.Buckets, *b)
	}
	sort.Slice(out.Buckets, func(i, j int) bool { return out.Buckets[i].Month < out.Buckets[j].Month })
	return out
}

type FrequencyStats struct {
	Buckets           []CountBucket `json:"buckets"`
	TotalParticipants int           `json:"total_participants"`
	AvgPresences      float64       `json:"avg_presences"`
}

// ParticipationFrequency distributes participants by how often they came in
// scope: once, 2-3 times, 4-9 times, 10 and more.
func ParticipationFrequency(s *Snapshot, f Filter) FrequencyStats {
	presences := s.presencesFor(s.scopedSessions(f))

	perParticipant := make(map[int]int)
	for _, p := range presences {
		perParticipant[p.ParticipantID]++
	}

	total := len(perParticipant)
	buckets := []CountBucket{
		{Label: "1 venue"},
		{Label: "2-3 venues"},
		{Label: "4-9 venues"},
		{Label: "10+ venues"},
	}
	for _, n := range perParticipant {
		switch {
		case n <= 1:
			buckets[0].Count++
		case n <= 3:
			buckets[1].Count++
		case n <= 9:
			buckets[2].Count++
		default:
			buckets[3].Count++
		}
	}
	for i := range buckets {
		buckets[i].Pct = pct(buckets[i].Count, total)
	}

	avg := 0.0
	if total > 0 {
		avg = float64(len(presences)) / float64(total)
	}
	return FrequencyStats{Buckets: buckets, TotalParticipants: total, AvgPresences: avg}
}

type TransversaliteStats struct {
	Buckets           []CountBucket `json:"buckets"`
	TotalParticipants int           `json:"total_participants"`
	MultiAtelierPct   float64       `json:"multi_atelier_pct"`
	MultiSecteurPct   float64       `json:"multi_secteur_pct"`
}

// Transversalite measures cross-workshop engagement: how many distinct
// ateliers each in-scope participant touched, and the share reaching more
// than one atelier or sector.
func Transversalite(s *Snapshot, f Filter) TransversaliteStats {
	sessions := s.scopedSessions(f)
	presences := s.presencesFor(sessions)
	ateliers := s.atelierIndex()

	sessionAtelier := make(map[int]int, len(sessions))
	for _, sess := range sessions {
		sessionAtelier[sess.ID] = sess.AtelierID
	}

	atelierSet := make(map[int]map[int]bool)
	secteurSet := make(map[int]map[string]bool)
	for _, p := range presences {
		aid := sessionAtelier[p.SessionID]
		if atelierSet[p.ParticipantID] == nil {
			atelierSet[p.ParticipantID] = make(map[int]bool)
			secteurSet[p.ParticipantID] = make(map[string]bool)
		}
		atelierSet[p.ParticipantID][aid] = true
		secteurSet[p.ParticipantID][ateliers[aid].Secteur] = true
	}

	total := len(atelierSet)
	buckets := []CountBucket{
		{Label: "1 atelier"},
		{Label: "2 ateliers"},
		{Label: "3+ ateliers"},
	}
	multiAtelier := 0
	multiSecteur := 0
	for pid, set := range atelierSet {
		switch {
		case len(set) <= 1:
			buckets[0].Count++
		case len(set) == 2:
			buckets[1].Count++
		default:
			buckets[2].Count++
		}
		if len(set) > 1 {
			multiAtelier++
		}
		if len(secteurSet[pid]) > 1 {
			multiSecteur++
		}
	}
	for i := range buckets {
		buckets[i].Pct = pct(buckets[i].Count, total)
	}

	return TransversaliteStats{
		Buckets:           buckets,
		TotalParticipants: total,
		MultiAtelierPct:   pct(multiAtelier, total),
		MultiSecteurPct:   pct(multiSecteur, total),
	}
}

type DemographyStats struct {
	ParGenre      []CountBucket `json:"par_genre"`
	ParTypePublic []CountBucket `json:"par_type_public"`
	ParAge        []CountBucket `json:"par_age"`
	ParVille      []CountBucket `json:"par_ville"`
	ParQuartier   []CountBucket `json:"par_quartier"`
	Total         int           `json:"total"`
}

// Demography breaks the distinct in-scope participants down by genre,
// type_public, age bucket, ville and quartier. The reference date for ages
// is the filter's upper bound when set, today otherwise.
func Demography(s *Snapshot, f Filter, now time.Time) DemographyStats {
	presences := s.presencesFor(s.scopedSessions(f))

	seen := make(map[int]bool)
	var people []Participant
	for _, p := range presences {
		if seen[p.ParticipantID] {
			continue
		}
		seen[p.ParticipantID] = true
		if part, ok := s.Participants[p.ParticipantID]; ok {
			people = append(people, part)
		}
	}

	ref := now
	if f.DateTo != nil {
		ref = *f.DateTo
	}

	genre := make(map[string]int)
	typePublic := make(map[string]int)
	age := make(map[string]int)
	ville := make(map[string]int)
	quartier := make(map[string]int)
	for _, p := range people {
		genre[labelOr(p.Genre, "Non renseigné")]++
		tp := p.TypePublic
		if tp == "" {
			tp = "H"
		}
		typePublic[tp]++
		age[ageBucket(p.DateNaissance, ref)]++
		ville[labelOr(p.Ville, "Non renseignée")]++
		quartier[labelOr(p.Quartier, "Non renseigné")]++
	}

	total := len(people)
	return DemographyStats{
		ParGenre:      sortedBuckets(genre, total),
		ParTypePublic: sortedBuckets(typePublic, total),
		ParAge:        sortedBuckets(age, total),
		ParVille:      sortedBuckets(ville, total),
		ParQuartier:   sortedBuckets(quartier, total),
		Total:         total,
	}
}

func labelOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func ageBucket(birth *time.Time, ref time.Time) string {
	if birth == nil {
		return "Inconnu"
	}
	years := ref.Year() - birth.Year()
	if ref.Month() < birth.Month() || (ref.Month() == birth.Month() && ref.Day() < birth.Day()) {
		years--
	}
	switch {
	case years < 0:
		return "Inconnu"
	case years < 12:
		return "-12"
	case years < 18:
		return "12-17"
	case years < 26:
		return "18-25"
	case years < 41:
		return "26-40"
	case years < 60:
		return "41-59"
	default:
		return "60+"
	}
}

func sortedBuckets(counts map[string]int, total int) []CountBucket {
	out := make([]CountBucket, 0, len(counts))
	for label, n := range counts {
		out = append(out, CountBucket{Label: label, Count: n, Pct: pct(n, total)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

func monthKey(d *time.Time) string {
	if d == nil {
		return "sans-date"
	}
	return d.Format("2006-01")
}
