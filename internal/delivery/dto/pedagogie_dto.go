package dto

import (
	"time"

	"stats-impact-backend/internal/stats"
)

// Response DTOs

type ObjectifResponse struct {
	ID       int                   `json:"id"`
	Type     string                `json:"type"`
	Libelle  string                `json:"libelle"`
	Resultat stats.ObjectiveResult `json:"resultat"`
	Enfants  []ObjectifResponse    `json:"enfants,omitempty"`
}

type ProjetSyntheseResponse struct {
	ProjetID  int                `json:"projet_id"`
	Nom       string             `json:"nom"`
	Secteur   string             `json:"secteur"`
	Objectifs []ObjectifResponse `json:"objectifs"`
}

type AtelierSyntheseResponse struct {
	AtelierID int                `json:"atelier_id"`
	Nom       string             `json:"nom"`
	Secteur   string             `json:"secteur"`
	Objectifs []ObjectifResponse `json:"objectifs"`
}

type BilanCompetenceResponse struct {
	Code           string     `json:"code"`
	Nom            string     `json:"nom"`
	DateEvaluation *time.Time `json:"date_evaluation,omitempty"`
	Atelier        string     `json:"atelier,omitempty"`
}

type BilanReferentielResponse struct {
	Referentiel string                    `json:"referentiel"`
	Competences []BilanCompetenceResponse `json:"competences"`
}

type BilanParticipantResponse struct {
	ParticipantID int                        `json:"participant_id"`
	Referentiels  []BilanReferentielResponse `json:"referentiels"`
}
