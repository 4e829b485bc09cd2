package dto

import "time"

// Request DTOs

type UpdateParticipantRequest struct {
	Nom           string `json:"nom" validate:"required,min=1,max=255"`
	Prenom        string `json:"prenom" validate:"omitempty,max=255"`
	Email         string `json:"email" validate:"omitempty,email"`
	Telephone     string `json:"telephone" validate:"omitempty,max=50"`
	Ville         string `json:"ville" validate:"omitempty,max=255"`
	Genre         string `json:"genre" validate:"omitempty,max=30"`
	TypePublic    string `json:"type_public" validate:"omitempty,oneof=H F J S"`
	DateNaissance string `json:"date_naissance" validate:"omitempty,datetime=2006-01-02"`
	QuartierID    *int   `json:"quartier_id" validate:"omitempty,min=1"`
}

// Response DTOs

type ParticipantResponse struct {
	ID            int        `json:"id"`
	Nom           string     `json:"nom"`
	Prenom        string     `json:"prenom"`
	Email         string     `json:"email,omitempty"`
	Telephone     string     `json:"telephone,omitempty"`
	Ville         string     `json:"ville,omitempty"`
	Genre         string     `json:"genre,omitempty"`
	TypePublic    string     `json:"type_public"`
	DateNaissance *time.Time `json:"date_naissance,omitempty"`
	Quartier      string     `json:"quartier,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
