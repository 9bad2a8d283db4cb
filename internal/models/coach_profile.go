package models

import (
	"time"

	"github.com/google/uuid"
)

type CoachProfile struct {
	ID              uuid.UUID   `json:"id"`
	UserID          uuid.UUID   `json:"user_id"`
	ExperienceYears int         `json:"experience_years"`
	Description     string      `json:"description"`
	ProfileImageURL *string     `json:"profile_image_url"`
	SkillIDs        []uuid.UUID `json:"skill_ids"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

type CoachListItem struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type CoachDetail struct {
	User  CoachUser    `json:"user"`
	Coach CoachProfile `json:"coach"`
}

type CoachUser struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
}
