package models

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	SkillID         uuid.UUID `json:"skill_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	StartAt         time.Time `json:"start_at"`
	EndAt           time.Time `json:"end_at"`
	MaxParticipants int       `json:"max_participants"`
	MeetingURL      string    `json:"meeting_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CourseSummary is the public listing shape, joined with coach and skill names.
type CourseSummary struct {
	ID              uuid.UUID `json:"id"`
	CoachName       string    `json:"coach_name"`
	SkillName       string    `json:"skill_name"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	StartAt         time.Time `json:"start_at"`
	EndAt           time.Time `json:"end_at"`
	MaxParticipants int       `json:"max_participants"`
}

type CourseStatus string

const (
	CourseStatusNotStarted CourseStatus = "not_started"
	CourseStatusOngoing    CourseStatus = "ongoing"
	CourseStatusEnded      CourseStatus = "ended"
)

// StatusAt classifies a course relative to now.
func (c Course) StatusAt(now time.Time) CourseStatus {
	switch {
	case !c.StartAt.Before(now):
		return CourseStatusNotStarted
	case c.EndAt.Before(now):
		return CourseStatusEnded
	default:
		return CourseStatusOngoing
	}
}

type CoachCourse struct {
	ID              uuid.UUID    `json:"id"`
	Name            string       `json:"name"`
	Status          CourseStatus `json:"status"`
	StartAt         time.Time    `json:"start_at"`
	EndAt           time.Time    `json:"end_at"`
	MaxParticipants int          `json:"max_participants"`
	Participants    int          `json:"participants"`
}

type CoachCourseDetail struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	StartAt         time.Time `json:"start_at"`
	EndAt           time.Time `json:"end_at"`
	MaxParticipants int       `json:"max_participants"`
	SkillName       string    `json:"skill_name"`
	MeetingURL      string    `json:"meeting_url"`
}
