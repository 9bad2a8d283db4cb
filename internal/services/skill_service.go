package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Job-Wilhelm/course-booking/internal/apperr"
	"github.com/Job-Wilhelm/course-booking/internal/models"
	"github.com/Job-Wilhelm/course-booking/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrSkillNameTaken = apperr.Conflict("skill name already exists")
	ErrSkillNotFound  = apperr.NotFound("skill not found")
	ErrSkillInUse     = apperr.Conflict("skill is still referenced by courses")
)

type skillStore interface {
	List(ctx context.Context) ([]models.Skill, error)
	Create(ctx context.Context, skill *models.Skill) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type SkillService struct {
	skills skillStore
}

func NewSkillService(skills skillStore) *SkillService {
	return &SkillService{skills: skills}
}

func (s *SkillService) List(ctx context.Context) ([]models.Skill, error) {
	skills, err := s.skills.List(ctx)
	if err != nil {
		return nil, apperr.Internal("list skills", err)
	}
	return skills, nil
}

func (s *SkillService) Create(ctx context.Context, name string) (*models.Skill, error) {
	skill := &models.Skill{Name: strings.TrimSpace(name)}
	if err := s.skills.Create(ctx, skill); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrSkillNameTaken
		}
		return nil, apperr.Internal("create skill", err)
	}
	return skill, nil
}

func (s *SkillService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.skills.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return ErrSkillNotFound
		case repository.IsForeignKeyViolation(err):
			return ErrSkillInUse
		default:
			return apperr.Internal("delete skill", err)
		}
	}
	return nil
}
