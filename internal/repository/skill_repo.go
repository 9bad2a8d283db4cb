package repository

import (
	"context"

	"github.com/Job-Wilhelm/course-booking/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type SkillRepository struct {
	db DBTX
}

func NewSkillRepository(db DBTX) *SkillRepository {
	return &SkillRepository{db: db}
}

func (r *SkillRepository) List(ctx context.Context) ([]models.Skill, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, created_at FROM skills ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	skills := make([]models.Skill, 0)
	for rows.Next() {
		var skill models.Skill
		if err := rows.Scan(&skill.ID, &skill.Name, &skill.CreatedAt); err != nil {
			return nil, err
		}
		skills = append(skills, skill)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return skills, nil
}

func (r *SkillRepository) Create(ctx context.Context, skill *models.Skill) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO skills (name) VALUES ($1) RETURNING id, created_at
	`, skill.Name).Scan(&skill.ID, &skill.CreatedAt)
}

func (r *SkillRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM skills WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

// CountExisting reports how many of ids name a real skill.
func (r *SkillRepository) CountExisting(ctx context.Context, ids []uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM skills WHERE id = ANY($1)`, ids).Scan(&count)
	return count, err
}

func (r *SkillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM skills WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
