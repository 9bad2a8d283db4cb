package repository

import (
	"context"

	"github.com/Job-Wilhelm/course-booking/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CoachProfileRepository struct {
	db DBTX
}

func NewCoachProfileRepository(db DBTX) *CoachProfileRepository {
	return &CoachProfileRepository{db: db}
}

const coachProfileColumns = `id, user_id, experience_years, description, profile_image_url, created_at, updated_at`

func scanCoachProfile(row pgx.Row) (*models.CoachProfile, error) {
	var profile models.CoachProfile
	if err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.ExperienceYears,
		&profile.Description,
		&profile.ProfileImageURL,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *CoachProfileRepository) Create(ctx context.Context, profile *models.CoachProfile) error {
	query := `
		INSERT INTO coaches (user_id, experience_years, description, profile_image_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(
		ctx,
		query,
		profile.UserID,
		profile.ExperienceYears,
		profile.Description,
		profile.ProfileImageURL,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
}

func (r *CoachProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.CoachProfile, error) {
	query := `SELECT ` + coachProfileColumns + ` FROM coaches WHERE user_id = $1`
	profile, err := scanCoachProfile(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, err
	}
	if profile.SkillIDs, err = r.ListSkillIDs(ctx, profile.ID); err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *CoachProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.CoachProfile, error) {
	query := `SELECT ` + coachProfileColumns + ` FROM coaches WHERE id = $1`
	profile, err := scanCoachProfile(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if profile.SkillIDs, err = r.ListSkillIDs(ctx, profile.ID); err != nil {
		return nil, err
	}
	return profile, nil
}

type UpdateCoachProfileInput struct {
	ExperienceYears int
	Description     string
	ProfileImageURL *string
}

func (r *CoachProfileRepository) Update(
	ctx context.Context,
	userID uuid.UUID,
	input UpdateCoachProfileInput,
) (*models.CoachProfile, error) {
	query := `
		UPDATE coaches
		SET experience_years = $1,
			description = $2,
			profile_image_url = $3,
			updated_at = NOW()
		WHERE user_id = $4
		RETURNING ` + coachProfileColumns
	return scanCoachProfile(r.db.QueryRow(
		ctx,
		query,
		input.ExperienceYears,
		input.Description,
		input.ProfileImageURL,
		userID,
	))
}

// ReplaceSkills swaps the coach's skill links for skillIDs. Run it inside a
// transaction so readers never observe the empty intermediate state.
func (r *CoachProfileRepository) ReplaceSkills(ctx context.Context, coachID uuid.UUID, skillIDs []uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM coach_link_skill WHERE coach_id = $1`, coachID); err != nil {
		return err
	}
	if len(skillIDs) == 0 {
		return nil
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO coach_link_skill (coach_id, skill_id)
		SELECT $1, unnest($2::uuid[])
		ON CONFLICT (coach_id, skill_id) DO NOTHING
	`, coachID, skillIDs)
	return err
}

func (r *CoachProfileRepository) ListSkillIDs(ctx context.Context, coachID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `
		SELECT skill_id FROM coach_link_skill WHERE coach_id = $1 ORDER BY created_at ASC, skill_id ASC
	`, coachID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	skillIDs := make([]uuid.UUID, 0)
	for rows.Next() {
		var skillID uuid.UUID
		if err := rows.Scan(&skillID); err != nil {
			return nil, err
		}
		skillIDs = append(skillIDs, skillID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return skillIDs, nil
}

func (r *CoachProfileRepository) List(ctx context.Context, limit, offset int) ([]models.CoachListItem, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM coaches`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT c.id, u.name
		FROM coaches c
		JOIN users u ON u.id = c.user_id
		ORDER BY c.created_at ASC, c.id ASC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	coaches := make([]models.CoachListItem, 0)
	for rows.Next() {
		var coach models.CoachListItem
		if err := rows.Scan(&coach.ID, &coach.Name); err != nil {
			return nil, 0, err
		}
		coaches = append(coaches, coach)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return coaches, total, nil
}

func (r *CoachProfileRepository) GetDetail(ctx context.Context, coachID uuid.UUID) (*models.CoachDetail, error) {
	profile, err := r.GetByID(ctx, coachID)
	if err != nil {
		return nil, err
	}

	var detail models.CoachDetail
	if err := r.db.QueryRow(ctx, `SELECT name, role FROM users WHERE id = $1`, profile.UserID).
		Scan(&detail.User.Name, &detail.User.Role); err != nil {
		return nil, err
	}
	detail.Coach = *profile
	return &detail, nil
}
