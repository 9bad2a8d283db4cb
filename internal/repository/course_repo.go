package repository

import (
	"context"

	"github.com/Job-Wilhelm/course-booking/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CourseRepository struct {
	db DBTX
}

func NewCourseRepository(db DBTX) *CourseRepository {
	return &CourseRepository{db: db}
}

const courseColumns = `id, user_id, skill_id, name, description, start_at, end_at,
	max_participants, meeting_url, created_at, updated_at`

func scanCourse(row pgx.Row) (*models.Course, error) {
	var course models.Course
	if err := row.Scan(
		&course.ID,
		&course.UserID,
		&course.SkillID,
		&course.Name,
		&course.Description,
		&course.StartAt,
		&course.EndAt,
		&course.MaxParticipants,
		&course.MeetingURL,
		&course.CreatedAt,
		&course.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`
	return scanCourse(r.db.QueryRow(ctx, query, id))
}

// GetByIDForUpdate locks the course row until the surrounding transaction ends.
func (r *CourseRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1 FOR UPDATE`
	return scanCourse(r.db.QueryRow(ctx, query, id))
}

func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (user_id, skill_id, name, description, start_at, end_at, max_participants, meeting_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(
		ctx,
		query,
		course.UserID,
		course.SkillID,
		course.Name,
		course.Description,
		course.StartAt,
		course.EndAt,
		course.MaxParticipants,
		course.MeetingURL,
	).Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)
}

// Update rewrites an owned course. pgx.ErrNoRows when the course does not
// belong to course.UserID.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) (*models.Course, error) {
	query := `
		UPDATE courses
		SET skill_id = $1,
			name = $2,
			description = $3,
			start_at = $4,
			end_at = $5,
			max_participants = $6,
			meeting_url = $7,
			updated_at = NOW()
		WHERE id = $8 AND user_id = $9
		RETURNING ` + courseColumns
	return scanCourse(r.db.QueryRow(
		ctx,
		query,
		course.SkillID,
		course.Name,
		course.Description,
		course.StartAt,
		course.EndAt,
		course.MaxParticipants,
		course.MeetingURL,
		course.ID,
		course.UserID,
	))
}

const courseSummarySelect = `
	SELECT c.id, u.name, s.name, c.name, c.description, c.start_at, c.end_at, c.max_participants
	FROM courses c
	JOIN users u ON u.id = c.user_id
	JOIN skills s ON s.id = c.skill_id
`

func (r *CourseRepository) ListSummaries(ctx context.Context) ([]models.CourseSummary, error) {
	rows, err := r.db.Query(ctx, courseSummarySelect+` ORDER BY c.start_at ASC, c.id ASC`)
	if err != nil {
		return nil, err
	}
	return collectSummaries(rows)
}

func (r *CourseRepository) ListSummariesByCoach(ctx context.Context, coachUserID uuid.UUID) ([]models.CourseSummary, error) {
	rows, err := r.db.Query(
		ctx,
		courseSummarySelect+` WHERE c.user_id = $1 ORDER BY c.start_at ASC, c.id ASC`,
		coachUserID,
	)
	if err != nil {
		return nil, err
	}
	return collectSummaries(rows)
}

func collectSummaries(rows pgx.Rows) ([]models.CourseSummary, error) {
	defer rows.Close()

	summaries := make([]models.CourseSummary, 0)
	for rows.Next() {
		var summary models.CourseSummary
		if err := rows.Scan(
			&summary.ID,
			&summary.CoachName,
			&summary.SkillName,
			&summary.Name,
			&summary.Description,
			&summary.StartAt,
			&summary.EndAt,
			&summary.MaxParticipants,
		); err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// ListByCoach returns the coach's courses with their active booking counts.
// Status is left empty for the caller to classify against its clock.
func (r *CourseRepository) ListByCoach(ctx context.Context, coachUserID uuid.UUID) ([]models.CoachCourse, error) {
	query := `
		SELECT c.id, c.name, c.start_at, c.end_at, c.max_participants,
			COUNT(b.id) FILTER (WHERE b.cancelled_at IS NULL) AS participants
		FROM courses c
		LEFT JOIN course_booking b ON b.course_id = c.id
		WHERE c.user_id = $1
		GROUP BY c.id
		ORDER BY c.start_at ASC, c.id ASC
	`
	rows, err := r.db.Query(ctx, query, coachUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := make([]models.CoachCourse, 0)
	for rows.Next() {
		var course models.CoachCourse
		if err := rows.Scan(
			&course.ID,
			&course.Name,
			&course.StartAt,
			&course.EndAt,
			&course.MaxParticipants,
			&course.Participants,
		); err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *CourseRepository) GetCoachCourseDetail(
	ctx context.Context,
	coachUserID uuid.UUID,
	courseID uuid.UUID,
) (*models.CoachCourseDetail, error) {
	query := `
		SELECT c.id, c.name, c.description, c.start_at, c.end_at, c.max_participants, s.name, c.meeting_url
		FROM courses c
		JOIN skills s ON s.id = c.skill_id
		WHERE c.id = $1 AND c.user_id = $2
	`
	var detail models.CoachCourseDetail
	err := r.db.QueryRow(ctx, query, courseID, coachUserID).Scan(
		&detail.ID,
		&detail.Name,
		&detail.Description,
		&detail.StartAt,
		&detail.EndAt,
		&detail.MaxParticipants,
		&detail.SkillName,
		&detail.MeetingURL,
	)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}
