package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/Job-Wilhelm/course-booking/internal/apperr"
	"github.com/Job-Wilhelm/course-booking/internal/models"
	"github.com/Job-Wilhelm/course-booking/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrCoachNotFound        = apperr.NotFound("coach not found")
	ErrAlreadyCoach         = apperr.Conflict("user is already a coach")
	ErrEnrollUserNotFound   = apperr.NotFound("user not found")
	ErrNotCoach             = apperr.Forbidden("only coaches can manage courses")
	ErrEnrollOther          = apperr.Forbidden("users can only enroll themselves")
	ErrUnknownSkill         = apperr.Validation("unknown skill id")
	ErrCapacityBelowBooked  = apperr.Validation("max_participants is below current bookings")
	ErrInvalidSchedule      = apperr.Validation("start_at must be before end_at")
	ErrCoachCourseNotFound  = apperr.NotFound("course not found")
	ErrCoachProfileNotFound = apperr.NotFound("coach profile not found")
	ErrPageOutOfRange       = apperr.Validation("page is out of range")
)

type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type coachReader interface {
	List(ctx context.Context, limit, offset int) ([]models.CoachListItem, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.CoachProfile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.CoachProfile, error)
	GetDetail(ctx context.Context, coachID uuid.UUID) (*models.CoachDetail, error)
}

type coachCourseReader interface {
	ListSummariesByCoach(ctx context.Context, coachUserID uuid.UUID) ([]models.CourseSummary, error)
	ListByCoach(ctx context.Context, coachUserID uuid.UUID) ([]models.CoachCourse, error)
	GetCoachCourseDetail(ctx context.Context, coachUserID, courseID uuid.UUID) (*models.CoachCourseDetail, error)
}

type CoachService struct {
	db      txBeginner
	coaches coachReader
	courses coachCourseReader
	now     func() time.Time
}

func NewCoachService(db txBeginner, coaches coachReader, courses coachCourseReader) *CoachService {
	return &CoachService{
		db:      db,
		coaches: coaches,
		courses: courses,
		now:     time.Now,
	}
}

// ListCoaches returns one page of the directory. page and per are 1-based and
// the resulting offset must fit in an int.
func (s *CoachService) ListCoaches(ctx context.Context, page, per int) ([]models.CoachListItem, int, error) {
	if page < 1 || per < 1 || page-1 > math.MaxInt/per {
		return nil, 0, ErrPageOutOfRange
	}
	coaches, total, err := s.coaches.List(ctx, per, (page-1)*per)
	if err != nil {
		return nil, 0, apperr.Internal("list coaches", err)
	}
	return coaches, total, nil
}

func (s *CoachService) GetCoach(ctx context.Context, coachID uuid.UUID) (*models.CoachDetail, error) {
	detail, err := s.coaches.GetDetail(ctx, coachID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCoachNotFound
		}
		return nil, apperr.Internal("load coach", err)
	}
	return detail, nil
}

func (s *CoachService) ListCoachCourses(ctx context.Context, coachID uuid.UUID) ([]models.CourseSummary, error) {
	coach, err := s.coaches.GetByID(ctx, coachID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCoachNotFound
		}
		return nil, apperr.Internal("load coach", err)
	}
	courses, err := s.courses.ListSummariesByCoach(ctx, coach.UserID)
	if err != nil {
		return nil, apperr.Internal("list coach courses", err)
	}
	return courses, nil
}

type CoachProfileInput struct {
	ExperienceYears int
	Description     string
	ProfileImageURL *string
	SkillIDs        []uuid.UUID
}

// Enroll promotes a USER to COACH and creates the coach profile in the same
// transaction. Callers may only enroll their own account. Promotion is a
// guarded update, so a concurrent second enroll fails with ErrAlreadyCoach.
func (s *CoachService) Enroll(ctx context.Context, identity models.Identity, userID uuid.UUID, input CoachProfileInput) (*models.CoachProfile, error) {
	if identity.UserID != userID {
		return nil, ErrEnrollOther
	}
	skillIDs := dedupeSkillIDs(input.SkillIDs)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, apperr.Internal("begin enroll", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	users := repository.NewUserRepository(tx)
	if _, err := users.PromoteToCoach(ctx, userID); err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.Internal("promote user", err)
		}
		if _, lookupErr := users.GetByID(ctx, userID); lookupErr != nil {
			if errors.Is(lookupErr, pgx.ErrNoRows) {
				return nil, ErrEnrollUserNotFound
			}
			return nil, apperr.Internal("load user", lookupErr)
		}
		return nil, ErrAlreadyCoach
	}

	if err := ensureSkillsExist(ctx, repository.NewSkillRepository(tx), skillIDs); err != nil {
		return nil, err
	}

	coaches := repository.NewCoachProfileRepository(tx)
	profile := &models.CoachProfile{
		UserID:          userID,
		ExperienceYears: input.ExperienceYears,
		Description:     strings.TrimSpace(input.Description),
		ProfileImageURL: input.ProfileImageURL,
	}
	if err := coaches.Create(ctx, profile); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrAlreadyCoach
		}
		return nil, apperr.Internal("create coach profile", err)
	}
	if err := coaches.ReplaceSkills(ctx, profile.ID, skillIDs); err != nil {
		return nil, apperr.Internal("link coach skills", err)
	}
	profile.SkillIDs = skillIDs

	if err := tx.Commit(ctx); err != nil {
		return nil, apperr.Internal("commit enroll", err)
	}
	return profile, nil
}

func (s *CoachService) Profile(ctx context.Context, identity models.Identity) (*models.CoachProfile, error) {
	profile, err := s.coaches.GetByUserID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCoachProfileNotFound
		}
		return nil, apperr.Internal("load coach profile", err)
	}
	return profile, nil
}

// UpdateProfile rewrites the profile fields and replaces the skill links
// atomically.
func (s *CoachService) UpdateProfile(
	ctx context.Context,
	identity models.Identity,
	input CoachProfileInput,
) (*models.CoachProfile, error) {
	skillIDs := dedupeSkillIDs(input.SkillIDs)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, apperr.Internal("begin profile update", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := ensureSkillsExist(ctx, repository.NewSkillRepository(tx), skillIDs); err != nil {
		return nil, err
	}

	coaches := repository.NewCoachProfileRepository(tx)
	profile, err := coaches.Update(ctx, identity.UserID, repository.UpdateCoachProfileInput{
		ExperienceYears: input.ExperienceYears,
		Description:     strings.TrimSpace(input.Description),
		ProfileImageURL: input.ProfileImageURL,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCoachProfileNotFound
		}
		return nil, apperr.Internal("update coach profile", err)
	}
	if err := coaches.ReplaceSkills(ctx, profile.ID, skillIDs); err != nil {
		return nil, apperr.Internal("link coach skills", err)
	}
	profile.SkillIDs = skillIDs

	if err := tx.Commit(ctx); err != nil {
		return nil, apperr.Internal("commit profile update", err)
	}
	return profile, nil
}

type CourseInput struct {
	SkillID         uuid.UUID
	Name            string
	Description     string
	StartAt         time.Time
	EndAt           time.Time
	MaxParticipants int
	MeetingURL      string
}

func (s *CoachService) CreateCourse(ctx context.Context, identity models.Identity, input CourseInput) (*models.Course, error) {
	if !input.StartAt.Before(input.EndAt) {
		return nil, ErrInvalidSchedule
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, apperr.Internal("begin course create", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := ensureCoach(ctx, repository.NewUserRepository(tx), identity.UserID); err != nil {
		return nil, err
	}
	if err := ensureSkillsExist(ctx, repository.NewSkillRepository(tx), []uuid.UUID{input.SkillID}); err != nil {
		return nil, err
	}

	course := courseFromInput(identity.UserID, input)
	if err := repository.NewCourseRepository(tx).Create(ctx, course); err != nil {
		return nil, apperr.Internal("create course", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, apperr.Internal("commit course create", err)
	}
	return course, nil
}

// UpdateCourse edits an owned course. The course row is locked so capacity
// cannot drop below bookings admitted concurrently.
func (s *CoachService) UpdateCourse(
	ctx context.Context,
	identity models.Identity,
	courseID uuid.UUID,
	input CourseInput,
) (*models.Course, error) {
	if !input.StartAt.Before(input.EndAt) {
		return nil, ErrInvalidSchedule
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, apperr.Internal("begin course update", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	courses := repository.NewCourseRepository(tx)
	existing, err := courses.GetByIDForUpdate(ctx, courseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCoachCourseNotFound
		}
		return nil, apperr.Internal("load course", err)
	}
	if existing.UserID != identity.UserID {
		return nil, ErrCoachCourseNotFound
	}
	if err := ensureSkillsExist(ctx, repository.NewSkillRepository(tx), []uuid.UUID{input.SkillID}); err != nil {
		return nil, err
	}

	taken, err := repository.NewBookingRepository(tx).CountActiveByCourse(ctx, courseID)
	if err != nil {
		return nil, apperr.Internal("count course bookings", err)
	}
	if input.MaxParticipants < taken {
		return nil, ErrCapacityBelowBooked
	}

	course := courseFromInput(identity.UserID, input)
	course.ID = courseID
	updated, err := courses.Update(ctx, course)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCoachCourseNotFound
		}
		return nil, apperr.Internal("update course", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, apperr.Internal("commit course update", err)
	}
	return updated, nil
}

// OwnCourses lists the coach's courses, each classified against the current
// time.
func (s *CoachService) OwnCourses(ctx context.Context, identity models.Identity) ([]models.CoachCourse, error) {
	courses, err := s.courses.ListByCoach(ctx, identity.UserID)
	if err != nil {
		return nil, apperr.Internal("list own courses", err)
	}
	now := s.now()
	for i := range courses {
		courses[i].Status = models.Course{StartAt: courses[i].StartAt, EndAt: courses[i].EndAt}.StatusAt(now)
	}
	return courses, nil
}

func (s *CoachService) OwnCourse(ctx context.Context, identity models.Identity, courseID uuid.UUID) (*models.CoachCourseDetail, error) {
	detail, err := s.courses.GetCoachCourseDetail(ctx, identity.UserID, courseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCoachCourseNotFound
		}
		return nil, apperr.Internal("load own course", err)
	}
	return detail, nil
}

func courseFromInput(coachUserID uuid.UUID, input CourseInput) *models.Course {
	return &models.Course{
		UserID:          coachUserID,
		SkillID:         input.SkillID,
		Name:            strings.TrimSpace(input.Name),
		Description:     strings.TrimSpace(input.Description),
		StartAt:         input.StartAt.UTC(),
		EndAt:           input.EndAt.UTC(),
		MaxParticipants: input.MaxParticipants,
		MeetingURL:      strings.TrimSpace(input.MeetingURL),
	}
}

func ensureCoach(ctx context.Context, users *repository.UserRepository, userID uuid.UUID) error {
	user, err := users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return apperr.Internal("load user", err)
	}
	if user.Role != models.RoleCoach {
		return ErrNotCoach
	}
	return nil
}

func ensureSkillsExist(ctx context.Context, skills *repository.SkillRepository, skillIDs []uuid.UUID) error {
	if len(skillIDs) == 0 {
		return nil
	}
	found, err := skills.CountExisting(ctx, skillIDs)
	if err != nil {
		return apperr.Internal("check skills", err)
	}
	if found != len(skillIDs) {
		return ErrUnknownSkill
	}
	return nil
}

func dedupeSkillIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
