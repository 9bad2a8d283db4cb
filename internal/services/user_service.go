package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Job-Wilhelm/course-booking/internal/apperr"
	"github.com/Job-Wilhelm/course-booking/internal/models"
	"github.com/Job-Wilhelm/course-booking/internal/repository"
	"github.com/Job-Wilhelm/course-booking/pkg/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrEmailTaken         = apperr.Conflict("email already registered")
	ErrInvalidCredentials = apperr.Validation("invalid email or password")
	ErrNameUnchanged      = apperr.Validation("name unchanged")
	ErrPasswordUnchanged  = apperr.Validation("new password must differ from the current one")
	ErrPasswordMismatch   = apperr.Validation("new password and confirmation do not match")
	ErrWrongPassword      = apperr.Validation("current password is incorrect")
)

type userStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateName(ctx context.Context, id uuid.UUID, name string) (*models.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

type purchaseReader interface {
	SumPurchasedCredits(ctx context.Context, userID uuid.UUID) (int, error)
	ListPurchases(ctx context.Context, userID uuid.UUID) ([]models.PurchasedPackage, error)
}

type userBookingReader interface {
	CountActiveByUser(ctx context.Context, userID uuid.UUID) (int, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.UserCourseBooking, error)
}

type UserService struct {
	users     userStore
	purchases purchaseReader
	bookings  userBookingReader
	jwtSecret string
	jwtTTL    time.Duration
}

func NewUserService(
	users userStore,
	purchases purchaseReader,
	bookings userBookingReader,
	jwtSecret string,
	jwtTTL time.Duration,
) *UserService {
	return &UserService{
		users:     users,
		purchases: purchases,
		bookings:  bookings,
		jwtSecret: jwtSecret,
		jwtTTL:    jwtTTL,
	}
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

func (s *UserService) Signup(ctx context.Context, input SignupInput) (*models.User, error) {
	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal("hash password", err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hashed,
		Role:         models.RoleUser,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, apperr.Internal("create user", err)
	}
	return user, nil
}

// Login returns a signed token for valid credentials. Unknown email and wrong
// password fail identically.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, apperr.Internal("load user", err)
	}
	if !utils.CheckPassword(password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID.String(), string(user.Role), s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, apperr.Internal("sign token", err)
	}
	return token, user, nil
}

func (s *UserService) Profile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, apperr.Internal("load user", err)
	}
	return user, nil
}

func (s *UserService) UpdateName(ctx context.Context, userID uuid.UUID, name string) (*models.User, error) {
	current, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if current.Name == name {
		return nil, ErrNameUnchanged
	}

	user, err := s.users.UpdateName(ctx, userID, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, apperr.Internal("update user name", err)
	}
	return user, nil
}

type ChangePasswordInput struct {
	Password           string
	NewPassword        string
	ConfirmNewPassword string
}

func (s *UserService) ChangePassword(ctx context.Context, userID uuid.UUID, input ChangePasswordInput) error {
	if input.NewPassword == input.Password {
		return ErrPasswordUnchanged
	}
	if input.NewPassword != input.ConfirmNewPassword {
		return ErrPasswordMismatch
	}

	user, err := s.Profile(ctx, userID)
	if err != nil {
		return err
	}
	if !utils.CheckPassword(input.Password, user.PasswordHash) {
		return ErrWrongPassword
	}

	hashed, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return apperr.Internal("hash password", err)
	}
	if err := s.users.UpdatePassword(ctx, userID, hashed); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return apperr.Internal("update password", err)
	}
	return nil
}

func (s *UserService) Purchases(ctx context.Context, userID uuid.UUID) ([]models.PurchasedPackage, error) {
	purchases, err := s.purchases.ListPurchases(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("list purchases", err)
	}
	return purchases, nil
}

// CourseBookings lists every booking of the user, cancelled ones included,
// alongside the recomputed credit balance.
func (s *UserService) CourseBookings(ctx context.Context, userID uuid.UUID) (*models.UserBookings, error) {
	purchased, err := s.purchases.SumPurchasedCredits(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("sum purchased credits", err)
	}
	used, err := s.bookings.CountActiveByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("count active bookings", err)
	}
	bookings, err := s.bookings.ListForUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("list bookings", err)
	}

	balance := models.CreditBalance{Purchased: purchased, Used: used}
	return &models.UserBookings{
		CreditRemain:  balance.Remaining(),
		CreditUsage:   balance.Used,
		CourseBooking: bookings,
	}, nil
}
