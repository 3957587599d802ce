package auth

import (
	"context"
	"errors"
	"log"
	"strings"
	"unicode"

	"fitcrm/internal/domain"
	"fitcrm/internal/pkg/validator"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type tokenIssuer interface {
	GenerateToken(userID uuid.UUID, email string) (string, error)
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	DB() *gorm.DB
}

// Service owns registration and login. Registration is the only place a
// Studio is created: the founding admin, their studio and their profile
// are inserted in one transaction so no partial account can exist.
type Service struct {
	db    *gorm.DB
	users userStore
	jwt   tokenIssuer
}

func NewService(users userStore, jwt tokenIssuer) *Service {
	return &Service{db: users.DB(), users: users, jwt: jwt}
}

type RegisterResult struct {
	User  UserDTO
	Token string
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	if fe := validator.FirstError(req); fe != nil {
		return nil, fe
	}
	if err := checkPasswordStrength(req.Password); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("auth: email uniqueness check failed: %v", err)
		return nil, errors.New("failed to register")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{Email: email, PasswordHash: string(hash)}
	studio := &domain.Studio{Name: strings.TrimSpace(req.StudioName)}
	profile := &domain.Profile{
		Role:      domain.RoleStudioAdmin,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		studio.OwnerID = user.ID
		if err := tx.Create(studio).Error; err != nil {
			return err
		}
		userID := user.ID
		profile.UserID = &userID
		profile.StudioID = studio.ID
		return tx.Create(profile).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailAlreadyExists
		}
		log.Printf("auth: registration failed for %s: %v", email, err)
		return nil, errors.New("failed to register")
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &RegisterResult{
		User: UserDTO{
			ID:       user.ID.String(),
			Email:    user.Email,
			Role:     profile.Role,
			StudioID: studio.ID.String(),
			FullName: strings.TrimSpace(req.FirstName + " " + req.LastName),
		},
		Token: token,
	}, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*RegisterResult, error) {
	if fe := validator.FirstError(req); fe != nil {
		return nil, fe
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		log.Printf("auth: login lookup failed for %s: %v", email, err)
		return nil, errors.New("failed to log in")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	var profile domain.Profile
	if err := s.db.WithContext(ctx).Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		// A login without a profile means registration broke its invariant.
		log.Printf("auth: no profile for user %s at login: %v", user.ID, err)
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &RegisterResult{
		User: UserDTO{
			ID:       user.ID.String(),
			Email:    user.Email,
			Role:     profile.Role,
			StudioID: profile.StudioID.String(),
			FullName: strings.TrimSpace(profile.FirstName + " " + profile.LastName),
		},
		Token: token,
	}, nil
}

func checkPasswordStrength(password string) error {
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	if !upper || !lower || !digit || !special {
		return ErrWeakPassword
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// sqlite reports constraint violations as plain text
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
