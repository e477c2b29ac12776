package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	appErrors "github.com/nikhilarora068/pharmacare-backend/internal/errors"
	"github.com/nikhilarora068/pharmacare-backend/internal/models"
	repository "github.com/nikhilarora068/pharmacare-backend/internal/repositories"
	"github.com/nikhilarora068/pharmacare-backend/internal/repositories/redis"
	"github.com/nikhilarora068/pharmacare-backend/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	repo        repository.UserRepository
	redisRepo   *redis.RedisRepo
	jwtKey      []byte
	tokenExpiry time.Duration
}

// NewUserService builds the auth service; redisRepo may be nil, disabling the
// login rate limit.
func NewUserService(repo repository.UserRepository, redisRepo *redis.RedisRepo, jwtKey []byte, tokenExpiry time.Duration) *UserService {
	return &UserService{
		repo:        repo,
		redisRepo:   redisRepo,
		jwtKey:      jwtKey,
		tokenExpiry: tokenExpiry,
	}
}

func (s *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {

	if errs := validation.ValidateAuthInput(req.Name, req.Email, req.Password, req.ConfirmPassword, true); !errs.Empty() {
		return nil, appErrors.ValidationError("Invalid signup input").WithFields(errs)
	}

	existingUser, _ := s.repo.GetUserByEmail(ctx, req.Email)
	if existingUser != nil {
		return nil, appErrors.DuplicateEntryError("Email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.InternalError("Failed to secure password").WithError(err)
	}

	user := &models.User{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, appErrors.DatabaseError("Failed to create user").WithError(err)
	}

	return user, nil
}

func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {

	if errs := validation.ValidateAuthInput("", req.Email, req.Password, "", false); !errs.Empty() {
		return nil, appErrors.ValidationError("Invalid login input").WithFields(errs)
	}

	if s.redisRepo != nil {
		allowed, _, retryAfter, err := s.redisRepo.CheckLoginRateLimit(ctx, req.Email)
		if err != nil {
			return nil, appErrors.InternalError("Failed to check login rate limit").WithError(err)
		}

		if !allowed {
			return nil, appErrors.TooManyRequestsError("Too many login attempts").
				WithDetail(fmt.Sprintf("Retry after %d seconds", retryAfter))
		}
	}

	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.UnauthorizedError("Invalid email or password")
		}

		return nil, appErrors.DatabaseError("Failed to fetch user").WithError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, appErrors.UnauthorizedError("Invalid email or password")
	}

	claims := &models.Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.jwtKey)
	if err != nil {
		return nil, appErrors.InternalError("Failed to sign token").WithError(err)
	}

	return &models.LoginResponse{Token: signed, User: user}, nil
}

func (s *UserService) Profile(ctx context.Context, id uuid.UUID) (*models.User, error) {

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("User not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch user").WithError(err)
	}

	return user, nil
}
