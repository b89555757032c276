package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Mervedgan/uretim-takip-sistemi/internal/apperr"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/config"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/entity"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/middleware"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

const refreshKeyPrefix = "refresh:"

type AuthService struct {
	userRepo *repository.UserRepository
	rdb      *redis.Client
	cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, rdb *redis.Client, cfg *config.Config) *AuthService {
	return &AuthService{userRepo: userRepo, rdb: rdb, cfg: cfg}
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type RegisterRequest struct {
	Username string  `json:"username" binding:"required,min=3,max=64"`
	Password string  `json:"password" binding:"required,min=6"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
}

// Register creates a user with the worker role. Role upgrades are an admin
// action, not part of signup.
func (s *AuthService) Register(req RegisterRequest) (*entity.User, error) {
	existing, err := s.userRepo.GetByUsername(req.Username)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if existing != nil {
		return nil, apperr.E(apperr.KindConflict, "username %q is already taken", req.Username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Email:        req.Email,
		Phone:        req.Phone,
		Role:         entity.RoleWorker,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and issues a token pair. The refresh token is
// stored in redis; without redis only the access token is issued.
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenPair, *entity.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, nil, apperr.E(apperr.KindForbidden, "invalid username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, apperr.E(apperr.KindForbidden, "invalid username or password")
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

// Refresh exchanges a stored refresh token for a fresh pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if s.rdb == nil {
		return nil, apperr.E(apperr.KindPreconditionFailed, "refresh tokens are not enabled")
	}

	userIDStr, err := s.rdb.Get(ctx, refreshKeyPrefix+refreshToken).Result()
	if err == redis.Nil {
		return nil, apperr.E(apperr.KindForbidden, "invalid or expired refresh token")
	}
	if err != nil {
		return nil, fmt.Errorf("lookup refresh token: %w", err)
	}

	var userID uint
	if _, err := fmt.Sscanf(userIDStr, "%d", &userID); err != nil {
		return nil, fmt.Errorf("decode refresh token payload: %w", err)
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return nil, apperr.E(apperr.KindForbidden, "user no longer exists")
	}

	// One-shot refresh tokens: the used one is revoked.
	s.rdb.Del(ctx, refreshKeyPrefix+refreshToken)

	return s.issueTokens(ctx, user)
}

func (s *AuthService) issueTokens(ctx context.Context, user *entity.User) (*TokenPair, error) {
	now := time.Now()
	expire := s.cfg.JWT.AccessTokenExpire

	claims := middleware.JWTClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			Issuer:    s.cfg.JWT.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expire)),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessToken, err := token.SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	pair := &TokenPair{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   int64(expire.Seconds()),
	}

	if s.rdb != nil {
		refreshToken := uuid.New().String()
		err := s.rdb.Set(ctx,
			refreshKeyPrefix+refreshToken,
			fmt.Sprintf("%d", user.ID),
			s.cfg.JWT.RefreshTokenExpire,
		).Err()
		if err != nil {
			return nil, fmt.Errorf("store refresh token: %w", err)
		}
		pair.RefreshToken = refreshToken
	}

	return pair, nil
}
