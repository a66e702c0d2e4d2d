package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"photogram-api/apperrors"
	"photogram-api/cache"
	"photogram-api/forms"
	"photogram-api/metrics"
	"photogram-api/models"
)

// Claims carries the user id in "sub" and a per-token id in "jti" used for revocation.
type Claims struct {
	jwt.RegisteredClaims
}

func (c *Claims) UserID() string {
	return c.Subject
}

// WelcomeMailer is implemented by EmailService.
type WelcomeMailer interface {
	SendWelcomeEmail(email, username string) error
}

type AuthService struct {
	db     *gorm.DB
	secret []byte
	ttl    time.Duration
	tokens cache.TokenStore
	mailer WelcomeMailer
	log    *slog.Logger
	now    func() time.Time
}

func NewAuthService(db *gorm.DB, secret string, ttl time.Duration, tokens cache.TokenStore, mailer WelcomeMailer, log *slog.Logger) *AuthService {
	return &AuthService{
		db:     db,
		secret: []byte(secret),
		ttl:    ttl,
		tokens: tokens,
		mailer: mailer,
		log:    log,
		now:    time.Now,
	}
}

func (s *AuthService) TokenTTL() time.Duration {
	return s.ttl
}

// Register creates the account and logs the user in by returning a token.
func (s *AuthService) Register(ctx context.Context, form forms.RegisterForm) (*models.User, string, error) {
	db := s.db.WithContext(ctx)
	username := models.NormalizeUsername(form.Username)

	var existing int64
	if err := db.Model(&models.User{}).Where("username = ?", username).Count(&existing).Error; err != nil {
		return nil, "", fmt.Errorf("failed to check username: %w", err)
	}
	if existing > 0 {
		return nil, "", apperrors.ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(form.Password1), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:       uuid.NewString(),
		Username: username,
		Email:    form.Email,
		Password: string(hashedPassword),
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", apperrors.ErrUsernameTaken
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, _, err := s.IssueToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	metrics.UsersRegisteredTotal.Inc()
	s.log.Info("User registered", slog.String("user_id", user.ID), slog.String("username", user.Username))

	if s.mailer != nil {
		go func(email, name string) {
			if err := s.mailer.SendWelcomeEmail(email, name); err != nil {
				s.log.Warn("Failed to send welcome email", slog.String("email", email), slog.String("error", err.Error()))
			}
		}(user.Email, user.Username)
	}

	return &user, token, nil
}

// Authenticate checks the credentials and returns a fresh token.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, string, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", models.NormalizeUsername(username)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, _, err := s.IssueToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// IssueToken signs an HS256 token for userID.
func (s *AuthService) IssueToken(userID string) (string, *Claims, error) {
	now := s.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, claims, nil
}

// ParseToken validates signature, expiry and revocation.
func (s *AuthService) ParseToken(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid || claims.Subject == "" {
		return nil, apperrors.ErrUnauthorized
	}

	revoked, err := s.tokens.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return nil, apperrors.ErrUnauthorized
	}
	return claims, nil
}

// Revoke blocks the token until it expires.
func (s *AuthService) Revoke(ctx context.Context, claims *Claims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	ttl := claims.ExpiresAt.Time.Sub(s.now())
	if err := s.tokens.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	s.log.Info("Token revoked", slog.String("user_id", claims.Subject))
	return nil
}

// CurrentUser loads the authenticated user.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	return findUser(s.db.WithContext(ctx), userID)
}
