package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"authly-be/internal/cache"
	"authly-be/internal/entities"
	"authly-be/internal/jwt"
	"authly-be/internal/models"
	"authly-be/internal/notifier"
	"authly-be/internal/password"
	"authly-be/internal/repository"
	"authly-be/internal/token"
)

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Signup(req *models.SignupRequest) (*models.SignupResponse, error)
	Login(req *models.LoginRequest) (*models.AuthResponse, error)
	RequestPasswordReset(req *models.ForgotPasswordRequest) error
	CompletePasswordReset(req *models.ResetPasswordRequest) error
	GetProfile(sessionToken string) (*models.Profile, error)
	ListAccounts() ([]*models.Profile, error)
}

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const profileCacheTTL = 5 * time.Minute

type authService struct {
	userRepo       repository.UserRepository
	jwtService     *jwt.JWTService
	hasher         password.Hasher
	notifier       notifier.Notifier
	cache          cache.Cache
	resetTokenTTL  time.Duration
	requiredFields map[string]bool
	ctx            context.Context
}

// NewAuthService creates a new auth service. requiredFields names the signup
// profile fields (beyond email and password) that must be present; cacheClient
// may be nil for degraded operation without a cache.
func NewAuthService(
	userRepo repository.UserRepository,
	jwtService *jwt.JWTService,
	hasher password.Hasher,
	notif notifier.Notifier,
	cacheClient cache.Cache,
	resetTokenTTL time.Duration,
	requiredFields []string,
) AuthService {
	required := make(map[string]bool, len(requiredFields))
	for _, f := range requiredFields {
		required[strings.ToLower(strings.TrimSpace(f))] = true
	}

	return &authService{
		userRepo:       userRepo,
		jwtService:     jwtService,
		hasher:         hasher,
		notifier:       notif,
		cache:          cacheClient,
		resetTokenTTL:  resetTokenTTL,
		requiredFields: required,
		ctx:            context.Background(),
	}
}

// Signup creates a new user account and logs the user in
func (s *authService) Signup(req *models.SignupRequest) (*models.SignupResponse, error) {
	if err := s.validateSignup(req); err != nil {
		return nil, err
	}

	if res := password.Score(req.Password); res.Strength == password.StrengthWeak {
		return nil, &WeakPasswordError{Feedback: res.Feedback}
	}

	// Pre-check for a friendlier error; the unique index on email is what
	// actually guards against concurrent duplicate signups.
	existing, err := s.userRepo.FindByEmail(req.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateAccount
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.userRepo.Create(&entities.User{
		Email:        req.Email,
		Username:     req.Username,
		Phone:        req.Phone,
		Gender:       req.Gender,
		Height:       req.Height,
		Weight:       req.Weight,
		PasswordHash: hash,
	})
	if errors.Is(err, repository.ErrDuplicateEmail) {
		// Lost the race against a concurrent signup for the same email.
		return nil, ErrDuplicateAccount
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	sessionToken, err := s.jwtService.GenerateToken(created.ID, created.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.SignupResponse{
		Message: "Signup successful! You can now login.",
		Token:   sessionToken,
		User:    sanitize(created),
	}, nil
}

func (s *authService) validateSignup(req *models.SignupRequest) error {
	if req.Email == "" || req.Password == "" {
		return validationErrorf("Email and password are required")
	}
	if !emailRegex.MatchString(req.Email) {
		return validationErrorf("Invalid email format")
	}
	if s.requiredFields["username"] && req.Username == "" {
		return validationErrorf("Username is required")
	}
	if s.requiredFields["phone"] && req.Phone == "" {
		return validationErrorf("Phone is required")
	}
	if s.requiredFields["gender"] && req.Gender == nil {
		return validationErrorf("Gender is required")
	}
	if s.requiredFields["height"] && req.Height == nil {
		return validationErrorf("Height is required")
	}
	if s.requiredFields["weight"] && req.Weight == nil {
		return validationErrorf("Weight is required")
	}
	return nil
}

// Login authenticates a user and returns the profile with a session token
func (s *authService) Login(req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	sessionToken, err := s.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.AuthResponse{
		Message: "Login successful",
		Token:   sessionToken,
		User:    sanitize(user),
	}, nil
}

// RequestPasswordReset issues a reset token when the account matches. The
// caller gets the same nil result whether or not the account exists, so the
// endpoint cannot be used to enumerate accounts.
func (s *authService) RequestPasswordReset(req *models.ForgotPasswordRequest) error {
	if req.Email == "" {
		return validationErrorf("Email is required")
	}

	user, err := s.userRepo.FindByEmail(req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}

	// Optional second factor: a supplied phone number must match the stored
	// one, ignoring formatting.
	if req.Phone != "" && normalizePhone(req.Phone) != normalizePhone(user.Phone) {
		return nil
	}

	resetToken, err := token.GenerateResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	expiry := time.Now().Add(s.resetTokenTTL)
	if err := s.userRepo.SetResetToken(user.Email, resetToken, expiry); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	if err := s.notifier.SendPasswordReset(user.Email, resetToken); err != nil {
		// The token is already persisted; a delivery failure should not
		// surface as a different response shape.
		log.Printf("Warning: failed to deliver reset notification for %s: %v", user.Email, err)
	}

	return nil
}

// CompletePasswordReset consumes a reset token and installs the new password
func (s *authService) CompletePasswordReset(req *models.ResetPasswordRequest) error {
	if req.Token == "" || req.NewPassword == "" {
		return validationErrorf("Token and new password are required")
	}

	if res := password.Score(req.NewPassword); res.Strength == password.StrengthWeak {
		return &WeakPasswordError{Feedback: res.Feedback}
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	// Consumption is atomic with the password update; unknown, superseded,
	// and expired tokens are indistinguishable here.
	user, err := s.userRepo.ConsumeResetToken(req.Token, hash, time.Now())
	if errors.Is(err, repository.ErrNotFound) {
		return ErrInvalidOrExpiredToken
	}
	if err != nil {
		return fmt.Errorf("failed to consume reset token: %w", err)
	}

	s.invalidateProfile(user.Email)
	return nil
}

// GetProfile verifies a session token and returns the sanitized profile of
// the identity it is bound to
func (s *authService) GetProfile(sessionToken string) (*models.Profile, error) {
	if sessionToken == "" {
		return nil, ErrUnauthenticated
	}

	claims, err := s.jwtService.ValidateToken(sessionToken)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	if s.cache != nil {
		var cached models.Profile
		if err := s.cache.GetJSON(s.ctx, profileCacheKey(claims.Email), &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.userRepo.FindByEmail(claims.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	profile := sanitize(user)
	if s.cache != nil {
		if err := s.cache.SetJSON(s.ctx, profileCacheKey(user.Email), profile, profileCacheTTL); err != nil {
			log.Printf("Warning: failed to cache profile for %s: %v", user.Email, err)
		}
	}

	return &profile, nil
}

// ListAccounts returns the sanitized profiles of all users. This backs a
// diagnostic endpoint that must stay disabled outside development.
func (s *authService) ListAccounts() ([]*models.Profile, error) {
	users, err := s.userRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	profiles := make([]*models.Profile, 0, len(users))
	for _, user := range users {
		p := sanitize(user)
		profiles = append(profiles, &p)
	}
	return profiles, nil
}

func (s *authService) invalidateProfile(email string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(s.ctx, profileCacheKey(email)); err != nil {
		log.Printf("Warning: failed to invalidate cached profile for %s: %v", email, err)
	}
}

func profileCacheKey(email string) string {
	return "profile:" + email
}

func sanitize(user *entities.User) models.Profile {
	return models.Profile{
		UserID:    user.ID,
		Email:     user.Email,
		Username:  user.Username,
		Phone:     user.Phone,
		Gender:    user.Gender,
		Height:    user.Height,
		Weight:    user.Weight,
		CreatedAt: user.CreatedAt,
	}
}

// normalizePhone strips formatting punctuation so that "+1 (555) 123-4567"
// and "+15551234567" compare equal.
func normalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
