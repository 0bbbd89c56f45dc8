package service

import (
	"context"
	"errors"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"nexfolio_backend/internal/model"
	"nexfolio_backend/pkg/utils/jwt"
)

const maxDeviceLen = 255

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// LoginMeta describes where a sign-in came from.
type LoginMeta struct {
	IP        string
	UserAgent string
}

type AuthService struct {
	db     *gorm.DB
	tokens *jwt.Manager
	cost   int
}

func NewAuthService(db *gorm.DB, tokens *jwt.Manager) *AuthService {
	return &AuthService{db: db, tokens: tokens, cost: bcrypt.DefaultCost}
}

// Register creates a user and returns a session token for it.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, string, error) {
	email := model.NormalizeEmail(in.Email)

	var count int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, "", Internal("Failed to register", err)
	}
	if count > 0 {
		return nil, "", Conflict("Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, "", Internal("Failed to register", err)
	}

	user := model.User{
		Email:        email,
		Name:         in.Name,
		PasswordHash: string(hash),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", Conflict("Email already registered")
		}
		return nil, "", Internal("Failed to register", err)
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", Internal("Failed to register", err)
	}
	return &user, token, nil
}

// Login verifies credentials, records the sign-in and returns a session token.
func (s *AuthService) Login(ctx context.Context, email, password string, meta LoginMeta) (*model.User, string, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("email = ?", model.NormalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", Unauthorized("Invalid email or password")
	}
	if err != nil {
		return nil, "", Internal("Failed to log in", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", Unauthorized("Invalid email or password")
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", Internal("Failed to log in", err)
	}

	entry := model.LoginHistory{UserID: user.ID, Device: truncateUTF8(meta.UserAgent, maxDeviceLen), IP: meta.IP}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, "", Internal("Failed to log in", err)
	}

	return &user, token, nil
}

func (s *AuthService) User(ctx context.Context, userID uint) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound("User not found")
	}
	if err != nil {
		return nil, Internal("Failed to fetch user", err)
	}
	return &user, nil
}

// RecentLogins returns the caller's latest sign-ins, newest first.
func (s *AuthService) RecentLogins(ctx context.Context, userID uint, limit int) ([]model.LoginHistory, error) {
	var logins []model.LoginHistory
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&logins).Error
	if err != nil {
		return nil, Internal("Failed to fetch login history", err)
	}
	return logins, nil
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
