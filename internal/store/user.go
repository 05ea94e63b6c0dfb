package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Lewin99/BuddyGet/internal/models"
	"github.com/Lewin99/BuddyGet/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserStore struct {
	db         *gorm.DB
	bcryptCost int
}

func NewUserStore(db *gorm.DB, bcryptCost int) *UserStore {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserStore{db: db, bcryptCost: bcryptCost}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user; emails are unique case-insensitively.
func (s *UserStore) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	email = normalizeEmail(email)
	if err := util.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := util.ValidatePassword(password); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if len(name) > 64 {
		return nil, util.Invalid("name", "too long, max 64 characters")
	}

	db := s.db.WithContext(ctx)
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("email %s: %w", email, util.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("email %s: %w", email, util.ErrConflict)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Authenticate checks credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *UserStore) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("bad credentials: %w", util.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("bad credentials: %w", util.ErrUnauthenticated)
	}
	return &user, nil
}

// Get loads a user by id.
func (s *UserStore) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err, "user", id)
	}
	return &user, nil
}
