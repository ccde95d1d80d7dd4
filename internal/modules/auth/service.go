package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pulsefit/core/internal/models"
	"github.com/pulsefit/core/internal/modules/activity"
	"github.com/pulsefit/core/internal/pkg/apperr"
	"github.com/pulsefit/core/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 8

type Service struct {
	db       *gorm.DB
	recorder *activity.Recorder
}

func NewService(db *gorm.DB, recorder *activity.Recorder) *Service {
	return &Service{db: db, recorder: recorder}
}

// Login verifies an email/password pair and issues a bearer token.
// Unknown email and wrong password fail identically so callers cannot
// enumerate accounts.
func (s *Service) Login(email, password, ip string) (string, *models.UserModel, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var u models.UserModel
	if err := s.db.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperr.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", nil, apperr.ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.db.Model(&u).Update("last_login", now).Error; err != nil {
		return "", nil, err
	}
	u.LastLogin = &now

	token, err := jwt.Sign(u.ID, u.Role, jwt.DefaultTTL)
	if err != nil {
		return "", nil, err
	}

	s.recorder.Record(activity.Actor{UserID: &u.ID, IP: ip}, "login", "user", u.ID,
		fmt.Sprintf("user %s logged in", u.Email))
	return token, &u, nil
}

// GetByID re-resolves the user row; a deleted user fails even with a
// structurally valid token.
func (s *Service) GetByID(id uint) (*models.UserModel, error) {
	var u models.UserModel
	if err := s.db.First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// ChangePassword verifies the current password before overwriting.
func (s *Service) ChangePassword(id uint, currentPwd, newPwd string, actor activity.Actor) error {
	if len(newPwd) < minPasswordLength {
		return apperr.ErrPasswordTooShort
	}

	var u models.UserModel
	if err := s.db.Select("id, email, password").First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrUserNotFound
		}
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(currentPwd)); err != nil {
		return apperr.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.db.Model(&u).Update("password", string(hash)).Error; err != nil {
		return err
	}

	s.recorder.Record(actor, "change_password", "user", u.ID,
		fmt.Sprintf("password changed for %s", u.Email))
	return nil
}

// Logout is journal-only; the client discards its token.
func (s *Service) Logout(actor activity.Actor) {
	var id uint
	if actor.UserID != nil {
		id = *actor.UserID
	}
	s.recorder.Record(actor, "logout", "user", id, "user logged out")
}

// RequireRole reports whether the role is in the allowed set.
func RequireRole(role string, allowed ...string) bool {
	for _, a := range allowed {
		if a == role {
			return true
		}
	}
	return false
}
