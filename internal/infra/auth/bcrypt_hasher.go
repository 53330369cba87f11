// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"pharmanet/config"
	domainerrors "pharmanet/internal/domain/errors"
	"pharmanet/internal/domain/service"
	"pharmanet/internal/errors"
)

var forbiddenPasswords = []string{"password", "12345678", "qwerty", "letmein", "pharmanet"}

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost     int
	strength config.PasswordStrengthConfig
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	hasher := &bcryptHasher{cost: bcrypt.DefaultCost}
	if cfg == nil {
		return hasher
	}
	if cfg.Auth != nil && cfg.Auth.BcryptCost >= bcrypt.MinCost && cfg.Auth.BcryptCost <= bcrypt.MaxCost {
		hasher.cost = cfg.Auth.BcryptCost
	}
	if cfg.PasswordStrength != nil {
		hasher.strength = *cfg.PasswordStrength
	}

	return hasher
}

// Hash validates the password against the configured strength rules and
// generates a salted hash with bcrypt.
func (h *bcryptHasher) Hash(password string) (string, error) {
	if err := h.validateStrength(password); err != nil {
		return "", err
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", errors.Wrap(domainerrors.ErrInternalError.WithDetails(err.Error()), "failed to hash password")
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	// err is nil if the password and hash match.
	return err == nil
}

func (h *bcryptHasher) validateStrength(password string) error {
	rules := h.strength
	if rules.MinLength > 0 && len(password) < rules.MinLength {
		return weakPassword("password is too short")
	}
	if rules.MaxLength > 0 && len(password) > rules.MaxLength {
		return weakPassword("password is too long")
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}

	switch {
	case rules.RequireUppercase && !upper:
		return weakPassword("password needs an uppercase letter")
	case rules.RequireLowercase && !lower:
		return weakPassword("password needs a lowercase letter")
	case rules.RequireNumbers && !digit:
		return weakPassword("password needs a digit")
	case rules.RequireSpecial && !special:
		return weakPassword("password needs a special character")
	}

	lowered := strings.ToLower(password)
	for _, word := range forbiddenPasswords {
		if lowered == word {
			return weakPassword("password is too common")
		}
	}

	return nil
}

func weakPassword(details string) error {
	return errors.Wrap(domainerrors.ErrValidationFailed.WithDetails(details), "weak password")
}
