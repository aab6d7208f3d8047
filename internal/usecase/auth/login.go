package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/navaro-app/navaro-api/internal/httperr"
)

// ======================================================
// INPUT
// ======================================================

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ======================================================
// USE CASE
// ======================================================

type Login struct {
	repo      Repository
	jwtSecret string
}

func NewLogin(repo Repository, jwtSecret string) *Login {
	return &Login{repo: repo, jwtSecret: jwtSecret}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Login) Execute(ctx context.Context, in LoginInput) (*AuthOutput, error) {

	email := strings.ToLower(strings.TrimSpace(in.Email))

	user, err := uc.repo.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("invalid_credentials")
	}
	if err != nil {
		return nil, err
	}

	// Conta sem senha só entra por OTP.
	if user.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, httperr.ErrBusiness("invalid_credentials")
	}

	if !user.Active {
		return nil, httperr.ErrBusiness("account_disabled")
	}

	return issueFor(ctx, uc.repo, uc.jwtSecret, user)
}
