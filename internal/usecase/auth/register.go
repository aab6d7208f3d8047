package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/navaro-app/navaro-api/internal/httperr"
	"github.com/navaro-app/navaro-api/internal/models"
	"github.com/navaro-app/navaro-api/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type RegisterInput struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email"`

	// Senha é opcional: quem define uma pode entrar por e-mail depois.
	Password string `json:"password"`

	ReferralCode string `json:"referral_code"`
}

// ======================================================
// USE CASE
// ======================================================

type Register struct {
	repo      Repository
	jwtSecret string
}

func NewRegister(repo Repository, jwtSecret string) *Register {
	return &Register{repo: repo, jwtSecret: jwtSecret}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Register) Execute(ctx context.Context, in RegisterInput) (*AuthOutput, error) {

	// 1️⃣ Telefone é a identidade primária.
	phone := NormalizePhone(in.Phone)
	if len(phone) < 8 {
		return nil, httperr.ErrBusiness("invalid_phone")
	}

	if _, err := uc.repo.FindByPhone(ctx, phone); err == nil {
		return nil, httperr.ErrBusiness("phone_already_registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email != "" && !validators.IsEmailDomainValid(email) {
		return nil, httperr.ErrBusiness("invalid_email_domain")
	}

	user := &models.User{
		Name:         strings.TrimSpace(in.Name),
		Phone:        phone,
		Email:        email,
		Role:         models.RoleCustomer,
		ReferralCode: newReferralCode(),
		Active:       true,
	}

	// 2️⃣ Quem indicou fica registrado; o bônus sai no primeiro
	// atendimento concluído do indicado.
	if code := strings.ToUpper(strings.TrimSpace(in.ReferralCode)); code != "" {
		referrer, err := uc.repo.FindByReferralCode(ctx, code)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("invalid_referral_code")
		}
		if err != nil {
			return nil, err
		}
		user.ReferredByID = &referrer.ID
	}

	if in.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hashed)
	}

	// 3️⃣ Cria e já autentica.
	if err := uc.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return issueFor(ctx, uc.repo, uc.jwtSecret, user)
}
