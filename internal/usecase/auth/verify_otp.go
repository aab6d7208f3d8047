package auth

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/navaro-app/navaro-api/internal/httperr"
	"github.com/navaro-app/navaro-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type VerifyOTPInput struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// ======================================================
// USE CASE
// ======================================================

type VerifyOTP struct {
	repo      Repository
	codes     CodeStore
	jwtSecret string
}

func NewVerifyOTP(repo Repository, codes CodeStore, jwtSecret string) *VerifyOTP {
	return &VerifyOTP{
		repo:      repo,
		codes:     codes,
		jwtSecret: jwtSecret,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *VerifyOTP) Execute(ctx context.Context, in VerifyOTPInput) (*AuthOutput, error) {

	phone := NormalizePhone(in.Phone)

	// 1️⃣ Confere e consome o código: cada código vale uma única vez.
	stored, found, err := uc.codes.Get(ctx, otpKey(phone))
	if err != nil {
		return nil, err
	}
	if !found || stored != in.Code {
		return nil, httperr.ErrBusiness("invalid_or_expired_code")
	}
	_ = uc.codes.Del(ctx, otpKey(phone))

	// 2️⃣ Procura a conta; primeiro acesso cria o cliente na hora.
	user, err := uc.repo.FindByPhone(ctx, phone)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = &models.User{
			Phone:        phone,
			Role:         models.RoleCustomer,
			ReferralCode: newReferralCode(),
			Active:       true,
		}
		if err := uc.repo.CreateUser(ctx, user); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	if !user.Active {
		return nil, httperr.ErrBusiness("account_disabled")
	}

	// 3️⃣ Token pronto; dono sai com o estabelecimento embutido.
	return issueFor(ctx, uc.repo, uc.jwtSecret, user)
}
