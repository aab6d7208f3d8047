package auth

import (
	"context"
	"log"

	"github.com/navaro-app/navaro-api/internal/httperr"
)

// ======================================================
// INPUT
// ======================================================

type RequestOTPInput struct {
	Phone string `json:"phone" binding:"required"`
}

// ======================================================
// USE CASE
// ======================================================

type RequestOTP struct {
	codes CodeStore

	// logCodes escreve o código no log no lugar do envio por SMS; ligado
	// só em desenvolvimento (OTP_LOG_CODES).
	logCodes bool
}

func NewRequestOTP(codes CodeStore, logCodes bool) *RequestOTP {
	return &RequestOTP{
		codes:    codes,
		logCodes: logCodes,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *RequestOTP) Execute(ctx context.Context, in RequestOTPInput) error {

	phone := NormalizePhone(in.Phone)
	if len(phone) < 8 {
		return httperr.ErrBusiness("invalid_phone")
	}

	code, err := generateCode()
	if err != nil {
		return err
	}

	// Pedir de novo substitui o código anterior; só o último vale.
	if err := uc.codes.Set(ctx, otpKey(phone), code, otpTTL); err != nil {
		return err
	}

	// TODO: integrar provedor de SMS; sem ele o código só sai no log de
	// desenvolvimento.
	if uc.logCodes {
		log.Printf("[auth] verification code for %s: %s", phone, code)
	}

	return nil
}
