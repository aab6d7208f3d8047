package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/navaro-app/navaro-api/internal/models"
)

const tokenTTL = 24 * time.Hour

type AuthOutput struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func NewToken(secret string, user *models.User, establishmentID uint) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"role":  user.Role,
		"estId": establishmentID,
		"exp":   time.Now().Add(tokenTTL).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// issueFor monta a resposta autenticada; donos e equipe carregam o id
// do estabelecimento no token.
func issueFor(
	ctx context.Context,
	repo Repository,
	secret string,
	user *models.User,
) (*AuthOutput, error) {

	var estID uint
	est, err := repo.OwnedEstablishment(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	switch {
	case est != nil:
		estID = est.ID
	case user.Role == models.RoleStaff:
		estID, err = repo.StaffEstablishmentID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
	}

	token, err := NewToken(secret, user, estID)
	if err != nil {
		return nil, err
	}

	return &AuthOutput{Token: token, User: user}, nil
}
