package auth

import (
	"fmt"
	"log/slog"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dskvich/impulsyia-backend/pkg/domain"
)

// authenticator validates Supabase access tokens signed with the project JWT secret.
type authenticator struct {
	secret []byte
	parser *jwt.Parser
}

func NewAuthenticator(secret string) *authenticator {
	if secret == "" {
		slog.Warn("SUPABASE_JWT_SECRET is empty, protected routes will answer 500")
	} else {
		slog.Info("supabase jwt authentication enabled", "alg", jwt.SigningMethodHS256.Alg())
	}

	return &authenticator{
		secret: []byte(secret),
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}
}

func (a *authenticator) Authenticate(token string) (domain.User, error) {
	if len(a.secret) == 0 {
		return domain.User{}, domain.ErrAuthNotConfigured
	}

	claims := jwt.MapClaims{}
	if _, err := a.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}); err != nil {
		return domain.User{}, fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
	}

	// Supabase keeps the user id in "sub".
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return domain.User{}, fmt.Errorf("%w: missing subject", domain.ErrInvalidCredentials)
	}

	return domain.User{ID: sub, Claims: claims}, nil
}
