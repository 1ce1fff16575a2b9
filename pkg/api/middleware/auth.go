package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dskvich/impulsyia-backend/pkg/api/response"
	"github.com/dskvich/impulsyia-backend/pkg/domain"
)

const userKey = "user"

type Authenticator interface {
	Authenticate(token string) (domain.User, error)
}

// Auth requires a valid "Authorization: Bearer <token>" header.
func Auth(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Header("WWW-Authenticate", "Bearer")
			response.WriteErrorResponse(c, http.StatusUnauthorized, "Not authenticated")
			return
		}

		user, err := authenticator.Authenticate(token)
		switch {
		case errors.Is(err, domain.ErrAuthNotConfigured):
			response.WriteErrorResponse(c, http.StatusInternalServerError, err.Error())
			return
		case err != nil:
			c.Header("WWW-Authenticate", "Bearer")
			response.WriteError(c, http.StatusUnauthorized, "Could not validate credentials", err)
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

func UserFromContext(c *gin.Context) (domain.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return domain.User{}, false
	}
	user, ok := v.(domain.User)
	return user, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
