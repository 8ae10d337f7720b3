package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

const (
	ClaimsKey = "claims"
)

// SessionClaims are the claims of an admin session token. Any authenticated
// subject is an admin; there is no role model.
type SessionClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// RequireSession validates the Bearer session token on every admin route.
// The token must be HS256 signed with secret, carry a subject and an expiry,
// and match audience when one is configured.
func RequireSession(secret, audience string) gin.HandlerFunc {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}
	parser := jwt.NewParser(opts...)

	return func(c *gin.Context) {
		if secret == "" {
			log.Warn().Str("path", c.Request.URL.Path).Msg("auth: AUTH_JWT_SECRET not set, admin route rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
			return
		}
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &SessionClaims{}
		token, err := parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err == nil && claims.Subject == "" {
			err = errors.New("missing sub")
		}
		if err != nil || !token.Valid {
			log.Debug().Err(err).Msg("auth: session token rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Token invalido o expirado"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// GetClaims is a helper to retrieve typed claims from the Gin context.
func GetClaims(c *gin.Context) *SessionClaims {
	claims, _ := c.Get(ClaimsKey)
	sc, _ := claims.(*SessionClaims)
	return sc
}

// IssueSession signs a session token for subject. Used by the development
// token command and tests.
func IssueSession(secret, subject, email, audience string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if audience != "" {
		claims.Audience = jwt.ClaimStrings{audience}
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
