package testserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"calibra/coach-app/internal/domain"
)

const (
	authHeader         = "x-auth-token"
	contextUserIDKey   = "userID"
	contextUserRoleKey = "userRole"
)

// jwtClaims mirrors the token payload minted at login.
type jwtClaims struct {
	UserID string      `json:"uid"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

func (s *Server) generateJWT(userID string, role domain.Role) (string, error) {
	claims := &jwtClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "calibra-testserver",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// authMiddleware validates the token carried in the x-auth-token header.
func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader(authHeader)
		if tokenString == "" {
			abortWithError(c, http.StatusUnauthorized, "No hay token, autorización denegada")
			return
		}

		claims := &jwtClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(s.jwtSecret), nil
		})
		if err != nil || !token.Valid || claims.UserID == "" || claims.Role == "" {
			abortWithError(c, http.StatusUnauthorized, "Token no válido")
			return
		}

		c.Set(contextUserIDKey, claims.UserID)
		c.Set(contextUserRoleKey, claims.Role)
		c.Next()
	}
}

// roleMiddleware rejects callers whose role does not match. Runs after
// authMiddleware.
func (s *Server) roleMiddleware(allowed domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleRaw, exists := c.Get(contextUserRoleKey)
		if !exists {
			abortWithError(c, http.StatusInternalServerError, "Rol no disponible")
			return
		}
		if role, ok := roleRaw.(domain.Role); !ok || role != allowed {
			abortWithError(c, http.StatusForbidden, "Acceso denegado")
			return
		}
		c.Next()
	}
}

func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"msg": message})
}

func currentUserID(c *gin.Context) string {
	id, _ := c.Get(contextUserIDKey)
	s, _ := id.(string)
	return s
}
