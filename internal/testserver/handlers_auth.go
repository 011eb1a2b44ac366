package testserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"calibra/coach-app/internal/domain"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Code     string `json:"code"`
}

func identityOf(record *userRecord) gin.H {
	return gin.H{
		"_id":     record.user.ID,
		"name":    record.user.Name,
		"surname": record.user.Surname,
		"email":   record.user.Email,
		"role":    record.role,
		"avatar":  record.user.Avatar,
	}
}

func (s *Server) handleLogin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Datos de acceso incompletos")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record := s.findUserByEmail(req.Email)
	if record == nil || !record.activated {
		abortWithError(c, http.StatusUnauthorized, "Credenciales inválidas")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(record.passwordHash), []byte(req.Password)) != nil {
		abortWithError(c, http.StatusUnauthorized, "Credenciales inválidas")
		return
	}

	token, err := s.generateJWT(record.user.ID, record.role)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "No se pudo generar el token")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  identityOf(record),
		"role":  record.role,
	})
}

func (s *Server) handleMe(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := s.findUser(currentUserID(c))
	if record == nil {
		abortWithError(c, http.StatusUnauthorized, "Usuario no encontrado")
		return
	}
	c.JSON(http.StatusOK, identityOf(record))
}

// handleClaimAccount consumes a one-time invite code: the account gets
// its password, the code is cleared, and a session token is issued.
func (s *Server) handleClaimAccount(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Datos incompletos")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record := s.findUserByEmail(req.Email)
	if record == nil || record.user.InviteCode == "" || record.user.InviteCode != strings.ToUpper(req.Code) {
		abortWithError(c, http.StatusBadRequest, "Código de invitación no válido")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "No se pudo activar la cuenta")
		return
	}
	record.passwordHash = string(hash)
	record.activated = true
	record.user.InviteCode = ""
	record.user.Profile.Status = "Activo"

	token, err := s.generateJWT(record.user.ID, record.role)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "No se pudo generar el token")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  identityOf(record),
		"role":  record.role,
	})
}

func (s *Server) handleResetPassword(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Datos incompletos")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record := s.findUserByEmail(req.Email)
	if record == nil || record.recoveryCode == "" || record.recoveryCode != strings.ToUpper(req.Code) {
		abortWithError(c, http.StatusBadRequest, "Código de recuperación no válido")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "No se pudo restablecer la contraseña")
		return
	}
	record.passwordHash = string(hash)
	record.recoveryCode = ""
	c.JSON(http.StatusOK, gin.H{"msg": "Contraseña actualizada"})
}

// roleOf is used by user listings to filter out the coach itself.
func roleOf(record *userRecord) domain.Role {
	return record.role
}
