package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type loginRequest struct {
	Code string `json:"code"`
}

// Login handles a single submit attempt. The UI serializes submits by
// disabling the control while a request is outstanding; the server just
// runs one sequential flow per request.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}

	session, err := h.service.Login(c.Request.Context(), req.Code)
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
	case errors.Is(err, ErrAccountRevoked):
		c.JSON(http.StatusForbidden, gin.H{"error": "Access Denied: Account has been revoked."})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, session)
	}
}

// Session is the passive page-load check: it revalidates the profile behind
// an existing token and forces logout for accounts revoked since issue.
func (h *Handler) Session(c *gin.Context) {
	userID := c.GetString("userID")

	user, err := h.service.CheckSession(c.Request.Context(), userID)
	if errors.Is(err, ErrAccountRevoked) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session revoked"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
