package mess

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mshoaibkhan0786/Mess-Site/internal/audit"
)

type Handler struct {
	service *Service
	logs    audit.Repository
}

func NewHandler(service *Service, logs audit.Repository) *Handler {
	return &Handler{service: service, logs: logs}
}

// --------------------------------------------------
// Public directory
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	cards, err := h.service.ListCards(c.Request.Context())
	if err != nil {
		// Non-critical read: log-and-empty rather than a hard failure.
		c.JSON(http.StatusOK, gin.H{"messes": []Card{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messes": cards})
}

func (h *Handler) Get(c *gin.Context) {
	m, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "mess not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, m)
}

// --------------------------------------------------
// Admin: create mess (super_admin only, gated in router)
// --------------------------------------------------
type createRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	m, err := h.service.CreateMess(c.Request.Context(), req.Name, req.Color)
	if errors.Is(err, ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	appendErr := h.logs.Append(c.Request.Context(), &audit.Entry{
		Timestamp:  time.Now(),
		Action:     audit.ActionMessCreated,
		Detail:     fmt.Sprintf("mess %s created", m.Name),
		MessID:     &m.ID,
		ActorEmail: c.GetString("userEmail"),
		ActorName:  c.GetString("userName"),
	})
	if appendErr != nil {
		log.Printf("audit append failed (mess create): %v", appendErr)
	}

	c.JSON(http.StatusCreated, m)
}
