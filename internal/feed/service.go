package feed

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mshoaibkhan0786/Mess-Site/internal/audit"
	"github.com/mshoaibkhan0786/Mess-Site/internal/mess"
)

// Fetcher lets tests substitute the relay client.
type Fetcher interface {
	FetchWeekMenu(ctx context.Context) (mess.WeekMenu, error)
}

// Service wires the one proxy-fed mess to the shared menu update path.
type Service struct {
	fetcher Fetcher
	messes  *mess.Service
	logs    audit.Repository
	messID  string
}

func NewService(fetcher Fetcher, messes *mess.Service, logs audit.Repository) *Service {
	return &Service{
		fetcher: fetcher,
		messes:  messes,
		logs:    logs,
		messID:  os.Getenv("FEED_MESS_ID"),
	}
}

// Sync fetches the external menu and writes it through the same path as an
// AI upload. Failures leave the stored menu untouched.
func (s *Service) Sync(ctx context.Context, actorEmail, actorName string) (mess.WeekMenu, error) {
	if s.messID == "" {
		return nil, errors.New("missing FEED_MESS_ID")
	}

	menu, err := s.fetcher.FetchWeekMenu(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.messes.ApplyMenu(ctx, s.messID, menu, mess.TargetCurrentWeek); err != nil {
		return nil, err
	}

	err = s.logs.Append(ctx, &audit.Entry{
		Timestamp:  time.Now(),
		Action:     audit.ActionFeedSynced,
		Detail:     fmt.Sprintf("menu for mess %s synced from external feed", s.messID),
		MessID:     &s.messID,
		ActorEmail: actorEmail,
		ActorName:  actorName,
	})
	if err != nil {
		log.Printf("audit append failed (feed sync): %v", err)
	}

	return menu, nil
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Sync(c *gin.Context) {
	menu, err := h.service.Sync(
		c.Request.Context(),
		c.GetString("userEmail"),
		c.GetString("userName"),
	)
	switch {
	case errors.Is(err, ErrBadPayload):
		c.JSON(http.StatusBadGateway, gin.H{"error": "feed returned unexpected data"})
	case errors.Is(err, mess.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "feed mess not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Menu synced from feed", "menu": menu})
	}
}
