// Package uploads runs the admin menu-update pipeline: store the image,
// have the AI read it, and only then touch the mess record.
package uploads

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mshoaibkhan0786/Mess-Site/internal/audit"
	"github.com/mshoaibkhan0786/Mess-Site/internal/llm"
	"github.com/mshoaibkhan0786/Mess-Site/internal/mess"
)

// ParseTimeout bounds the whole AI call. Exceeding it cancels the operation;
// there is no retry.
const ParseTimeout = 30 * time.Second

var (
	ErrTimeout     = errors.New("AI processing timed out")
	ErrInvalidFile = errors.New("invalid file")
	ErrForbidden   = errors.New("not allowed to update this mess")
)

var allowedExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
}

// Storage is the image store collaborator.
type Storage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

type Service struct {
	messes  *mess.Service
	storage Storage
	llm     llm.Client
	logs    audit.Repository
	timeout time.Duration
}

func NewService(messes *mess.Service, storage Storage, llmClient llm.Client, logs audit.Repository) *Service {
	return &Service{
		messes:  messes,
		storage: storage,
		llm:     llmClient,
		logs:    logs,
		timeout: ParseTimeout,
	}
}

// Result reports a completed menu update.
type Result struct {
	MessID   string        `json:"messId"`
	ImageURL string        `json:"imageUrl"`
	Menu     mess.WeekMenu `json:"menu"`
	Target   mess.MenuTarget `json:"target"`
}

// ProcessImage runs one upload end to end. Every failure leaves the stored
// menu exactly as it was: the write happens only after a fully parsed,
// schema-valid menu exists.
func (s *Service) ProcessImage(
	ctx context.Context,
	actor Actor,
	messID string,
	filename string,
	image []byte,
	target mess.MenuTarget,
) (*Result, error) {

	if !actor.MayManage(messID) {
		return nil, ErrForbidden
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return nil, ErrInvalidFile
	}

	m, err := s.messes.Get(ctx, messID)
	if err != nil {
		return nil, err
	}

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := fmt.Sprintf("messes/%s/%s%s", messID, uuid.New().String(), ext)
	imageURL, err := s.storage.Upload(ctx, key, contentType, bytes.NewReader(image))
	if err != nil {
		return nil, err
	}

	parseCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.llm.ExtractMenu(parseCtx, image, contentType)
	if err != nil {
		if errors.Is(parseCtx.Err(), context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, err
	}

	menu, err := llm.ParseWeekMenu(raw)
	if err != nil {
		return nil, err
	}

	if err := s.messes.ApplyMenu(ctx, messID, menu, target); err != nil {
		return nil, err
	}

	s.auditUpdate(ctx, actor, m, imageURL, target)

	return &Result{MessID: messID, ImageURL: imageURL, Menu: menu, Target: target}, nil
}

func (s *Service) auditUpdate(ctx context.Context, actor Actor, m *mess.Mess, imageURL string, target mess.MenuTarget) {
	week := "current week"
	if target == mess.TargetNextWeek {
		week = "next week"
	}

	err := s.logs.Append(ctx, &audit.Entry{
		Timestamp:  time.Now(),
		Action:     audit.ActionMenuUpdated,
		Detail:     fmt.Sprintf("menu for %s (%s) updated from %s", m.Name, week, imageURL),
		MessID:     &m.ID,
		ActorEmail: actor.Email,
		ActorName:  actor.Name,
	})
	if err != nil {
		log.Printf("audit append failed (menu update): %v", err)
	}
}
