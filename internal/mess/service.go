package mess

import (
	"context"
	"errors"
	"strings"
	"time"
)

var ErrValidation = errors.New("missing required fields")

// MenuTarget selects which week's slot an update writes to.
type MenuTarget string

const (
	TargetCurrentWeek MenuTarget = "current"
	TargetNextWeek    MenuTarget = "next"
)

// Card is the directory view of one mess: either its active menu plus the
// inferred special, or the "not uploaded" presentation with no dish data.
type Card struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Color         string     `json:"color"`
	MenuUploaded  bool       `json:"menuUploaded"`
	TodaysSpecial string     `json:"todaysSpecial"`
	Menu          WeekMenu   `json:"menu,omitempty"`
	LastUpdated   *time.Time `json:"lastUpdated,omitempty"`
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// BuildCard derives the display state for one mess at the given instant.
// An expired or empty menu yields no dish data at all.
func BuildCard(m *Mess, now time.Time) Card {
	card := Card{
		ID:          m.ID,
		Name:        m.Name,
		Color:       m.Color,
		LastUpdated: m.LastUpdated,
	}

	active := ActiveMenu(m, now)
	if IsExpired(m, now) || !HasMenu(active) {
		card.TodaysSpecial = NoMeal
		return card
	}

	today, ok := active[now.Weekday().String()]
	if !ok {
		today = active["Monday"]
	}

	card.MenuUploaded = true
	card.TodaysSpecial = SpecialDish(today)
	card.Menu = active
	return card
}

func (s *Service) ListCards(ctx context.Context) ([]Card, error) {
	messes, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	cards := make([]Card, 0, len(messes))
	for i := range messes {
		cards = append(cards, BuildCard(&messes[i], now))
	}
	return cards, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Mess, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateMess registers a new mess with an empty placeholder menu.
// The id is a stable slug of the name.
func (s *Service) CreateMess(ctx context.Context, name, color string) (*Mess, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrValidation
	}

	m := &Mess{
		ID:    Slug(name),
		Name:  name,
		Color: color,
		Menu:  PlaceholderMenu(),
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// ApplyMenu writes a fully parsed menu to the chosen week slot and stamps
// lastUpdated. Callers must only pass schema-valid menus; a partial parse
// never reaches this point.
func (s *Service) ApplyMenu(ctx context.Context, id string, menu WeekMenu, target MenuTarget) error {
	if len(menu) == 0 {
		return ErrValidation
	}

	now := s.now()
	if target == TargetNextWeek {
		return s.repo.UpdateNextWeekMenu(ctx, id, menu, StartOfWeek(now), now)
	}
	return s.repo.UpdateMenu(ctx, id, menu, now)
}

// Slug turns a display name into a stable document id.
func Slug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	return slug
}
