package feed

import (
	"context"
	"errors"
	"testing"

	"github.com/mshoaibkhan0786/Mess-Site/internal/audit"
	"github.com/mshoaibkhan0786/Mess-Site/internal/mess"
)

type fakeFetcher struct {
	menu mess.WeekMenu
	err  error
}

func (f *fakeFetcher) FetchWeekMenu(ctx context.Context) (mess.WeekMenu, error) {
	return f.menu, f.err
}

func TestSyncWritesMenu(t *testing.T) {
	t.Setenv("FEED_MESS_ID", "annapurna")

	repo := mess.NewInMemoryRepository()
	if err := repo.Create(context.Background(), &mess.Mess{
		ID:   "annapurna",
		Name: "Annapurna",
		Menu: mess.PlaceholderMenu(),
	}); err != nil {
		t.Fatal(err)
	}

	fetched := mess.PlaceholderMenu()
	fetched["Monday"] = mess.DayMenu{Lunch: "Rajma Chawal"}

	logs := audit.NewInMemoryRepository()
	service := NewService(&fakeFetcher{menu: fetched}, mess.NewService(repo), logs)

	menu, err := service.Sync(context.Background(), "owner@mitmess.com", "Owner")
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if menu["Monday"].Lunch != "Rajma Chawal" {
		t.Fatalf("menu = %+v", menu["Monday"])
	}

	stored, err := repo.GetByID(context.Background(), "annapurna")
	if err != nil {
		t.Fatal(err)
	}
	if stored.Menu["Monday"].Lunch != "Rajma Chawal" {
		t.Fatal("synced menu not persisted")
	}

	if len(logs.Entries) != 1 || logs.Entries[0].Action != audit.ActionFeedSynced {
		t.Fatalf("audit entries = %+v", logs.Entries)
	}
}

func TestSyncFetchFailureLeavesMenu(t *testing.T) {
	t.Setenv("FEED_MESS_ID", "annapurna")

	repo := mess.NewInMemoryRepository()
	if err := repo.Create(context.Background(), &mess.Mess{
		ID:   "annapurna",
		Menu: mess.PlaceholderMenu(),
	}); err != nil {
		t.Fatal(err)
	}

	service := NewService(&fakeFetcher{err: ErrBadPayload}, mess.NewService(repo), audit.NewInMemoryRepository())

	_, err := service.Sync(context.Background(), "", "")
	if !errors.Is(err, ErrBadPayload) {
		t.Fatalf("err = %v, want ErrBadPayload", err)
	}

	stored, _ := repo.GetByID(context.Background(), "annapurna")
	if mess.HasMenu(stored.Menu) {
		t.Fatal("failed sync must not touch the stored menu")
	}
	if stored.LastUpdated != nil {
		t.Fatal("failed sync must not stamp lastUpdated")
	}
}

func TestSyncRequiresConfiguredMess(t *testing.T) {
	t.Setenv("FEED_MESS_ID", "")

	service := NewService(&fakeFetcher{}, mess.NewService(mess.NewInMemoryRepository()), audit.NewInMemoryRepository())

	if _, err := service.Sync(context.Background(), "", ""); err == nil {
		t.Fatal("expected an error when FEED_MESS_ID is unset")
	}
}
