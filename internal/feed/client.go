// Package feed syncs one mess's menu from an external provider that only
// speaks to browsers, reached through a public CORS-relay proxy.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/mshoaibkhan0786/Mess-Site/internal/mess"
)

var ErrBadPayload = errors.New("feed returned unexpected data")

// Provider response shape: menu entries keyed arbitrarily, each naming its
// weekday and carrying item lists per meal.
type feedPayload struct {
	Menu map[string]feedDay `json:"menu"`
}

type feedDay struct {
	Day   string `json:"day"`
	Meals struct {
		Breakfast feedMeal `json:"breakfast"`
		Lunch     feedMeal `json:"lunch"`
		Snacks    feedMeal `json:"snacks"`
		Dinner    feedMeal `json:"dinner"`
	} `json:"meals"`
}

type feedMeal struct {
	Items []string `json:"items"`
}

type Client struct {
	feedURL  string
	proxyURL string
	http     *http.Client
}

// NewClient reads FEED_URL and FEED_PROXY_URL. The proxy prefix receives
// the url-encoded feed address appended to it.
func NewClient() *Client {
	return &Client{
		feedURL:  os.Getenv("FEED_URL"),
		proxyURL: os.Getenv("FEED_PROXY_URL"),
		http:     &http.Client{},
	}
}

// FetchWeekMenu performs one relay fetch and converts the payload into the
// internal weekly schema. One-shot: no retry on failure.
func (c *Client) FetchWeekMenu(ctx context.Context) (mess.WeekMenu, error) {
	if c.feedURL == "" {
		return nil, errors.New("missing FEED_URL")
	}

	target := c.feedURL
	if c.proxyURL != "" {
		target = c.proxyURL + url.QueryEscape(c.feedURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed fetch failed: status %d", resp.StatusCode)
	}

	var payload feedPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, ErrBadPayload
	}

	return convert(payload), nil
}

// convert maps provider entries onto the weekly schema. Days the provider
// does not name keep N/A in every slot.
func convert(payload feedPayload) mess.WeekMenu {
	menu := mess.PlaceholderMenu()

	for _, entry := range payload.Menu {
		day := matchWeekday(entry.Day)
		if day == "" {
			continue
		}
		menu[day] = mess.DayMenu{
			Breakfast: joinItems(entry.Meals.Breakfast.Items),
			Lunch:     joinItems(entry.Meals.Lunch.Items),
			Snacks:    joinItems(entry.Meals.Snacks.Items),
			Dinner:    joinItems(entry.Meals.Dinner.Items),
		}
	}
	return menu
}

func matchWeekday(name string) string {
	for _, day := range mess.Weekdays {
		if strings.EqualFold(day, strings.TrimSpace(name)) {
			return day
		}
	}
	return ""
}

func joinItems(items []string) string {
	if len(items) == 0 {
		return mess.NoMeal
	}
	return strings.Join(items, ", ")
}
