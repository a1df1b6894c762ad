package llm

import "context"

// Client extracts a weekly menu from a menu photograph. Implementations
// return the model's raw text output; parsing and validation happen in
// ParseWeekMenu so a misbehaving model can never corrupt stored data.
type Client interface {
	ExtractMenu(ctx context.Context, imageData []byte, mimeType string) (string, error)
}
