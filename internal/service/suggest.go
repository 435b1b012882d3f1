package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Nikelesh006/megasifi-search/internal/domain"
)

const (
	// suggestFetchLimit is how many candidate products are pulled from the
	// repository per request; each can yield up to two suggestions.
	suggestFetchLimit = 10

	// maxSuggestions caps the deduplicated list returned to the client.
	maxSuggestions = 8
)

// Suggest returns typeahead suggestions for the given raw input: product
// names and, when the name itself starts with the typed prefix, brand+name
// combinations. Empty or whitespace input returns an empty list without
// touching the repository. Repository failures propagate.
func (s *SearchService) Suggest(ctx context.Context, raw string) ([]domain.Suggestion, error) {
	q := strings.ToLower(strings.TrimSpace(raw))
	if q == "" {
		return []domain.Suggestion{}, nil
	}

	products, err := s.repo.FindByPrefix(ctx, q, suggestFetchLimit)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}

	seen := make(map[string]struct{})
	suggestions := make([]domain.Suggestion, 0, maxSuggestions)

	add := func(text, category string) {
		if _, dup := seen[text]; dup || len(suggestions) >= maxSuggestions {
			return
		}
		seen[text] = struct{}{}
		suggestions = append(suggestions, domain.Suggestion{Text: text, Category: category})
	}

	for _, p := range products {
		if p.Name == "" {
			continue
		}
		add(p.Name, p.Category)
		if p.Brand != "" && strings.HasPrefix(strings.ToLower(p.Name), q) {
			add(p.Brand+" "+p.Name, p.Category)
		}
	}

	s.logger.DebugContext(ctx, "suggestions computed",
		slog.String("prefix", q),
		slog.Int("count", len(suggestions)),
	)

	return suggestions, nil
}
