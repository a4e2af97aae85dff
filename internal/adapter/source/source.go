package source

import (
	"fmt"
	"log/slog"

	"github.com/mmcdole/malplan/internal/adapter/source/mal"
	"github.com/mmcdole/malplan/internal/domain"
)

// New creates the ListProvider for a list kind.
// Only manga lists are implemented; anime returns domain.ErrUnsupportedList.
func New(kind domain.ListKind, opts mal.Options, logger *slog.Logger) (domain.ListProvider, error) {
	switch kind {
	case domain.ListManga:
		return mal.NewClient(opts, logger), nil
	case domain.ListAnime:
		return nil, fmt.Errorf("%s list: %w", kind.Prefix(), domain.ErrUnsupportedList)
	default:
		return nil, &domain.ListKindError{Value: string(kind)}
	}
}
