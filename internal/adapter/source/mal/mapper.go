package mal

import (
	"fmt"
	"strings"

	"github.com/mmcdole/malplan/internal/domain"
)

// mediaTypes maps manga_media_type_string values to domain subtypes
var mediaTypes = map[string]domain.MediaSubtype{
	"manga":       domain.SubtypeManga,
	"novel":       domain.SubtypeNovel,
	"light novel": domain.SubtypeNovel,
	"one-shot":    domain.SubtypeOneShot,
	"doujinshi":   domain.SubtypeDoujinshi,
	"manhwa":      domain.SubtypeManhwa,
	"manhua":      domain.SubtypeManhua,
}

// mapMangaEntries converts one page of feed records to domain items
func mapMangaEntries(entries []mangaEntry, baseURL string) ([]domain.TrackedItem, error) {
	items := make([]domain.TrackedItem, 0, len(entries))
	for _, e := range entries {
		item, err := mapMangaEntry(e, baseURL)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// mapMangaEntry converts a single feed record to a domain item
func mapMangaEntry(e mangaEntry, baseURL string) (domain.TrackedItem, error) {
	subtype, ok := mediaTypes[strings.ToLower(e.MangaMediaTypeString)]
	if !ok {
		return domain.TrackedItem{}, fmt.Errorf("manga %d has unknown media type %q", e.MangaID, e.MangaMediaTypeString)
	}

	return domain.TrackedItem{
		Kind:             domain.ListManga,
		ID:               e.MangaID,
		Amount:           e.MangaNumChapters,
		Title:            string(e.MangaTitle),
		PublishingStatus: e.MangaPublishingStatus,
		URL:              absoluteURL(baseURL, e.MangaURL),
		Subtype:          subtype,
	}, nil
}

// absoluteURL resolves the site-relative paths the feed uses ("/manga/2/Berserk")
func absoluteURL(baseURL, path string) string {
	if path == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}
