package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ListKind selects which tracked media category a run operates on
type ListKind string

const (
	ListManga ListKind = "Manga"
	ListAnime ListKind = "Anime"
)

// ParseListKind converts user input ("manga", "Anime", ...) to a ListKind
func ParseListKind(s string) (ListKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "manga":
		return ListManga, nil
	case "anime":
		return ListAnime, nil
	default:
		return "", &ListKindError{Value: s}
	}
}

// Prefix returns the lowercase name used to namespace per-list files
func (k ListKind) Prefix() string {
	return strings.ToLower(string(k))
}

func (k ListKind) String() string {
	return string(k)
}

// MediaSubtype is the catalog's classification of a manga entry
type MediaSubtype string

const (
	SubtypeManga     MediaSubtype = "Manga"
	SubtypeNovel     MediaSubtype = "Novel"
	SubtypeOneShot   MediaSubtype = "OneShot"
	SubtypeDoujinshi MediaSubtype = "Doujinshi"
	SubtypeManhwa    MediaSubtype = "Manhwa"
	SubtypeManhua    MediaSubtype = "Manhua"
)

// PublishingFinished is the provider status code for works that finished publication
const PublishingFinished uint8 = 2

// TrackedItem is one entry of the remote list. Identity is (Kind, ID).
type TrackedItem struct {
	Kind             ListKind     `json:"item_type"`
	ID               uint32       `json:"id"`
	Amount           int          `json:"amount"` // chapters (manga) or episodes (anime)
	Title            string       `json:"title"`
	PublishingStatus uint8        `json:"publishing_status"`
	URL              string       `json:"url"`
	Subtype          MediaSubtype `json:"media_type"`
}

// IsFinished reports whether the underlying work finished publication
func (i TrackedItem) IsFinished() bool {
	return i.PublishingStatus == PublishingFinished
}

// Handle turns the item into a ledger record with the given decision
func (i TrackedItem) Handle(how Decision) HandledDecision {
	return HandledDecision{ItemID: i.ID, Kind: i.Kind, How: how}
}

// Decision is the user's triage verdict for an item
type Decision string

const (
	DecisionAdded       Decision = "Added"
	DecisionNotFound    Decision = "NotFound"
	DecisionNotFinished Decision = "NotFinished"
)

// HandledDecision is a persisted triage verdict. It suppresses the item from
// future runs until the item disappears from the remote list.
type HandledDecision struct {
	ItemID uint32   `json:"item_id"`
	Kind   ListKind `json:"item_type"`
	How    Decision `json:"how"`
}

// SortDirection orders the working list by amount
type SortDirection int

const (
	SortDesc SortDirection = iota
	SortAsc
)

// ParseSortDirection converts "asc"/"desc" to a SortDirection
func ParseSortDirection(s string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc":
		return SortAsc, nil
	case "desc":
		return SortDesc, nil
	default:
		return SortDesc, &SortError{Value: s}
	}
}

// Sign is the multiplier applied to amount when ordering
func (d SortDirection) Sign() int {
	if d == SortAsc {
		return 1
	}
	return -1
}

func (d SortDirection) String() string {
	if d == SortAsc {
		return "asc"
	}
	return "desc"
}

// CacheSnapshot is the locally stored list for one ListKind
type CacheSnapshot struct {
	FetchedAt EpochTime     `json:"fetched_at"`
	User      string        `json:"user"`
	Items     []TrackedItem `json:"list"`
}

// EpochTime is a wall-clock instant stored as a duration since the Unix epoch,
// encoded as {"secs": N, "nanos": N}.
type EpochTime struct {
	time.Time
}

type epochDuration struct {
	Secs  uint64 `json:"secs"`
	Nanos uint32 `json:"nanos"`
}

// Since returns the elapsed time between t and now
func (t EpochTime) Since(now time.Time) time.Duration {
	return now.Sub(t.Time)
}

func (t EpochTime) MarshalJSON() ([]byte, error) {
	d := t.Sub(time.Unix(0, 0))
	if d < 0 {
		return nil, fmt.Errorf("timestamp %s predates the epoch", t.Time)
	}
	return json.Marshal(epochDuration{
		Secs:  uint64(d / time.Second),
		Nanos: uint32(d % time.Second),
	})
}

func (t *EpochTime) UnmarshalJSON(data []byte) error {
	var d epochDuration
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	t.Time = time.Unix(int64(d.Secs), int64(d.Nanos))
	return nil
}
