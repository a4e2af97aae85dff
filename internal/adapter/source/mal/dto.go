package mal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// mangaEntry is one record of the mangalist load.json feed
type mangaEntry struct {
	Status                int        `json:"status"` // user's reading status bucket
	MangaID               uint32     `json:"manga_id"`
	MangaTitle            flexString `json:"manga_title"`
	MangaNumChapters      int        `json:"manga_num_chapters"`
	MangaPublishingStatus uint8      `json:"manga_publishing_status"`
	MangaURL              string     `json:"manga_url"`
	MangaMediaTypeString  string     `json:"manga_media_type_string"`
}

// flexString accepts a JSON string or number. Titles such as "1984" or 100
// are sometimes sent unquoted.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = flexString(str)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("title is neither string nor number: %s", data)
	}
	if _, err := strconv.ParseFloat(num.String(), 64); err != nil {
		return fmt.Errorf("title is neither string nor number: %s", data)
	}
	*s = flexString(num.String())
	return nil
}
