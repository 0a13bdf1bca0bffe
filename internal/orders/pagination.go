package orders

import (
	"encoding/base64"
	"encoding/json"
	"time"
)

type CursorPage struct {
	Items      interface{} `json:"items"`
	NextCursor string      `json:"next_cursor,omitempty"`
	HasMore    bool        `json:"has_more"`
}

type OrderCursor struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
}

func EncodeCursor(cursor OrderCursor) string {
	data, err := json.Marshal(cursor)
	if err != nil {
		return ""
	}
	return base64.URLEncoding.EncodeToString(data)
}

// DecodeCursor parses an opaque cursor. An empty cursor means "first page"
// and is reported through the second return value.
func DecodeCursor(encoded string) (OrderCursor, bool, error) {
	var cursor OrderCursor
	if encoded == "" {
		return cursor, false, nil
	}

	data, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return cursor, false, err
	}

	err = json.Unmarshal(data, &cursor)
	return cursor, err == nil, err
}
