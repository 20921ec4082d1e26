package pagination

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
)

// Cursor is an opaque continuation token marking a position in an ordered
// result set (newest first). It encodes the creation timestamp and ID of the
// last row of a page so the next page can resume strictly after it.
type Cursor struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
}

// Encode serializes the cursor into a URL-safe opaque token.
func (c Cursor) Encode() string {
	data, err := json.Marshal(c)
	if err != nil {
		// Cursor fields are a timestamp and a string; marshaling cannot fail.
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(data)
}

// DecodeCursor parses a token produced by Encode.
func DecodeCursor(token string) (Cursor, error) {
	var c Cursor

	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return c, fmt.Errorf("decode cursor token: %w", err)
	}

	if err := json.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("unmarshal cursor: %w", err)
	}

	return c, nil
}
