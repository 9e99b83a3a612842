package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ItemStatusLost is the only status value with client-side meaning:
// a lost item may carry a context message for the finder.
const ItemStatusLost = "lost"

// Item mirrors what the server renders for /api/admin/items. The schema is
// owned by the server; the client only decodes it to print it.
type Item struct {
	ID              int64      `json:"id"`
	Key             string     `json:"key"`
	Name            string     `json:"name"`
	Icon            string     `json:"icon"`
	Status          string     `json:"status"`
	Phone           FlexString `json:"phone"`
	LostDescription string     `json:"lost_description"`
	FindIP          string     `json:"find_ip"`
	CreateTime      string     `json:"create_time"`
	LostTime        string     `json:"lost_time"`
}

// ItemPatch is the parameter set of an item update.
// Status is sent only when non-empty; Context only when Status is "lost".
type ItemPatch struct {
	ID      string
	Key     string
	Name    string
	Icon    string
	Phone   string
	Status  string
	Context string
}

// DefaultResponse is the server's own {code, data, msg} wrapper.
type DefaultResponse struct {
	Code int             `json:"code"`
	Data json.RawMessage `json:"data"`
	Msg  string          `json:"msg"`
}

// FlexString accepts a JSON string, number or null. The server stores phone
// numbers as integers in some versions and as text in others.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*f = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("flex string: %w", err)
		}
		*f = FlexString(n.String())
		return nil
	}
}
