package connstate

import "encoding/json"

// HistoryCursor lets a client resume a GetHistory page or a
// ScrollHistory walk where it left off. Version pins the cursor to
// the History state it was produced against; InitialContent stashes
// the composer text at the start of a scroll so it can be restored
// once the user scrolls past the newest entry.
//
// On the wire this is carried as a JSON string (an opaque token to
// the client, not a structured object it should introspect), matching
// the original protocol's choice to serialize the cursor struct to a
// string rather than nest it — MarshalJSON/UnmarshalJSON implement
// that double-encoding.
type HistoryCursor struct {
	Limit           int     `json:"limit"`
	Offset          int     `json:"offset"`
	Version         int     `json:"version"`
	InitialContent  *string `json:"initial_content,omitempty"`
}

type historyCursorWire HistoryCursor

func (c HistoryCursor) MarshalJSON() ([]byte, error) {
	inner, err := json.Marshal(historyCursorWire(c))
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(inner))
}

func (c *HistoryCursor) UnmarshalJSON(data []byte) error {
	var encoded string
	if err := json.Unmarshal(data, &encoded); err != nil {
		return err
	}
	var wire historyCursorWire
	if err := json.Unmarshal([]byte(encoded), &wire); err != nil {
		return err
	}
	*c = HistoryCursor(wire)
	return nil
}
