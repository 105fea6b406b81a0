package connstate

import (
	"encoding/json"
	"testing"
)

func TestHistoryCursorRoundTripsThroughDoubleJSONEncoding(t *testing.T) {
	content := "unsent line"
	original := HistoryCursor{Limit: 25, Offset: 10, Version: 3, InitialContent: &content}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	// On the wire this is a JSON string, not a nested object.
	var asString string
	if err := json.Unmarshal(data, &asString); err != nil {
		t.Fatalf("cursor did not serialize as a string: %v", err)
	}

	var decoded HistoryCursor
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Limit != original.Limit || decoded.Offset != original.Offset || decoded.Version != original.Version {
		t.Fatalf("got %+v want %+v", decoded, original)
	}
	if decoded.InitialContent == nil || *decoded.InitialContent != content {
		t.Fatalf("got %+v", decoded.InitialContent)
	}
}

func TestHistoryCursorOmitsInitialContentWhenNil(t *testing.T) {
	original := HistoryCursor{Limit: 25, Offset: 10, Version: 3}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded HistoryCursor
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.InitialContent != nil {
		t.Fatalf("got %+v", decoded.InitialContent)
	}
}
