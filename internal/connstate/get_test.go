package connstate

import "testing"

func TestGetHistoryPaginates(t *testing.T) {
	h := NewDefaultHistory[string]()
	h.InsertMany([]string{"First", "Second", "Third", "Fourth", "Fifth"})

	page, cursor := GetHistory(h, 2, nil)
	if len(page) != 2 || page[0] != "First" || page[1] != "Second" {
		t.Fatalf("got %v", page)
	}
	if cursor == nil || cursor.Offset != 2 || cursor.Limit != 2 || cursor.Version != h.Version() {
		t.Fatalf("got %+v", cursor)
	}

	page, cursor = GetHistory(h, 2, cursor)
	if len(page) != 2 || page[0] != "Third" || page[1] != "Fourth" {
		t.Fatalf("got %v", page)
	}
	if cursor == nil || cursor.Offset != 4 {
		t.Fatalf("got %+v", cursor)
	}

	page, cursor = GetHistory(h, 2, cursor)
	if len(page) != 1 || page[0] != "Fifth" {
		t.Fatalf("got %v", page)
	}
	if cursor != nil {
		t.Fatalf("expected no further page, got %+v", cursor)
	}
}

func TestGetHistoryDiscardsCursorOnVersionChange(t *testing.T) {
	h := NewDefaultHistory[string]()
	h.InsertMany([]string{"First", "Second"})

	_, cursor := GetHistory(h, 1, nil)
	if cursor == nil {
		t.Fatalf("expected a cursor")
	}

	h.Insert("Third")

	page, next := GetHistory(h, 1, cursor)
	if len(page) != 1 || page[0] != "First" {
		t.Fatalf("got %v, expected restart from offset 0", page)
	}
	if next == nil || next.Version != h.Version() {
		t.Fatalf("got %+v", next)
	}
}

func TestGetHistoryEmpty(t *testing.T) {
	h := NewDefaultHistory[string]()
	page, cursor := GetHistory(h, 10, nil)
	if len(page) != 0 {
		t.Fatalf("got %v", page)
	}
	if cursor != nil {
		t.Fatalf("got %+v", cursor)
	}
}
