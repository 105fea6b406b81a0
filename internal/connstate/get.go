package connstate

// GetHistory returns a page of history oldest-first starting at
// cursor's offset (or 0 without a cursor), sized at cursor's limit (or
// defaultLimit). A returned cursor means there's another page;
// advancing by Offset+Limit continues where this page left off.
//
// As with ScrollHistory, a cursor whose Version no longer matches
// history's current Version is discarded and the page restarts from
// offset 0, so a page request spanning a history insertion never
// returns entries from the wrong generation of history.
func GetHistory(history *History[string], defaultLimit int, provided *HistoryCursor) ([]string, *HistoryCursor) {
	version := history.Version()

	cursor := provided
	if cursor != nil && cursor.Version != version {
		cursor = nil
	}

	limit := defaultLimit
	offset := 0
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Offset
	}

	all := history.Entries()
	end := offset + limit + 1
	if end > len(all) {
		end = len(all)
	}
	var page []string
	if offset < end {
		page = append(page, all[offset:end]...)
	}

	var next *HistoryCursor
	if len(page) > limit {
		next = &HistoryCursor{Offset: offset + limit, Limit: limit, Version: version}
		page = page[:limit]
	}

	return page, next
}
