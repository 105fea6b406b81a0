package connstate

// ScrollDirection selects which way a history scroll moves: toward
// older entries or back toward the newest (and eventually the
// composer's original, unsent content).
type ScrollDirection int

const (
	ScrollOlder ScrollDirection = iota
	ScrollNewer
)

// ScrollHistory walks history one entry at a time from the composer's
// current content, tracking position with a HistoryCursor the caller
// threads back in on the next call.
//
// If the supplied cursor's Version no longer matches history's
// current Version, it's discarded and the walk restarts fresh — but
// InitialContent from the discarded cursor is still honored, so a
// history insertion mid-scroll doesn't lose the user's original
// unsent line. Scrolling Older past the oldest entry, or Newer past
// the newest, leaves content/cursor at rest (Older) or restores
// InitialContent and drops the cursor (Newer).
func ScrollHistory(history *History[string], direction ScrollDirection, content string, provided *HistoryCursor) (string, *HistoryCursor) {
	version := history.Version()

	cursor := provided
	if cursor != nil && cursor.Version != version {
		cursor = nil
	}

	initialContent := content
	if provided != nil && provided.InitialContent != nil {
		initialContent = *provided.InitialContent
	}

	offset := 0
	if cursor != nil {
		offset = cursor.Offset
	}

	nextOffset, hasNext := -1, false
	switch {
	case cursor == nil && direction == ScrollOlder:
		if history.Len() > 0 {
			nextOffset, hasNext = history.Len()-1, true
		}
	case cursor != nil && direction == ScrollOlder:
		if offset-1 >= 0 {
			nextOffset, hasNext = offset-1, true
		}
	case cursor == nil && direction == ScrollNewer:
		// No cursor means we're already at the newest (unsent) content;
		// there's nothing newer to scroll to.
	case cursor != nil && direction == ScrollNewer:
		nextOffset, hasNext = offset+1, true
	}

	var nextItem string
	if hasNext {
		nextItem, hasNext = history.At(nextOffset)
	}

	if hasNext {
		return nextItem, &HistoryCursor{
			Limit:          1,
			Offset:         nextOffset,
			Version:        version,
			InitialContent: &initialContent,
		}
	}

	switch direction {
	case ScrollOlder:
		return content, cursor
	default: // ScrollNewer
		return initialContent, nil
	}
}
