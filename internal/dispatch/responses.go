package dispatch

import "github.com/wireline-mud/wireline/internal/connstate"

// DaemonResponse is the payload half of a Response: exactly one is
// sent back per request with an id. Each constructor below sets the
// wire "type" tag itself, so callers never need to repeat it.
type DaemonResponse struct {
	Type string `json:"type"`

	Error string `json:"error,omitempty"`

	ConnectionID ConnectionID `json:"connection_id,omitempty"`

	Sent bool `json:"sent,omitempty"`

	Words []string `json:"words,omitempty"`

	Entries []string                `json:"entries,omitempty"`
	Cursor  *connstate.HistoryCursor `json:"cursor,omitempty"`

	NewContent string `json:"new_content,omitempty"`
}

func OkResult() DaemonResponse { return DaemonResponse{Type: "OkResult"} }

func ErrorResult(err error) DaemonResponse {
	return DaemonResponse{Type: "ErrorResult", Error: err.Error()}
}

func Connecting(id ConnectionID) DaemonResponse {
	return DaemonResponse{Type: "Connecting", ConnectionID: id}
}

func SendResult(sent bool) DaemonResponse {
	return DaemonResponse{Type: "SendResult", Sent: sent}
}

func CompleteResult(words []string) DaemonResponse {
	return DaemonResponse{Type: "CompleteResult", Words: words}
}

func HistoryResult(entries []string, cursor *connstate.HistoryCursor) DaemonResponse {
	return DaemonResponse{Type: "HistoryResult", Entries: entries, Cursor: cursor}
}

func HistoryScrollResult(newContent string, cursor *connstate.HistoryCursor) DaemonResponse {
	return DaemonResponse{Type: "HistoryScrollResult", NewContent: newContent, Cursor: cursor}
}

// ClientResponse answers a ServerRequest the daemon sent to the
// client — currently only HandleAliasMatch.
type ClientResponse struct {
	Type        string  `json:"type"`
	Replacement *string `json:"replacement,omitempty"`
}

// ResponseToServerRequest is the envelope a client sends back for a
// ServerRequest, correlated by RequestID.
type ResponseToServerRequest struct {
	RequestID RequestID      `json:"id"`
	Payload   ClientResponse `json:"-"`
}
