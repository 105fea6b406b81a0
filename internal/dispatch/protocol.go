package dispatch

import (
	"encoding/json"
	"fmt"
)

// EnvelopeKind tags which of Envelope's three payload fields is live,
// standing in for the original's untagged Request enum (ForResponse /
// Response / Notification), decided deterministically here from the
// presence of "id" and the value of "type" rather than serde's
// try-each-variant-in-turn approach.
type EnvelopeKind int

const (
	EnvelopeRequest EnvelopeKind = iota
	EnvelopeNotification
	EnvelopeServerResponse
)

// Envelope is one decoded line of input.
type Envelope struct {
	Kind EnvelopeKind

	RequestID RequestID
	Request   ClientRequest

	Notification ClientNotification

	ServerResponse ResponseToServerRequest
}

type envelopePeek struct {
	ID   *RequestID `json:"id"`
	Type string     `json:"type"`
}

// DecodeLine parses one line of the protocol into an Envelope.
func DecodeLine(raw []byte) (Envelope, error) {
	var peek envelopePeek
	if err := json.Unmarshal(raw, &peek); err != nil {
		return Envelope{}, fmt.Errorf("dispatch: unable to parse input `%s`: %w", raw, err)
	}

	if peek.Type == "AliasMatchHandled" {
		var resp struct {
			Replacement *string `json:"replacement"`
		}
		if err := json.Unmarshal(raw, &resp); err != nil {
			return Envelope{}, err
		}
		if peek.ID == nil {
			return Envelope{}, fmt.Errorf("dispatch: AliasMatchHandled response missing id")
		}
		return Envelope{
			Kind: EnvelopeServerResponse,
			ServerResponse: ResponseToServerRequest{
				RequestID: *peek.ID,
				Payload:   ClientResponse{Type: peek.Type, Replacement: resp.Replacement},
			},
		}, nil
	}

	if peek.ID == nil {
		notification, err := decodeNotification(peek.Type, raw)
		if err != nil {
			return Envelope{}, err
		}
		return Envelope{Kind: EnvelopeNotification, Notification: notification}, nil
	}

	request, err := decodeRequest(peek.Type, raw)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Kind: EnvelopeRequest, RequestID: *peek.ID, Request: request}, nil
}

func decodeNotification(requestType string, raw []byte) (ClientNotification, error) {
	switch requestType {
	case "Quit":
		return QuitNotification{}, nil
	case "WindowSize":
		var n WindowSizeNotification
		return n, json.Unmarshal(raw, &n)
	case "Clear":
		var n ClearNotification
		return n, json.Unmarshal(raw, &n)
	default:
		return nil, fmt.Errorf("dispatch: unknown notification type %q", requestType)
	}
}

func decodeRequest(requestType string, raw []byte) (ClientRequest, error) {
	switch requestType {
	case "Connect":
		var r ConnectRequest
		return r, json.Unmarshal(raw, &r)
	case "Disconnect":
		var r DisconnectRequest
		return r, json.Unmarshal(raw, &r)
	case "Send":
		var r SendRequest
		return r, json.Unmarshal(raw, &r)
	case "ConfigureConnection":
		var r ConfigureConnectionRequest
		return r, json.Unmarshal(raw, &r)
	case "GetHistory":
		var r GetHistoryRequest
		return r, json.Unmarshal(raw, &r)
	case "ScrollHistory":
		var r ScrollHistoryRequest
		return r, json.Unmarshal(raw, &r)
	case "CompleteComposer":
		var r CompleteComposerRequest
		return r, json.Unmarshal(raw, &r)
	case "RegisterAlias":
		var r RegisterAliasRequest
		return r, json.Unmarshal(raw, &r)
	case "RegisterTrigger":
		var r RegisterTriggerRequest
		return r, json.Unmarshal(raw, &r)
	case "RegisterPrompt":
		var r RegisterPromptRequest
		return r, json.Unmarshal(raw, &r)
	case "SetPromptContent":
		var r SetPromptContentRequest
		return r, json.Unmarshal(raw, &r)
	case "SetActivePromptGroup":
		var r SetActivePromptGroupRequest
		return r, json.Unmarshal(raw, &r)
	default:
		return nil, fmt.Errorf("dispatch: unknown request type %q", requestType)
	}
}
