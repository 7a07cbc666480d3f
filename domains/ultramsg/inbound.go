package ultramsg

import (
	"context"
	"encoding/json"

	"github.com/TrueSelph/ultramsg-action/pkg/mediatype"
)

// Classification is re-exported so callers of the domain do not need to
// import pkg/mediatype.
type Classification = mediatype.Classification

// MissingFieldPolicy decides what the parser does when a required webhook
// field is absent.
type MissingFieldPolicy string

const (
	// PolicyStrict rejects the payload with an InboundPayloadError.
	PolicyStrict MissingFieldPolicy = "strict"
	// PolicyLenient fills missing fields with zero values.
	PolicyLenient MissingFieldPolicy = "lenient"
)

// InboundMessage is the flat record the host platform consumes.
type InboundMessage struct {
	MessageID     string
	InstanceID    string
	EventType     string
	Time          int64
	Author        string
	FromSelf      bool
	PushName      string
	Sender        string
	Receiver      string
	ParentMessage any
	MessageType   string
	Body          string
	Media         string
	Location      any
}

// HasCaption reports whether the record carries a caption (every type but chat).
func (m *InboundMessage) HasCaption() bool {
	return m != nil && m.MessageType != "chat"
}

// ToMap renders the record with the key names the host expects. A nil
// record renders as an empty map.
func (m *InboundMessage) ToMap() map[string]any {
	if m == nil {
		return map[string]any{}
	}
	out := map[string]any{
		"message_id":     m.MessageID,
		"instance_id":    m.InstanceID,
		"event_type":     m.EventType,
		"time":           m.Time,
		"author":         m.Author,
		"from_self":      m.FromSelf,
		"pushname":       m.PushName,
		"sender":         m.Sender,
		"receiver":       m.Receiver,
		"parent_message": m.ParentMessage,
		"message_type":   m.MessageType,
		"body":           m.Body,
		"media":          m.Media,
		"location":       m.Location,
	}
	if m.HasCaption() {
		out["caption"] = m.Body
	}
	return out
}

func (m *InboundMessage) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.ToMap())
}

// IDedupStore remembers inbound message ids for a while so gateway
// redeliveries are only forwarded once.
type IDedupStore interface {
	// MarkSeen records key and reports whether it was new.
	MarkSeen(ctx context.Context, key string) (bool, error)
	// Forget drops key so a later redelivery is handled again.
	Forget(ctx context.Context, key string) error
}

// IBroadcaster pushes inbound messages to live listeners.
type IBroadcaster interface {
	BroadcastInbound(msg *InboundMessage)
}

// ITranscriber turns audio bytes into text.
type ITranscriber interface {
	Transcribe(ctx context.Context, audio []byte, filename, mimeType string) (string, error)
}
