package ultramsg

import (
	"context"
	"fmt"
)

// Credentials identify one Ultramsg instance. APIURL is the instance scoped
// base, e.g. https://api.ultramsg.com/instance1234.
type Credentials struct {
	APIURL     string
	InstanceID string
	Token      string
}

// GatewayResponse is either the JSON object returned by the gateway or an
// error shape {"error": ..., "details": ...}.
type GatewayResponse map[string]any

// Err returns the error text carried by the response, or "".
func (r GatewayResponse) Err() string {
	v, ok := r["error"]
	if !ok || v == nil {
		return ""
	}
	switch e := v.(type) {
	case string:
		return e
	case []any:
		if len(e) == 0 {
			return ""
		}
	case map[string]any:
		if len(e) == 0 {
			return ""
		}
	case bool:
		if !e {
			return ""
		}
	}
	return fmt.Sprint(v)
}

// OK reports whether the response carries no error.
func (r GatewayResponse) OK() bool {
	return r.Err() == ""
}

// WebhookProperties are the instance/settings toggles pushed by register_session.
type WebhookProperties struct {
	MessageReceived      bool `json:"webhook_message_received"`
	MessageCreate        bool `json:"webhook_message_create"`
	MessageAck           bool `json:"webhook_message_ack"`
	MessageDownloadMedia bool `json:"webhook_message_download_media"`
	SendDelay            int  `json:"sendDelay"`
}

// MediaDownload is the result of fetching a media URL.
type MediaDownload struct {
	Data []byte `json:"-"`
	MIME string `json:"mime"`
	Path string `json:"path,omitempty"`
	Size int64  `json:"size"`
}

// FileTypeQuery selects the source used to detect a MIME type. The first
// non-empty field wins, in declaration order.
type FileTypeQuery struct {
	FilePath string `json:"file_path" form:"file_path"`
	URL      string `json:"url" form:"url"`
	MIME     string `json:"mime" form:"mime"`
}

// IGatewayClient is the set of Ultramsg operations the action layer depends on.
type IGatewayClient interface {
	SendMessage(ctx context.Context, to, body, msgID string) GatewayResponse
	SendImage(ctx context.Context, to, image, caption, msgID string) GatewayResponse
	SendSticker(ctx context.Context, to, sticker, msgID string) GatewayResponse
	SendDocument(ctx context.Context, to, document, filename, caption, msgID string) GatewayResponse
	SendAudio(ctx context.Context, to, audio, msgID string) GatewayResponse
	SendVoice(ctx context.Context, to, audio, msgID string) GatewayResponse
	SendVideo(ctx context.Context, to, video, caption, msgID string) GatewayResponse
	SendContact(ctx context.Context, to, contact, msgID string) GatewayResponse
	SendLocation(ctx context.Context, to, address string, lat, lng float64, msgID string) GatewayResponse
	SendVCard(ctx context.Context, to, vcard, msgID string) GatewayResponse
	SendReaction(ctx context.Context, msgID, emoji string) GatewayResponse
	DeleteMessage(ctx context.Context, msgID string) GatewayResponse
	MarkAsRead(ctx context.Context, chatID string) GatewayResponse

	GetInstanceStatus(ctx context.Context) GatewayResponse
	GetQRImage(ctx context.Context) GatewayResponse
	GetQRCode(ctx context.Context) GatewayResponse
	LogoutSession(ctx context.Context) GatewayResponse
	RestartInstance(ctx context.Context) GatewayResponse
	UpdateSettings(ctx context.Context, webhookURL string, props WebhookProperties) GatewayResponse
	FetchQRImage(ctx context.Context) ([]byte, error)

	DownloadMedia(ctx context.Context, url, filename string) (*MediaDownload, error)
	GetFileType(ctx context.Context, query FileTypeQuery) Classification
}
