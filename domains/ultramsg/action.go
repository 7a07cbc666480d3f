package ultramsg

import "context"

type SendMessageRequest struct {
	Phone     string `json:"phone" form:"phone"`
	Message   string `json:"message" form:"message"`
	ReplyToID string `json:"reply_message_id" form:"reply_message_id"`
}

type SendMediaRequest struct {
	Phone     string `json:"phone" form:"phone"`
	MediaURL  string `json:"media_url" form:"media_url"`
	Caption   string `json:"caption" form:"caption"`
	Filename  string `json:"filename" form:"filename"`
	ReplyToID string `json:"reply_message_id" form:"reply_message_id"`
}

type SendContactRequest struct {
	Phone     string `json:"phone" form:"phone"`
	Contact   string `json:"contact" form:"contact"`
	ReplyToID string `json:"reply_message_id" form:"reply_message_id"`
}

type SendVCardRequest struct {
	Phone     string `json:"phone" form:"phone"`
	VCard     string `json:"vcard" form:"vcard"`
	ReplyToID string `json:"reply_message_id" form:"reply_message_id"`
}

type SendLocationRequest struct {
	Phone     string  `json:"phone" form:"phone"`
	Address   string  `json:"address" form:"address"`
	Latitude  float64 `json:"latitude" form:"latitude"`
	Longitude float64 `json:"longitude" form:"longitude"`
	ReplyToID string  `json:"reply_message_id" form:"reply_message_id"`
}

type ReactionRequest struct {
	MessageID string `json:"message_id" form:"message_id"`
	Emoji     string `json:"emoji" form:"emoji"`
}

type TranscribeRequest struct {
	MediaURL string `json:"media_url" form:"media_url"`
}

// MediaKind selects the gateway endpoint used by SendMedia.
type MediaKind string

const (
	MediaImage    MediaKind = "image"
	MediaSticker  MediaKind = "sticker"
	MediaDocument MediaKind = "document"
	MediaAudio    MediaKind = "audio"
	MediaVoice    MediaKind = "voice"
	MediaVideo    MediaKind = "video"
)

// InboundResult describes what happened to one gateway webhook delivery.
type InboundResult struct {
	Message   *InboundMessage `json:"message"`
	Duplicate bool            `json:"duplicate"`
	Forwarded int             `json:"forwarded"`
}

// IActionUsecase is the host-facing surface of the integration.
type IActionUsecase interface {
	RegisterSession(ctx context.Context) (bool, GatewayResponse)

	SendMessage(ctx context.Context, request SendMessageRequest) (GatewayResponse, error)
	SendMedia(ctx context.Context, kind MediaKind, request SendMediaRequest) (GatewayResponse, error)
	SendContact(ctx context.Context, request SendContactRequest) (GatewayResponse, error)
	SendVCard(ctx context.Context, request SendVCardRequest) (GatewayResponse, error)
	SendLocation(ctx context.Context, request SendLocationRequest) (GatewayResponse, error)
	SendReaction(ctx context.Context, request ReactionRequest) (GatewayResponse, error)
	DeleteMessage(ctx context.Context, messageID string) (GatewayResponse, error)
	MarkAsRead(ctx context.Context, phone string) (GatewayResponse, error)

	InstanceStatus(ctx context.Context) GatewayResponse
	QRImage(ctx context.Context) GatewayResponse
	SaveQRImage(ctx context.Context, path string) (string, error)
	Logout(ctx context.Context) GatewayResponse
	Restart(ctx context.Context) GatewayResponse

	FileType(ctx context.Context, query FileTypeQuery) (Classification, error)
	TranscribeAudio(ctx context.Context, request TranscribeRequest) (string, error)

	HandleInbound(ctx context.Context, raw map[string]any) (InboundResult, error)
}
