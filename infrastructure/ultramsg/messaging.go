package ultramsg

import (
	"context"

	domain "github.com/TrueSelph/ultramsg-action/domains/ultramsg"
)

func (c *Client) post(ctx context.Context, endpoint string, payload map[string]any) domain.GatewayResponse {
	return c.Send(ctx, OutboundRequest{Endpoint: endpoint, Method: "POST", Body: payload})
}

// SendMessage sends a text message. msgID, when set, quotes that message.
func (c *Client) SendMessage(ctx context.Context, to, body, msgID string) domain.GatewayResponse {
	return c.post(ctx, "messages/chat", map[string]any{
		"token": c.token,
		"to":    to,
		"body":  body,
		"msgId": msgID,
	})
}

func (c *Client) SendImage(ctx context.Context, to, image, caption, msgID string) domain.GatewayResponse {
	return c.post(ctx, "messages/image", map[string]any{
		"token":   c.token,
		"to":      to,
		"image":   image,
		"caption": caption,
		"msgId":   msgID,
	})
}

func (c *Client) SendSticker(ctx context.Context, to, sticker, msgID string) domain.GatewayResponse {
	return c.post(ctx, "messages/sticker", map[string]any{
		"token":   c.token,
		"to":      to,
		"sticker": sticker,
		"msgId":   msgID,
	})
}

func (c *Client) SendDocument(ctx context.Context, to, document, filename, caption, msgID string) domain.GatewayResponse {
	return c.post(ctx, "messages/document", map[string]any{
		"token":    c.token,
		"to":       to,
		"filename": filename,
		"document": document,
		"caption":  caption,
		"msgId":    msgID,
	})
}

func (c *Client) SendAudio(ctx context.Context, to, audio, msgID string) domain.GatewayResponse {
	return c.post(ctx, "messages/audio", map[string]any{
		"token": c.token,
		"to":    to,
		"audio": audio,
		"msgId": msgID,
	})
}

// SendVoice sends audio rendered as a push-to-talk voice note.
func (c *Client) SendVoice(ctx context.Context, to, audio, msgID string) domain.GatewayResponse {
	return c.post(ctx, "messages/voice", map[string]any{
		"token": c.token,
		"to":    to,
		"audio": audio,
		"msgId": msgID,
	})
}

func (c *Client) SendVideo(ctx context.Context, to, video, caption, msgID string) domain.GatewayResponse {
	return c.post(ctx, "messages/video", map[string]any{
		"token":   c.token,
		"to":      to,
		"video":   video,
		"caption": caption,
		"msgId":   msgID,
	})
}

// SendContact shares one or more contact ids (comma separated, e.g. "1555@c.us").
func (c *Client) SendContact(ctx context.Context, to, contact, msgID string) domain.GatewayResponse {
	return c.post(ctx, "messages/contact", map[string]any{
		"token":   c.token,
		"to":      to,
		"contact": contact,
		"msgId":   msgID,
	})
}

func (c *Client) SendLocation(ctx context.Context, to, address string, lat, lng float64, msgID string) domain.GatewayResponse {
	return c.post(ctx, "messages/location", map[string]any{
		"token":   c.token,
		"to":      to,
		"address": address,
		"lat":     lat,
		"lng":     lng,
		"msgId":   msgID,
	})
}

func (c *Client) SendVCard(ctx context.Context, to, vcard, msgID string) domain.GatewayResponse {
	return c.post(ctx, "messages/vcard", map[string]any{
		"token": c.token,
		"to":    to,
		"vcard": vcard,
		"msgId": msgID,
	})
}

func (c *Client) SendReaction(ctx context.Context, msgID, emoji string) domain.GatewayResponse {
	return c.post(ctx, "messages/reaction", map[string]any{
		"token": c.token,
		"msgId": msgID,
		"emoji": emoji,
	})
}

func (c *Client) DeleteMessage(ctx context.Context, msgID string) domain.GatewayResponse {
	return c.post(ctx, "messages/delete", map[string]any{
		"token": c.token,
		"msgId": msgID,
	})
}

// MarkAsRead marks every message of chatID (e.g. "1555@c.us") as read.
func (c *Client) MarkAsRead(ctx context.Context, chatID string) domain.GatewayResponse {
	return c.post(ctx, "chats/read", map[string]any{
		"token":  c.token,
		"chatId": chatID,
	})
}
