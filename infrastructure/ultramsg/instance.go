package ultramsg

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	domain "github.com/TrueSelph/ultramsg-action/domains/ultramsg"
)

func (c *Client) tokenOnly() map[string]any {
	return map[string]any{"token": c.token}
}

func (c *Client) GetInstanceStatus(ctx context.Context) domain.GatewayResponse {
	return c.Send(ctx, OutboundRequest{Endpoint: "instance/status", Method: http.MethodGet, Body: c.tokenOnly()})
}

// GetQRImage calls instance/qr. The gateway answers with a PNG, which the
// JSON sender reports as an error; use FetchQRImage for the raw bytes.
func (c *Client) GetQRImage(ctx context.Context) domain.GatewayResponse {
	return c.Send(ctx, OutboundRequest{Endpoint: "instance/qr", Method: http.MethodGet, Body: c.tokenOnly()})
}

// GetQRCode calls instance/qrCode, which returns the QR payload as JSON.
func (c *Client) GetQRCode(ctx context.Context) domain.GatewayResponse {
	return c.Send(ctx, OutboundRequest{Endpoint: "instance/qrCode", Method: http.MethodGet, Body: c.tokenOnly()})
}

func (c *Client) LogoutSession(ctx context.Context) domain.GatewayResponse {
	return c.post(ctx, "instance/logout", c.tokenOnly())
}

func (c *Client) RestartInstance(ctx context.Context) domain.GatewayResponse {
	return c.post(ctx, "instance/restart", c.tokenOnly())
}

// UpdateSettings points the instance webhook at webhookURL and applies props.
func (c *Client) UpdateSettings(ctx context.Context, webhookURL string, props domain.WebhookProperties) domain.GatewayResponse {
	return c.post(ctx, "instance/settings", map[string]any{
		"token":                          c.token,
		"webhook_url":                    webhookURL,
		"sendDelay":                      strconv.Itoa(props.SendDelay),
		"webhook_message_received":       strconv.FormatBool(props.MessageReceived),
		"webhook_message_create":         strconv.FormatBool(props.MessageCreate),
		"webhook_message_ack":            strconv.FormatBool(props.MessageAck),
		"webhook_message_download_media": strconv.FormatBool(props.MessageDownloadMedia),
	})
}

// FetchQRImage downloads the raw instance/qr image.
func (c *Client) FetchQRImage(ctx context.Context) ([]byte, error) {
	target := c.apiURL + "/instance/qr?" + url.Values{"token": {c.token}}.Encode()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create qr request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch qr image: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read qr image: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("qr image request failed with status code %d: %s", resp.StatusCode, string(data))
	}
	return data, nil
}
