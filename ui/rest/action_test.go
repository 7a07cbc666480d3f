package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	domain "github.com/TrueSelph/ultramsg-action/domains/ultramsg"
	pkgError "github.com/TrueSelph/ultramsg-action/pkg/error"
	"github.com/TrueSelph/ultramsg-action/pkg/utils"
	"github.com/TrueSelph/ultramsg-action/ui/rest/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAction struct {
	domain.IActionUsecase

	registered  bool
	registerErr string
	lastMessage domain.SendMessageRequest
	lastKind    domain.MediaKind
	sendErr     error
	gatewayResp domain.GatewayResponse
	inbound     map[string]any
	inboundErr  error
	readPhone   string
}

func (f *fakeAction) RegisterSession(context.Context) (bool, domain.GatewayResponse) {
	if f.registerErr != "" {
		return false, domain.GatewayResponse{"error": f.registerErr}
	}
	f.registered = true
	return true, domain.GatewayResponse{"success": "true"}
}

func (f *fakeAction) SendMessage(_ context.Context, request domain.SendMessageRequest) (domain.GatewayResponse, error) {
	f.lastMessage = request
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	return f.gatewayResp, nil
}

func (f *fakeAction) SendMedia(_ context.Context, kind domain.MediaKind, _ domain.SendMediaRequest) (domain.GatewayResponse, error) {
	f.lastKind = kind
	return f.gatewayResp, nil
}

func (f *fakeAction) MarkAsRead(_ context.Context, phone string) (domain.GatewayResponse, error) {
	f.readPhone = phone
	return f.gatewayResp, nil
}

func (f *fakeAction) InstanceStatus(context.Context) domain.GatewayResponse {
	return f.gatewayResp
}

func (f *fakeAction) HandleInbound(_ context.Context, raw map[string]any) (domain.InboundResult, error) {
	f.inbound = raw
	if f.inboundErr != nil {
		return domain.InboundResult{}, f.inboundErr
	}
	if raw == nil {
		return domain.InboundResult{}, nil
	}
	return domain.InboundResult{Message: &domain.InboundMessage{MessageID: "m1", MessageType: "chat"}, Forwarded: 1}, nil
}

func newTestApp(service domain.IActionUsecase) *fiber.App {
	app := fiber.New()
	app.Use(middleware.Recovery())
	api := app.Group("/api")
	InitRestWebhook(api, service)
	InitRestAction(api, service, "")
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, utils.ResponseData) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope utils.ResponseData
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp.StatusCode, envelope
}

func TestRegisterSessionEndpoint(t *testing.T) {
	svc := &fakeAction{}
	status, body := doJSON(t, newTestApp(svc), http.MethodPost, "/api/action/register_session", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "SUCCESS", body.Code)
	assert.True(t, svc.registered)

	svc = &fakeAction{registerErr: "Wrong token"}
	status, body = doJSON(t, newTestApp(svc), http.MethodPost, "/api/action/register_session", "")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "REGISTER_FAILED", body.Code)
	assert.Equal(t, "Wrong token", body.Message)
}

func TestSendMessageEndpoint(t *testing.T) {
	svc := &fakeAction{gatewayResp: domain.GatewayResponse{"sent": "true", "id": 7}}
	status, body := doJSON(t, newTestApp(svc), http.MethodPost, "/api/send/message", `{"phone":"1555","message":"hi","reply_message_id":"q1"}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "SUCCESS", body.Code)
	assert.Equal(t, domain.SendMessageRequest{Phone: "1555", Message: "hi", ReplyToID: "q1"}, svc.lastMessage)
}

func TestSendMessageEndpoint_GatewayErrorIs502(t *testing.T) {
	svc := &fakeAction{gatewayResp: domain.GatewayResponse{"error": "Timeout after 10 seconds"}}
	status, body := doJSON(t, newTestApp(svc), http.MethodPost, "/api/send/message", `{"phone":"1555","message":"hi"}`)

	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "GATEWAY_ERROR", body.Code)
	assert.Equal(t, "Timeout after 10 seconds", body.Message)
}

func TestSendMessageEndpoint_ValidationErrorIs400(t *testing.T) {
	svc := &fakeAction{sendErr: pkgError.ValidationError("message: cannot be blank.")}
	status, body := doJSON(t, newTestApp(svc), http.MethodPost, "/api/send/message", `{"phone":"1555"}`)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
}

func TestSendMediaEndpoints_RouteByKind(t *testing.T) {
	svc := &fakeAction{gatewayResp: domain.GatewayResponse{"sent": "true"}}
	app := newTestApp(svc)
	for _, kind := range []domain.MediaKind{domain.MediaImage, domain.MediaVoice, domain.MediaVideo} {
		status, _ := doJSON(t, app, http.MethodPost, "/api/send/"+string(kind), `{"phone":"1555","media_url":"https://x/y"}`)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, kind, svc.lastKind)
	}
}

func TestMarkAsReadEndpoint(t *testing.T) {
	svc := &fakeAction{gatewayResp: domain.GatewayResponse{"success": true}}
	status, _ := doJSON(t, newTestApp(svc), http.MethodPost, "/api/chat/1555/read", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "1555", svc.readPhone)
}

func TestInstanceStatusEndpoint(t *testing.T) {
	svc := &fakeAction{gatewayResp: domain.GatewayResponse{"status": map[string]any{"accountStatus": map[string]any{"status": "authenticated"}}}}
	status, body := doJSON(t, newTestApp(svc), http.MethodGet, "/api/instance/status", "")
	assert.Equal(t, http.StatusOK, status)
	assert.NotNil(t, body.Results)
}

func TestWebhookEndpoint(t *testing.T) {
	svc := &fakeAction{}
	status, body := doJSON(t, newTestApp(svc), http.MethodPost, "/api/webhook/ultramsg", `{"event_type":"message_received","data":{"id":"m1"}}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Inbound message forwarded", body.Message)
	assert.Equal(t, "message_received", svc.inbound["event_type"])
}

func TestWebhookEndpoint_EmptyBody(t *testing.T) {
	svc := &fakeAction{}
	status, body := doJSON(t, newTestApp(svc), http.MethodPost, "/api/webhook/ultramsg", "")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Empty payload ignored", body.Message)
	assert.Nil(t, svc.inbound)
}

func TestWebhookEndpoint_MalformedPayload(t *testing.T) {
	svc := &fakeAction{inboundErr: &pkgError.InboundPayloadError{Missing: []string{"data.from"}}}
	status, body := doJSON(t, newTestApp(svc), http.MethodPost, "/api/webhook/ultramsg", `{"data":{}}`)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "MALFORMED_INBOUND_PAYLOAD", body.Code)
	assert.Contains(t, body.Message, "data.from")
}

func TestWebhookEndpoint_InvalidJSON(t *testing.T) {
	status, body := doJSON(t, newTestApp(&fakeAction{}), http.MethodPost, "/api/webhook/ultramsg", `{not json`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "BAD_REQUEST", body.Code)
}

func TestFileTypeEndpoint_RequiresASource(t *testing.T) {
	status, body := doJSON(t, newTestApp(&fakeAction{}), http.MethodPost, "/api/media/file-type", `{}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
}
