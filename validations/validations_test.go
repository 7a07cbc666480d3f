package validations

import (
	"context"
	"testing"

	coreconfig "github.com/TrueSelph/ultramsg-action/core/config"
	domain "github.com/TrueSelph/ultramsg-action/domains/ultramsg"
	pkgError "github.com/TrueSelph/ultramsg-action/pkg/error"
	"github.com/stretchr/testify/assert"
)

func TestValidateSendMessage(t *testing.T) {
	ctx := context.Background()
	assert.NoError(t, ValidateSendMessage(ctx, domain.SendMessageRequest{Phone: "1555", Message: "hi"}))

	err := ValidateSendMessage(ctx, domain.SendMessageRequest{Phone: "1555"})
	var vErr pkgError.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestValidateSendMedia_DocumentNeedsFilename(t *testing.T) {
	ctx := context.Background()
	req := domain.SendMediaRequest{Phone: "1555", MediaURL: "https://x/a.pdf"}

	assert.NoError(t, ValidateSendMedia(ctx, domain.MediaImage, req))
	assert.Error(t, ValidateSendMedia(ctx, domain.MediaDocument, req))

	req.Filename = "a.pdf"
	assert.NoError(t, ValidateSendMedia(ctx, domain.MediaDocument, req))
}

func TestValidateSendLocation_Range(t *testing.T) {
	ctx := context.Background()
	assert.NoError(t, ValidateSendLocation(ctx, domain.SendLocationRequest{Phone: "1555", Latitude: 10, Longitude: -66}))
	assert.Error(t, ValidateSendLocation(ctx, domain.SendLocationRequest{Phone: "1555", Latitude: 91}))
}

func TestValidateReactionAndTranscribe(t *testing.T) {
	ctx := context.Background()
	assert.Error(t, ValidateReaction(ctx, domain.ReactionRequest{MessageID: "m"}))
	assert.NoError(t, ValidateReaction(ctx, domain.ReactionRequest{MessageID: "m", Emoji: "👍"}))
	assert.Error(t, ValidateTranscribe(ctx, domain.TranscribeRequest{MediaURL: "not a url"}))
	assert.NoError(t, ValidateTranscribe(ctx, domain.TranscribeRequest{MediaURL: "https://media.test/a.ogg"}))
}

func TestValidateGatewayConfig(t *testing.T) {
	cfg := coreconfig.UltramsgConfig{
		APIURL:        "https://api.ultramsg.com/instance1",
		InstanceID:    "instance1",
		Token:         "tok",
		InboundPolicy: domain.PolicyStrict,
	}
	assert.NoError(t, ValidateGatewayConfig(cfg))
	assert.Error(t, ValidateRegisterSession(cfg))

	cfg.WebhookURL = "https://agent.test/webhook"
	assert.NoError(t, ValidateRegisterSession(cfg))

	cfg.Token = ""
	assert.Error(t, ValidateGatewayConfig(cfg))

	cfg.Token = "tok"
	cfg.InboundPolicy = "drop"
	assert.Error(t, ValidateGatewayConfig(cfg))
}
