package usecase

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	coreconfig "github.com/TrueSelph/ultramsg-action/core/config"
	domain "github.com/TrueSelph/ultramsg-action/domains/ultramsg"
	"github.com/TrueSelph/ultramsg-action/infrastructure/ultramsg"
	pkgError "github.com/TrueSelph/ultramsg-action/pkg/error"
	"github.com/TrueSelph/ultramsg-action/pkg/mediatype"
	"github.com/TrueSelph/ultramsg-action/pkg/utils"
	"github.com/TrueSelph/ultramsg-action/validations"
	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
)

type serviceAction struct {
	client      domain.IGatewayClient
	gateway     coreconfig.UltramsgConfig
	qrDir       string
	dedup       domain.IDedupStore
	broadcaster domain.IBroadcaster
	transcriber domain.ITranscriber
	forwarder   *hostForwarder
}

// NewActionService wires the host-facing operations. dedup, broadcaster and
// transcriber are optional.
func NewActionService(
	client domain.IGatewayClient,
	cfg *coreconfig.Config,
	dedup domain.IDedupStore,
	broadcaster domain.IBroadcaster,
	transcriber domain.ITranscriber,
) domain.IActionUsecase {
	return &serviceAction{
		client:      client,
		gateway:     cfg.Ultramsg,
		qrDir:       cfg.Paths.QrCode,
		dedup:       dedup,
		broadcaster: broadcaster,
		transcriber: transcriber,
		forwarder:   newHostForwarder(cfg.Host.CallbackURLs, cfg.Host.CallbackSecret, cfg.Host.InsecureSkipVerify),
	}
}

// RegisterSession points the gateway webhook at this action and applies the
// configured webhook toggles. The boolean is what the configuration panel
// renders as success or failure.
func (service *serviceAction) RegisterSession(ctx context.Context) (bool, domain.GatewayResponse) {
	if err := validations.ValidateRegisterSession(service.gateway); err != nil {
		logrus.WithError(err).Error("[ACTION] register_session rejected")
		return false, domain.GatewayResponse{"error": err.Error()}
	}

	resp := service.client.UpdateSettings(ctx, service.gateway.WebhookURL, service.gateway.Webhook)
	if !resp.OK() {
		logrus.WithField("instance_id", service.gateway.InstanceID).Errorf("[ACTION] register_session failed: %s", resp.Err())
		return false, resp
	}
	logrus.WithFields(logrus.Fields{
		"instance_id": service.gateway.InstanceID,
		"webhook_url": service.gateway.WebhookURL,
	}).Info("[ACTION] webhook registered")
	return true, resp
}

func (service *serviceAction) SendMessage(ctx context.Context, request domain.SendMessageRequest) (domain.GatewayResponse, error) {
	utils.SanitizePhone(&request.Phone)
	if err := validations.ValidateSendMessage(ctx, request); err != nil {
		return nil, err
	}
	return service.client.SendMessage(ctx, request.Phone, request.Message, request.ReplyToID), nil
}

func (service *serviceAction) SendMedia(ctx context.Context, kind domain.MediaKind, request domain.SendMediaRequest) (domain.GatewayResponse, error) {
	utils.SanitizePhone(&request.Phone)
	if err := validations.ValidateSendMedia(ctx, kind, request); err != nil {
		return nil, err
	}

	switch kind {
	case domain.MediaImage:
		return service.client.SendImage(ctx, request.Phone, request.MediaURL, request.Caption, request.ReplyToID), nil
	case domain.MediaSticker:
		return service.client.SendSticker(ctx, request.Phone, request.MediaURL, request.ReplyToID), nil
	case domain.MediaDocument:
		return service.client.SendDocument(ctx, request.Phone, request.MediaURL, request.Filename, request.Caption, request.ReplyToID), nil
	case domain.MediaAudio:
		return service.client.SendAudio(ctx, request.Phone, request.MediaURL, request.ReplyToID), nil
	case domain.MediaVoice:
		return service.client.SendVoice(ctx, request.Phone, request.MediaURL, request.ReplyToID), nil
	case domain.MediaVideo:
		return service.client.SendVideo(ctx, request.Phone, request.MediaURL, request.Caption, request.ReplyToID), nil
	}
	return nil, pkgError.ValidationError(fmt.Sprintf("unsupported media kind %q", kind))
}

func (service *serviceAction) SendContact(ctx context.Context, request domain.SendContactRequest) (domain.GatewayResponse, error) {
	utils.SanitizePhone(&request.Phone)
	if err := validations.ValidateSendContact(ctx, request); err != nil {
		return nil, err
	}
	return service.client.SendContact(ctx, request.Phone, request.Contact, request.ReplyToID), nil
}

func (service *serviceAction) SendVCard(ctx context.Context, request domain.SendVCardRequest) (domain.GatewayResponse, error) {
	utils.SanitizePhone(&request.Phone)
	if err := validations.ValidateSendVCard(ctx, request); err != nil {
		return nil, err
	}
	return service.client.SendVCard(ctx, request.Phone, request.VCard, request.ReplyToID), nil
}

func (service *serviceAction) SendLocation(ctx context.Context, request domain.SendLocationRequest) (domain.GatewayResponse, error) {
	utils.SanitizePhone(&request.Phone)
	if err := validations.ValidateSendLocation(ctx, request); err != nil {
		return nil, err
	}
	return service.client.SendLocation(ctx, request.Phone, request.Address, request.Latitude, request.Longitude, request.ReplyToID), nil
}

func (service *serviceAction) SendReaction(ctx context.Context, request domain.ReactionRequest) (domain.GatewayResponse, error) {
	if err := validations.ValidateReaction(ctx, request); err != nil {
		return nil, err
	}
	return service.client.SendReaction(ctx, request.MessageID, request.Emoji), nil
}

func (service *serviceAction) DeleteMessage(ctx context.Context, messageID string) (domain.GatewayResponse, error) {
	if strings.TrimSpace(messageID) == "" {
		return nil, pkgError.ValidationError("message_id: cannot be blank.")
	}
	return service.client.DeleteMessage(ctx, messageID), nil
}

func (service *serviceAction) MarkAsRead(ctx context.Context, phone string) (domain.GatewayResponse, error) {
	utils.SanitizePhone(&phone)
	if phone == "" {
		return nil, pkgError.ValidationError("phone: cannot be blank.")
	}
	return service.client.MarkAsRead(ctx, utils.ChatID(phone)), nil
}

func (service *serviceAction) InstanceStatus(ctx context.Context) domain.GatewayResponse {
	return service.client.GetInstanceStatus(ctx)
}

func (service *serviceAction) QRImage(ctx context.Context) domain.GatewayResponse {
	return service.client.GetQRCode(ctx)
}

// SaveQRImage stores the login QR as PNG and returns the written path.
func (service *serviceAction) SaveQRImage(ctx context.Context, target string) (string, error) {
	data, err := service.client.FetchQRImage(ctx)
	if err != nil {
		return "", err
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode qr image: %w", err)
	}

	if target == "" {
		target = filepath.Join(service.qrDir, fmt.Sprintf("scan-qr-%s.png", service.gateway.InstanceID))
	}
	if err := utils.CreateFolder(filepath.Dir(target)); err != nil {
		return "", err
	}
	if err := imaging.Save(img, target); err != nil {
		return "", fmt.Errorf("save qr image: %w", err)
	}
	return target, nil
}

func (service *serviceAction) Logout(ctx context.Context) domain.GatewayResponse {
	return service.client.LogoutSession(ctx)
}

func (service *serviceAction) Restart(ctx context.Context) domain.GatewayResponse {
	return service.client.RestartInstance(ctx)
}

func (service *serviceAction) FileType(ctx context.Context, query domain.FileTypeQuery) (domain.Classification, error) {
	return service.client.GetFileType(ctx, query), nil
}

// TranscribeAudio downloads an inbound audio or voice note and relays it to
// the configured transcriber.
func (service *serviceAction) TranscribeAudio(ctx context.Context, request domain.TranscribeRequest) (string, error) {
	if err := validations.ValidateTranscribe(ctx, request); err != nil {
		return "", err
	}
	if service.transcriber == nil {
		return "", pkgError.TranscriptionError("audio transcription is not configured")
	}

	media, err := service.client.DownloadMedia(ctx, request.MediaURL, "")
	if err != nil {
		return "", err
	}
	if ft := mediatype.Classify(media.MIME).FileType; ft != mediatype.Audio && ft != mediatype.Video {
		logrus.Warnf("[TRANSCRIBE] %s looks like %s (%s), sending anyway", request.MediaURL, ft, media.MIME)
	}

	filename := "audio"
	if u, err := url.Parse(request.MediaURL); err == nil {
		if base := path.Base(u.Path); base != "." && base != "/" {
			filename = base
		}
	}
	return service.transcriber.Transcribe(ctx, media.Data, filename, media.MIME)
}

// HandleInbound normalizes one gateway webhook delivery and hands it to the host.
func (service *serviceAction) HandleInbound(ctx context.Context, raw map[string]any) (domain.InboundResult, error) {
	msg, err := ultramsg.ParseInbound(raw, service.gateway.InboundPolicy)
	if err != nil {
		logrus.WithError(err).Warn("[WEBHOOK] rejected inbound payload")
		return domain.InboundResult{}, err
	}
	if msg == nil {
		return domain.InboundResult{}, nil
	}

	result := domain.InboundResult{Message: msg}
	dedupKey := ""
	if service.dedup != nil && msg.MessageID != "" {
		key := msg.EventType + ":" + msg.MessageID
		fresh, err := service.dedup.MarkSeen(ctx, key)
		if err != nil {
			logrus.WithError(err).Warn("[WEBHOOK] dedup store unavailable, forwarding anyway")
		} else if fresh {
			dedupKey = key
		} else {
			logrus.WithField("message_id", msg.MessageID).Debug("[WEBHOOK] duplicate delivery ignored")
			result.Duplicate = true
			return result, nil
		}
	}

	if service.broadcaster != nil {
		service.broadcaster.BroadcastInbound(msg)
	}

	forwarded, err := service.forwarder.forward(ctx, msg.ToMap(), msg.EventType)
	result.Forwarded = forwarded
	if err != nil && dedupKey != "" {
		// a failed delivery must stay eligible for the gateway's redelivery
		if ferr := service.dedup.Forget(context.WithoutCancel(ctx), dedupKey); ferr != nil {
			logrus.WithError(ferr).Warnf("[WEBHOOK] failed to release dedup key %s", dedupKey)
		}
	}
	return result, err
}
