package rest

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	domain "github.com/TrueSelph/ultramsg-action/domains/ultramsg"
	pkgError "github.com/TrueSelph/ultramsg-action/pkg/error"
	"github.com/TrueSelph/ultramsg-action/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type Action struct {
	Service  domain.IActionUsecase
	BasePath string
}

// InitRestWebhook mounts the gateway webhook receiver. It is kept apart from
// InitRestAction so it can sit outside basic auth.
func InitRestWebhook(app fiber.Router, service domain.IActionUsecase) Action {
	rest := Action{Service: service}
	app.Post("/webhook/ultramsg", rest.ReceiveWebhook)
	return rest
}

func InitRestAction(app fiber.Router, service domain.IActionUsecase, basePath string) Action {
	rest := Action{Service: service, BasePath: basePath}

	app.Post("/action/register_session", rest.RegisterSession)

	app.Post("/send/message", rest.SendMessage)
	for _, kind := range []domain.MediaKind{
		domain.MediaImage, domain.MediaSticker, domain.MediaDocument,
		domain.MediaAudio, domain.MediaVoice, domain.MediaVideo,
	} {
		app.Post("/send/"+string(kind), rest.SendMedia(kind))
	}
	app.Post("/send/contact", rest.SendContact)
	app.Post("/send/location", rest.SendLocation)
	app.Post("/send/vcard", rest.SendVCard)
	app.Post("/send/reaction", rest.SendReaction)

	app.Post("/message/:message_id/delete", rest.DeleteMessage)
	app.Post("/chat/:chat_id/read", rest.MarkAsRead)

	app.Get("/instance/status", rest.InstanceStatus)
	app.Get("/instance/qr", rest.QRImage)
	app.Post("/instance/qr/save", rest.SaveQRImage)
	app.Post("/instance/logout", rest.Logout)
	app.Post("/instance/restart", rest.Restart)

	app.Post("/media/file-type", rest.FileType)
	app.Post("/media/transcribe", rest.Transcribe)
	return rest
}

// gatewayJSON renders a gateway reply, mapping an error shape to 502.
func gatewayJSON(c *fiber.Ctx, resp domain.GatewayResponse, message string) error {
	if !resp.OK() {
		return c.Status(fiber.StatusBadGateway).JSON(utils.ResponseData{
			Status:  fiber.StatusBadGateway,
			Code:    "GATEWAY_ERROR",
			Message: resp.Err(),
			Results: resp,
		})
	}
	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: message,
		Results: resp,
	})
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(utils.ResponseData{Status: 400, Code: "BAD_REQUEST", Message: err.Error()})
}

func (handler *Action) ReceiveWebhook(c *fiber.Ctx) error {
	var raw map[string]any
	if body := c.Body(); len(body) > 0 {
		if err := json.Unmarshal(body, &raw); err != nil {
			logrus.WithError(err).Warn("[WEBHOOK] undecodable gateway payload")
			return badRequest(c, err)
		}
	}

	result, err := handler.Service.HandleInbound(c.UserContext(), raw)
	utils.PanicIfNeeded(err)

	message := "Inbound message forwarded"
	switch {
	case result.Message == nil:
		message = "Empty payload ignored"
	case result.Duplicate:
		message = "Duplicate delivery ignored"
	}
	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: message,
		Results: result,
	})
}

func (handler *Action) RegisterSession(c *fiber.Ctx) error {
	ok, resp := handler.Service.RegisterSession(c.UserContext())
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ResponseData{
			Status:  fiber.StatusInternalServerError,
			Code:    "REGISTER_FAILED",
			Message: resp.Err(),
			Results: resp,
		})
	}
	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Webhook registered",
		Results: resp,
	})
}

func (handler *Action) SendMessage(c *fiber.Ctx) error {
	var request domain.SendMessageRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, err)
	}
	resp, err := handler.Service.SendMessage(c.UserContext(), request)
	utils.PanicIfNeeded(err)
	return gatewayJSON(c, resp, "Message sent")
}

func (handler *Action) SendMedia(kind domain.MediaKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var request domain.SendMediaRequest
		if err := c.BodyParser(&request); err != nil {
			return badRequest(c, err)
		}
		resp, err := handler.Service.SendMedia(c.UserContext(), kind, request)
		utils.PanicIfNeeded(err)
		return gatewayJSON(c, resp, fmt.Sprintf("%s sent", kind))
	}
}

func (handler *Action) SendContact(c *fiber.Ctx) error {
	var request domain.SendContactRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, err)
	}
	resp, err := handler.Service.SendContact(c.UserContext(), request)
	utils.PanicIfNeeded(err)
	return gatewayJSON(c, resp, "Contact sent")
}

func (handler *Action) SendVCard(c *fiber.Ctx) error {
	var request domain.SendVCardRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, err)
	}
	resp, err := handler.Service.SendVCard(c.UserContext(), request)
	utils.PanicIfNeeded(err)
	return gatewayJSON(c, resp, "vCard sent")
}

func (handler *Action) SendLocation(c *fiber.Ctx) error {
	var request domain.SendLocationRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, err)
	}
	resp, err := handler.Service.SendLocation(c.UserContext(), request)
	utils.PanicIfNeeded(err)
	return gatewayJSON(c, resp, "Location sent")
}

func (handler *Action) SendReaction(c *fiber.Ctx) error {
	var request domain.ReactionRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, err)
	}
	resp, err := handler.Service.SendReaction(c.UserContext(), request)
	utils.PanicIfNeeded(err)
	return gatewayJSON(c, resp, "Reaction sent")
}

func (handler *Action) DeleteMessage(c *fiber.Ctx) error {
	resp, err := handler.Service.DeleteMessage(c.UserContext(), c.Params("message_id"))
	utils.PanicIfNeeded(err)
	return gatewayJSON(c, resp, "Message deleted")
}

func (handler *Action) MarkAsRead(c *fiber.Ctx) error {
	resp, err := handler.Service.MarkAsRead(c.UserContext(), c.Params("chat_id"))
	utils.PanicIfNeeded(err)
	return gatewayJSON(c, resp, "Chat marked as read")
}

func (handler *Action) InstanceStatus(c *fiber.Ctx) error {
	return gatewayJSON(c, handler.Service.InstanceStatus(c.UserContext()), "Instance status")
}

func (handler *Action) QRImage(c *fiber.Ctx) error {
	return gatewayJSON(c, handler.Service.QRImage(c.UserContext()), "QR code")
}

func (handler *Action) SaveQRImage(c *fiber.Ctx) error {
	path, err := handler.Service.SaveQRImage(c.UserContext(), "")
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(utils.ResponseData{
			Status:  fiber.StatusBadGateway,
			Code:    "GATEWAY_ERROR",
			Message: err.Error(),
		})
	}
	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "QR image saved",
		Results: map[string]any{
			"qr_path": path,
			"qr_link": fmt.Sprintf("%s://%s%s/statics/qrcode/%s", c.Protocol(), c.Hostname(), handler.BasePath, filepath.Base(path)),
		},
	})
}

func (handler *Action) Logout(c *fiber.Ctx) error {
	return gatewayJSON(c, handler.Service.Logout(c.UserContext()), "Logged out")
}

func (handler *Action) Restart(c *fiber.Ctx) error {
	return gatewayJSON(c, handler.Service.Restart(c.UserContext()), "Instance restarted")
}

func (handler *Action) FileType(c *fiber.Ctx) error {
	var query domain.FileTypeQuery
	if err := c.BodyParser(&query); err != nil {
		return badRequest(c, err)
	}
	if query.FilePath == "" && query.URL == "" && query.MIME == "" {
		utils.PanicIfNeeded(pkgError.ValidationError("one of file_path, url or mime is required"))
	}
	result, err := handler.Service.FileType(c.UserContext(), query)
	utils.PanicIfNeeded(err)
	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "File type detected",
		Results: result,
	})
}

func (handler *Action) Transcribe(c *fiber.Ctx) error {
	var request domain.TranscribeRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, err)
	}
	text, err := handler.Service.TranscribeAudio(c.UserContext(), request)
	utils.PanicIfNeeded(err)
	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Audio transcribed",
		Results: map[string]any{"text": text},
	})
}
