package middleware

import (
	"fmt"

	pkgError "github.com/TrueSelph/ultramsg-action/pkg/error"
	"github.com/TrueSelph/ultramsg-action/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Recovery turns panics raised by utils.PanicIfNeeded into ResponseData
// envelopes. Typed errors keep their status and code; anything else is a 500.
func Recovery() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		defer func() {
			err := recover()
			if err == nil {
				return
			}

			res := utils.ResponseData{
				Status:  fiber.StatusInternalServerError,
				Code:    "INTERNAL_SERVER_ERROR",
				Message: fmt.Sprintf("%v", err),
			}
			if generic, ok := err.(pkgError.GenericError); ok {
				res.Status = generic.StatusCode()
				res.Code = generic.ErrCode()
				res.Message = generic.Error()
			}

			if res.Status >= fiber.StatusInternalServerError {
				logrus.Errorf("[REST] panic recovered on %s %s: %v", ctx.Method(), ctx.Path(), err)
			} else {
				logrus.Debugf("[REST] %s %s rejected: %v", ctx.Method(), ctx.Path(), err)
			}
			_ = ctx.Status(res.Status).JSON(res)
		}()

		return ctx.Next()
	}
}
