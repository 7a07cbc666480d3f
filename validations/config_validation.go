package validations

import (
	"fmt"

	coreconfig "github.com/TrueSelph/ultramsg-action/core/config"
	domain "github.com/TrueSelph/ultramsg-action/domains/ultramsg"
	pkgError "github.com/TrueSelph/ultramsg-action/pkg/error"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ValidateGatewayConfig checks the settings every gateway call needs.
func ValidateGatewayConfig(cfg coreconfig.UltramsgConfig) error {
	err := validation.ValidateStruct(&cfg,
		validation.Field(&cfg.APIURL, validation.Required, is.URL),
		validation.Field(&cfg.InstanceID, validation.Required),
		validation.Field(&cfg.Token, validation.Required),
		validation.Field(&cfg.InboundPolicy, validation.In(domain.PolicyStrict, domain.PolicyLenient)),
	)
	if err != nil {
		return pkgError.ValidationError(err.Error())
	}
	return nil
}

// ValidateRegisterSession additionally requires a public webhook URL.
func ValidateRegisterSession(cfg coreconfig.UltramsgConfig) error {
	if err := ValidateGatewayConfig(cfg); err != nil {
		return err
	}
	err := validation.Validate(cfg.WebhookURL, validation.Required, is.URL)
	if err != nil {
		return pkgError.ValidationError(fmt.Sprintf("webhook_url: %v", err))
	}
	return nil
}
