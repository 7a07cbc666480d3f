package cmd

import (
	domain "github.com/TrueSelph/ultramsg-action/domains/ultramsg"
	"github.com/TrueSelph/ultramsg-action/infrastructure/ultramsg"
	"github.com/TrueSelph/ultramsg-action/integrations/openai"
	"github.com/TrueSelph/ultramsg-action/repository"
	"github.com/TrueSelph/ultramsg-action/usecase"
	"github.com/TrueSelph/ultramsg-action/validations"
	"github.com/sirupsen/logrus"
)

// newGatewayClient validates the credentials and builds the Ultramsg client.
func newGatewayClient() *ultramsg.Client {
	if err := validations.ValidateGatewayConfig(cfg.Ultramsg); err != nil {
		logrus.Fatalf("[CONFIG] %v", err)
	}
	return ultramsg.NewClient(
		cfg.Ultramsg.Credentials(),
		ultramsg.WithTimeout(cfg.Ultramsg.Timeout),
		ultramsg.WithMaxMediaSize(cfg.Ultramsg.MaxMediaSize),
		ultramsg.WithLogger(logrus.StandardLogger()),
	)
}

// newActionUsecase wires the action service. broadcaster may be nil when no
// websocket hub runs, e.g. for one-shot CLI commands.
func newActionUsecase(broadcaster domain.IBroadcaster) domain.IActionUsecase {
	var dedup domain.IDedupStore
	if vkClient != nil {
		dedup = repository.NewValkeyDedupStore(vkClient, cfg.Host.DedupTTL)
	} else {
		dedup = repository.NewMemoryDedupStore(cfg.Host.DedupTTL)
	}

	var transcriber domain.ITranscriber
	if cfg.AI.OpenAIKey != "" {
		transcriber = openai.NewTranscriber(cfg.AI.OpenAIKey, cfg.AI.TranscriptionModel)
	}

	return usecase.NewActionService(newGatewayClient(), cfg, dedup, broadcaster, transcriber)
}
