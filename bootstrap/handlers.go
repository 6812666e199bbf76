package bootstrap

import (
	"claim_relay/config"
	"claim_relay/handlers"
)

type Handlers struct {
	RelayHandler *handlers.RelayHandler
}

func NewHandlers(cfg *config.Config, services *Services) *Handlers {
	return &Handlers{
		RelayHandler: handlers.NewRelayHandler(services.RelayService, cfg.WebhookURL),
	}
}
