package bootstrap

import (
	"claim_relay/config"
	"claim_relay/services"
)

type Services struct {
	RelayService *services.RelayService
}

func NewServices(cfg *config.Config) *Services {
	return &Services{
		RelayService: services.NewRelayService(cfg.UpstreamTimeout),
	}
}
