package svc

import (
	"log"

	"hlgw-api/internal/config"
	exchangepkg "hlgw-api/pkg/exchange"
	_ "hlgw-api/pkg/exchange/hyperliquid"
)

type ServiceContext struct {
	Config config.Config

	ExchangeConfig    *exchangepkg.Config
	ExchangeProviders map[string]exchangepkg.Provider
	DefaultExchange   exchangepkg.Provider
}

func NewServiceContext(c config.Config) *ServiceContext {
	if err := c.Exchange.Hydrate(c.BaseDir(), exchangepkg.LoadConfig); err != nil {
		log.Fatalf("failed to load exchange config: %v", err)
	}
	svc := &ServiceContext{Config: c}
	if c.Exchange.Value == nil {
		log.Fatalf("exchange config is required (set Exchange.File in %s)", c.MainPath())
	}
	svc.ExchangeConfig = c.Exchange.Value

	providers, err := svc.ExchangeConfig.BuildProviders()
	if err != nil {
		log.Fatalf("failed to build exchange providers: %v", err)
	}
	svc.ExchangeProviders = providers

	def, err := svc.ExchangeConfig.DefaultProvider(providers)
	if err != nil {
		log.Fatalf("failed to select default exchange provider: %v", err)
	}
	svc.DefaultExchange = def

	return svc
}
