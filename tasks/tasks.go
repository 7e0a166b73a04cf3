package tasks

import (
	"context"

	"github.com/robfig/cron/v3"

	Config "wallet-engine/config"
	"wallet-engine/registry"
	"wallet-engine/services"
	"wallet-engine/utility/logger"
)

// RegisterScheduledTasks ... Starts background jobs. The price warmer keeps
// native-asset quotes in cache so aggregation reads rarely hit the oracle.
func RegisterScheduledTasks(config Config.Data, networks *registry.Service, price *services.PriceService) *cron.Cron {
	scheduler := cron.New()

	warm := func() {
		ctx := context.Background()
		for _, network := range networks.All() {
			price.WarmNative(ctx, network)
		}
	}

	if _, err := scheduler.AddFunc(config.PriceWarmSpec, warm); err != nil {
		logger.Error("Could not schedule price warmer with spec %q : %s", config.PriceWarmSpec, err)
		return scheduler
	}

	scheduler.Start()
	go warm()
	logger.Info("Scheduled price warmer with spec %q", config.PriceWarmSpec)
	return scheduler
}
