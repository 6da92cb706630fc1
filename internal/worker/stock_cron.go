package worker

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// StartStockCron schedules a periodic full-catalog scan for products at or
// below their stock mínimo. escanear is NotificacionService.EscanearStockBajo,
// passed as a func to keep this package free of service imports.
func StartStockCron(ctx context.Context, cronSpec string, escanear func(context.Context) (int, error)) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(cronSpec, func() {
		alertas, err := escanear(ctx)
		if err != nil {
			log.Error().Err(err).Msg("stock_cron: scan failed")
			return
		}
		log.Info().Int("alertas", alertas).Msg("stock_cron: scan completed")
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	log.Info().Str("spec", cronSpec).Msg("stock_cron: scheduled")
	return c, nil
}
