package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"napos/internal/infra"
	"napos/internal/model"

	"github.com/rs/zerolog/log"
)

// AlertaStockPayload is the job envelope sent to QueueAlertas.
type AlertaStockPayload struct {
	Producto     string `json:"producto"`
	CodigoBarras string `json:"codigo_barras"`
	Stock        int    `json:"stock"`
	StockMinimo  int    `json:"stock_minimo"`
	Severidad    string `json:"severidad"`
}

// AlertaWorker emails low-stock alerts to the configured recipient.
type AlertaWorker struct {
	mailer       *infra.Mailer
	destinatario string
}

func NewAlertaWorker(mailer *infra.Mailer, destinatario string) *AlertaWorker {
	return &AlertaWorker{mailer: mailer, destinatario: destinatario}
}

// Process sends the alert email. Failures are logged, never retried — the
// unread notificación row in the DB is the durable record.
func (w *AlertaWorker) Process(_ context.Context, raw json.RawMessage) {
	var payload AlertaStockPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("alerta_worker: invalid payload")
		return
	}
	if w.destinatario == "" {
		log.Warn().Msg("alerta_worker: no alert email configured — skipping")
		return
	}

	subject := fmt.Sprintf("Stock bajo: %s", payload.Producto)
	if payload.Severidad == model.SeveridadCritico {
		subject = fmt.Sprintf("SIN STOCK: %s", payload.Producto)
	}
	body := fmt.Sprintf(
		"El producto %s (código %s) tiene stock %d, con mínimo configurado en %d.",
		payload.Producto, payload.CodigoBarras, payload.Stock, payload.StockMinimo,
	)

	if err := w.mailer.SendAlerta(w.destinatario, subject, body); err != nil {
		log.Error().Err(err).Str("producto", payload.Producto).Msg("alerta_worker: failed to send email")
		return
	}
	log.Info().Str("producto", payload.Producto).Str("severidad", payload.Severidad).Msg("alerta_worker: alert sent")
}
