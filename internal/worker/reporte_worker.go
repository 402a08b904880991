package worker

// reporte_worker.go
// Processes closing-report jobs from QueueReporteCierre.
// Generates the PDF report and mails it to the agent via SMTP.
// Implements exponential backoff (max 3 retries); exhausted jobs go to the DLQ.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"correcaja/internal/dto"
	"correcaja/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ReporteWorker processes closing-report jobs from QueueReporteCierre.
type ReporteWorker struct {
	mailer         *infra.Mailer
	breaker        *infra.CircuitBreaker
	rdb            *redis.Client
	pdfStoragePath string
}

// NewReporteWorker wires the dependencies for the closing-report worker.
// The circuit breaker guards the SMTP relay.
func NewReporteWorker(mailer *infra.Mailer, breaker *infra.CircuitBreaker, rdb *redis.Client, pdfStoragePath string) *ReporteWorker {
	return &ReporteWorker{
		mailer:         mailer,
		breaker:        breaker,
		rdb:            rdb,
		pdfStoragePath: pdfStoragePath,
	}
}

// Process handles a single closing-report job:
//  1. Parse dto.ReporteCierre from the job envelope
//  2. Generate the PDF report
//  3. Send the email through the circuit breaker, with backoff
//  4. Move exhausted jobs to the DLQ for manual inspection
func (w *ReporteWorker) Process(ctx context.Context, raw json.RawMessage) {
	var rep dto.ReporteCierre
	if err := json.Unmarshal(raw, &rep); err != nil {
		log.Error().Err(err).Msg("reporte_worker: invalid payload")
		return
	}
	if rep.Email == "" {
		log.Warn().Str("caja_id", rep.CajaID).Msg("reporte_worker: empty email — skipping")
		return
	}

	pdfPath, err := infra.GenerateCierrePDF(&rep, w.pdfStoragePath)
	if err != nil {
		log.Error().Err(err).Str("caja_id", rep.CajaID).Msg("reporte_worker: PDF generation failed")
		SendToDLQ(ctx, w.rdb, QueueReporteCierre, "reporte_cierre", raw, "pdf: "+err.Error(), 1)
		return
	}
	log.Info().Str("pdf", pdfPath).Str("caja_id", rep.CajaID).Msg("reporte_worker: PDF generated")

	subject := fmt.Sprintf("%s — Cierre de caja %s", rep.NombreNegocio, rep.CerradaAt)
	body := fmt.Sprintf(
		"Hola %s,\n\nAdjunto encontrarás el reporte de cierre de tu caja.\n\nEsperado: $%s\nContado: $%s\nDiferencia: $%s\n",
		rep.Agente,
		rep.MontoEsperado.StringFixed(2),
		rep.MontoReal.StringFixed(2),
		rep.Diferencia.StringFixed(2),
	)

	const maxAttempts = 3
	sendErr := withRetry(ctx, maxAttempts, func(attempt int) error {
		err := w.breaker.Execute(func() error {
			return w.mailer.SendReporte(rep.Email, subject, body, pdfPath)
		})
		if err != nil {
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Str("caja_id", rep.CajaID).
				Msg("reporte_worker: send attempt failed, retrying")
		}
		return err
	})

	if sendErr != nil {
		log.Error().Err(sendErr).Str("caja_id", rep.CajaID).Msg("reporte_worker: send failed after all retries")
		SendToDLQ(ctx, w.rdb, QueueReporteCierre, "reporte_cierre", raw, "smtp: "+sendErr.Error(), maxAttempts)
		return
	}
	log.Info().Str("to", rep.Email).Str("caja_id", rep.CajaID).Msg("reporte_worker: reporte sent successfully")
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			// 1s, 2s … (exponential backoff)
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
