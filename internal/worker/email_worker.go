package worker

// email_worker.go
// Processes email jobs from QueueEmail: recognition notifications and
// unspent-point reminders. Failed sends are re-enqueued with backoff up to
// MaxEmailRetries and then moved to the DLQ.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cortese1982/Promipointssystemdevelopment/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const MaxEmailRetries = 3

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail  string `json:"to_email"`
	From     string `json:"from"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	Attempts int    `json:"attempts"`
}

// EmailWorker processes email jobs from QueueEmail.
type EmailWorker struct {
	mailer     *infra.Mailer
	rdb        *redis.Client
	dispatcher *Dispatcher
}

// NewEmailWorker creates an EmailWorker with the provided SMTP mailer.
func NewEmailWorker(mailer *infra.Mailer, rdb *redis.Client, dispatcher *Dispatcher) *EmailWorker {
	return &EmailWorker{mailer: mailer, rdb: rdb, dispatcher: dispatcher}
}

// Process sends one notification email, retrying on failure.
func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email — skipping")
		return
	}

	if err := w.mailer.Send(payload.From, payload.ToEmail, payload.Subject, payload.Body); err != nil {
		payload.Attempts++
		if payload.Attempts >= MaxEmailRetries {
			SendToDLQ(ctx, w.rdb, QueueEmail, "email", raw,
				fmt.Sprintf("max retries (%d) exceeded: %s", MaxEmailRetries, err), payload.Attempts)
			return
		}
		// Linear backoff before re-enqueueing; the queue is low volume.
		time.Sleep(time.Duration(payload.Attempts) * time.Second)
		if qErr := w.dispatcher.EnqueueEmail(ctx, payload); qErr != nil {
			log.Error().Err(qErr).Str("to", payload.ToEmail).Msg("email_worker: re-enqueue failed")
		}
		log.Warn().Err(err).
			Str("to", payload.ToEmail).
			Int("attempts", payload.Attempts).
			Msg("email_worker: send failed, re-enqueued")
		return
	}
	log.Info().Str("to", payload.ToEmail).Msg("email_worker: notificacion enviada")
}
