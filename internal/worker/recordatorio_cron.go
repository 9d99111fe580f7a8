package worker

// recordatorio_cron.go
// Background goroutine that, near the end of each month, reminds users with
// unspent points to distribute them. At most one reminder per user per month,
// guarded by a Redis SETNX key so restarts don't re-send.

import (
	"context"
	"fmt"
	"time"

	"github.com/cortese1982/Promipointssystemdevelopment/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	recordatorioTickInterval = 6 * time.Hour
	recordatorioKeyTTL       = 45 * 24 * time.Hour
)

// RecordatorioCronConfig holds all dependencies for the reminder goroutine.
type RecordatorioCronConfig struct {
	PresupuestoRepo repository.PresupuestoRepository
	ConfigRepo      repository.ConfigRepository
	Dispatcher      *Dispatcher
	RDB             *redis.Client
	// DiasAntes: how many days before month end reminders start going out.
	DiasAntes int
}

// StartRecordatorioCron launches a background goroutine that ticks every 6h
// and, inside the reminder window, enqueues one email per user with unspent
// points. It respects the context for graceful shutdown.
func StartRecordatorioCron(ctx context.Context, cfg RecordatorioCronConfig) {
	go func() {
		ticker := time.NewTicker(recordatorioTickInterval)
		defer ticker.Stop()

		log.Info().Msg("recordatorio_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("recordatorio_cron: shutting down")
				return
			case <-ticker.C:
				processRecordatorios(ctx, cfg, time.Now())
			}
		}
	}()
}

func processRecordatorios(ctx context.Context, cfg RecordatorioCronConfig, now time.Time) {
	if !dentroDeVentana(now, cfg.DiasAntes) {
		return
	}

	sistema, err := cfg.ConfigRepo.Obtener(ctx)
	if err != nil {
		log.Error().Err(err).Msg("recordatorio_cron: failed to load config")
		return
	}
	if !sistema.RecordatorioActivo || !sistema.NotificacionesEmail {
		return
	}

	mes := now.Format("2006-01")
	pendientes, err := cfg.PresupuestoRepo.ListConRestantes(ctx, mes)
	if err != nil {
		log.Error().Err(err).Msg("recordatorio_cron: failed to query budgets")
		return
	}
	if len(pendientes) == 0 {
		return
	}

	enviados := 0
	for i := range pendientes {
		p := &pendientes[i]
		if p.Usuario == nil || !p.Usuario.Activo {
			continue
		}

		// One reminder per user per month.
		key := fmt.Sprintf("recordatorio:%s:%s", mes, p.UsuarioID)
		ok, err := cfg.RDB.SetNX(ctx, key, 1, recordatorioKeyTTL).Result()
		if err != nil || !ok {
			continue
		}

		payload := EmailJobPayload{
			ToEmail: p.Usuario.Email,
			From:    sistema.RemitenteEmail,
			Subject: "Aún tienes PromiPoints por repartir",
			Body: fmt.Sprintf(
				"Hola %s,\n\nTe quedan %d PromiPoints sin repartir este mes. "+
					"Reconoce a tus compañeros antes de que termine %s.\n\nEquipo People",
				p.Usuario.Nombre, p.PuntosRestantes, mes),
		}
		if err := cfg.Dispatcher.EnqueueEmail(ctx, payload); err != nil {
			log.Error().Err(err).Str("usuario", p.UsuarioID.String()).Msg("recordatorio_cron: enqueue failed")
			continue
		}
		enviados++
	}

	if enviados > 0 {
		log.Info().Int("count", enviados).Str("mes", mes).Msg("recordatorio_cron: recordatorios encolados")
	}
}

// dentroDeVentana reports whether now falls in the last diasAntes days of its month.
func dentroDeVentana(now time.Time, diasAntes int) bool {
	finDeMes := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, 1, 0)
	return finDeMes.Sub(now) <= time.Duration(diasAntes)*24*time.Hour
}
