package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cortese1982/Promipointssystemdevelopment/internal/dto"
	"github.com/cortese1982/Promipointssystemdevelopment/internal/model"
	"github.com/cortese1982/Promipointssystemdevelopment/internal/repository"
	"github.com/cortese1982/Promipointssystemdevelopment/internal/worker"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// PresupuestoMensualInicial is the fixed point budget every user gets per month.
const PresupuestoMensualInicial = 10

// MesActual returns the current ledger month as "YYYY-MM".
func MesActual() string {
	return time.Now().UTC().Format("2006-01")
}

type PuntosService interface {
	// EnsurePresupuesto returns the user's budget for the month, creating it
	// lazily with the initial allocation on first access.
	EnsurePresupuesto(ctx context.Context, usuarioID uuid.UUID, mes string) (*dto.PresupuestoResponse, error)
	Reconocer(ctx context.Context, deUsuarioID uuid.UUID, req dto.CrearReconocimientoRequest) (*dto.ReconocimientoEnviado, error)
	ResetTotal(ctx context.Context, usuarioID uuid.UUID, mes string) error
	Recibidos(ctx context.Context, usuarioID uuid.UUID, mes string) ([]dto.ReconocimientoRecibido, error)
	Enviados(ctx context.Context, usuarioID uuid.UUID, mes string) ([]dto.ReconocimientoEnviado, error)
}

type puntosService struct {
	presupuestoRepo repository.PresupuestoRepository
	reconRepo       repository.ReconocimientoRepository
	usuarioRepo     repository.UsuarioRepository
	categoriaRepo   repository.CategoriaRepository
	configRepo      repository.ConfigRepository
	dispatcher      *worker.Dispatcher
	rdb             *redis.Client
}

func NewPuntosService(
	presupuestoRepo repository.PresupuestoRepository,
	reconRepo repository.ReconocimientoRepository,
	usuarioRepo repository.UsuarioRepository,
	categoriaRepo repository.CategoriaRepository,
	configRepo repository.ConfigRepository,
	dispatcher *worker.Dispatcher,
	rdb *redis.Client,
) PuntosService {
	return &puntosService{
		presupuestoRepo: presupuestoRepo,
		reconRepo:       reconRepo,
		usuarioRepo:     usuarioRepo,
		categoriaRepo:   categoriaRepo,
		configRepo:      configRepo,
		dispatcher:      dispatcher,
		rdb:             rdb,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── EnsurePresupuesto ─────────────────────────────────────────────────────────
// A missing allocation means "not yet initialized", never an error.

func (s *puntosService) EnsurePresupuesto(ctx context.Context, usuarioID uuid.UUID, mes string) (*dto.PresupuestoResponse, error) {
	var p *model.PresupuestoMensual
	err := runTx(ctx, s.presupuestoRepo.DB(), func(tx *gorm.DB) error {
		var txErr error
		p, txErr = s.presupuestoRepo.FindOrCreateTx(s.tx(ctx, tx), usuarioID, mes, PresupuestoMensualInicial)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return &dto.PresupuestoResponse{
		Mes:             p.Mes,
		PuntosRestantes: p.PuntosRestantes,
		PuntosRecibidos: p.PuntosRecibidos,
	}, nil
}

// ── Reconocer ─────────────────────────────────────────────────────────────────
// One ACID transaction keeps the two collections consistent:
//   1. Validate receiver and categoria (pre-flight, outside TX)
//   2. BEGIN TX: ensure both budgets, debit sender, credit receiver,
//      append the reconocimiento row
//   3. COMMIT
//   4. (async) enqueue the anonymous notification email

func (s *puntosService) Reconocer(ctx context.Context, deUsuarioID uuid.UUID, req dto.CrearReconocimientoRequest) (*dto.ReconocimientoEnviado, error) {
	paraID, err := uuid.Parse(req.ParaUsuarioID)
	if err != nil {
		return nil, fmt.Errorf("para_usuario_id inválido: %w", err)
	}
	if paraID == deUsuarioID {
		return nil, errors.New("no puedes darte puntos a ti mismo")
	}

	// 1. Receiver must exist and be active
	receptor, err := s.usuarioRepo.FindByID(ctx, paraID)
	if err != nil || !receptor.Activo {
		return nil, errors.New("usuario destinatario no encontrado")
	}

	// 2. Categoria must exist and be enabled
	cat, err := s.categoriaRepo.ObtenerPorNombre(ctx, req.Categoria)
	if err != nil {
		return nil, errors.New("categoría no encontrada")
	}
	if !cat.Activo {
		return nil, errors.New("la categoría está deshabilitada")
	}

	mes := MesActual()

	// 3. ACID transaction
	var rec model.Reconocimiento
	txErr := runTx(ctx, s.presupuestoRepo.DB(), func(tx *gorm.DB) error {
		txc := s.tx(ctx, tx)

		emisor, err := s.presupuestoRepo.FindOrCreateTx(txc, deUsuarioID, mes, PresupuestoMensualInicial)
		if err != nil {
			return err
		}

		destinatario, err := s.presupuestoRepo.FindOrCreateTx(txc, paraID, mes, PresupuestoMensualInicial)
		if err != nil {
			return err
		}

		// The debit carries its own balance check: a guarded single-statement
		// UPDATE, so a concurrent send against the same budget can never
		// overspend it.
		debitado, err := s.presupuestoRepo.DebitarTx(txc, emisor.ID, req.Puntos)
		if err != nil {
			return err
		}
		if !debitado {
			restantes := emisor.PuntosRestantes
			if actual, ferr := s.presupuestoRepo.FindOrCreateTx(txc, deUsuarioID, mes, PresupuestoMensualInicial); ferr == nil {
				restantes = actual.PuntosRestantes
			}
			return fmt.Errorf("puntos insuficientes: te quedan %d este mes", restantes)
		}

		if err := s.presupuestoRepo.AcreditarTx(txc, destinatario.ID, req.Puntos); err != nil {
			return err
		}

		rec = model.Reconocimiento{
			DeUsuarioID:   deUsuarioID,
			ParaUsuarioID: paraID,
			Puntos:        req.Puntos,
			Categoria:     cat.Nombre,
			Mensaje:       req.Mensaje,
			Mes:           mes,
		}
		return s.reconRepo.CreateTx(txc, &rec)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.invalidarReporte(ctx, mes)

	// 4. Async notification — best-effort, fire & forget. The sender is never
	// named: recognition is anonymous.
	s.notificar(ctx, receptor, req.Puntos, cat.Nombre)

	return &dto.ReconocimientoEnviado{
		ID:          rec.ID.String(),
		ParaUsuario: receptor.Nombre,
		Puntos:      rec.Puntos,
		Categoria:   rec.Categoria,
		Mensaje:     rec.Mensaje,
		Mes:         rec.Mes,
		CreatedAt:   rec.CreatedAt.Format(time.RFC3339),
	}, nil
}

// ── ResetTotal ────────────────────────────────────────────────────────────────
// Admin reset for one user and month: restore the budget, zero received
// points, delete every reconocimiento involving the user for the month.
// Counterpart balances are left as-is; only the selected user's ledger is reset.

func (s *puntosService) ResetTotal(ctx context.Context, usuarioID uuid.UUID, mes string) error {
	if _, err := s.usuarioRepo.FindByID(ctx, usuarioID); err != nil {
		return errors.New("usuario no encontrado")
	}

	txErr := runTx(ctx, s.presupuestoRepo.DB(), func(tx *gorm.DB) error {
		txc := s.tx(ctx, tx)

		p, err := s.presupuestoRepo.FindOrCreateTx(txc, usuarioID, mes, PresupuestoMensualInicial)
		if err != nil {
			return err
		}
		p.PuntosRestantes = PresupuestoMensualInicial
		p.PuntosRecibidos = 0
		if err := s.presupuestoRepo.UpdateTx(txc, p); err != nil {
			return err
		}

		return s.reconRepo.DeleteByUsuarioMesTx(txc, usuarioID, mes)
	})
	if txErr != nil {
		return txErr
	}

	s.invalidarReporte(ctx, mes)
	return nil
}

// ── Lectura ───────────────────────────────────────────────────────────────────

func (s *puntosService) Recibidos(ctx context.Context, usuarioID uuid.UUID, mes string) ([]dto.ReconocimientoRecibido, error) {
	recs, err := s.reconRepo.ListRecibidos(ctx, usuarioID, mes)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReconocimientoRecibido, 0, len(recs))
	for _, r := range recs {
		out = append(out, dto.ReconocimientoRecibido{
			ID:        r.ID.String(),
			Puntos:    r.Puntos,
			Categoria: r.Categoria,
			Mensaje:   r.Mensaje,
			Mes:       r.Mes,
			CreatedAt: r.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

func (s *puntosService) Enviados(ctx context.Context, usuarioID uuid.UUID, mes string) ([]dto.ReconocimientoEnviado, error) {
	recs, err := s.reconRepo.ListEnviados(ctx, usuarioID, mes)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReconocimientoEnviado, 0, len(recs))
	for _, r := range recs {
		nombre := ""
		if r.ParaUsuario != nil {
			nombre = r.ParaUsuario.Nombre
		}
		out = append(out, dto.ReconocimientoEnviado{
			ID:          r.ID.String(),
			ParaUsuario: nombre,
			Puntos:      r.Puntos,
			Categoria:   r.Categoria,
			Mensaje:     r.Mensaje,
			Mes:         r.Mes,
			CreatedAt:   r.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// tx resolves the DB handle for repo Tx methods: the open transaction when one
// exists, the base connection otherwise (nil in unit test mode is passed through).
func (s *puntosService) tx(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx.WithContext(ctx)
	}
	return nil
}

func (s *puntosService) invalidarReporte(ctx context.Context, mes string) {
	if s.rdb == nil {
		return
	}
	_ = s.rdb.Del(ctx, reporteCacheKey(mes)).Err()
}

func (s *puntosService) notificar(ctx context.Context, receptor *model.Usuario, puntos int, categoria string) {
	if s.dispatcher == nil || s.configRepo == nil {
		return
	}
	sistema, err := s.configRepo.Obtener(ctx)
	if err != nil || !sistema.NotificacionesEmail || receptor.Email == "" {
		return
	}
	asunto := sistema.AsuntoReconocimiento
	if asunto == "" {
		asunto = "¡Has recibido PromiPoints!"
	}
	_ = s.dispatcher.EnqueueEmail(ctx, worker.EmailJobPayload{
		ToEmail: receptor.Email,
		From:    sistema.RemitenteEmail,
		Subject: asunto,
		Body: fmt.Sprintf(
			"Hola %s,\n\nUn compañero te ha reconocido con %d PromiPoints en la categoría \"%s\".\n\nEquipo People",
			receptor.Nombre, puntos, categoria),
	})
}
