package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"strconv"
	"time"

	"github.com/cortese1982/Promipointssystemdevelopment/internal/dto"
	"github.com/cortese1982/Promipointssystemdevelopment/internal/infra"
	"github.com/cortese1982/Promipointssystemdevelopment/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const reporteCacheTTL = 60 * time.Second

func reporteCacheKey(mes string) string { return "reporte:" + mes }

// ReporteService derives the monthly per-user and per-category summaries from
// the reconocimientos log. Pure read-side computation; the only state it
// touches is a short-lived Redis cache that writers invalidate.
type ReporteService interface {
	ResumenMensual(ctx context.Context, mes string) (*dto.ReporteMensualResponse, error)
	ExportCSV(ctx context.Context, mes string) ([]byte, error)
	ExportPDF(ctx context.Context, mes string) ([]byte, error)
}

type reporteService struct {
	reconRepo       repository.ReconocimientoRepository
	presupuestoRepo repository.PresupuestoRepository
	usuarioRepo     repository.UsuarioRepository
	categoriaRepo   repository.CategoriaRepository
	rdb             *redis.Client
}

func NewReporteService(
	reconRepo repository.ReconocimientoRepository,
	presupuestoRepo repository.PresupuestoRepository,
	usuarioRepo repository.UsuarioRepository,
	categoriaRepo repository.CategoriaRepository,
	rdb *redis.Client,
) ReporteService {
	return &reporteService{
		reconRepo:       reconRepo,
		presupuestoRepo: presupuestoRepo,
		usuarioRepo:     usuarioRepo,
		categoriaRepo:   categoriaRepo,
		rdb:             rdb,
	}
}

func (s *reporteService) ResumenMensual(ctx context.Context, mes string) (*dto.ReporteMensualResponse, error) {
	// 1. Try Redis cache
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, reporteCacheKey(mes)).Bytes(); err == nil {
			var resp dto.ReporteMensualResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				return &resp, nil
			}
		}
	}

	// 2. Cache miss — recompute from the ledger
	resp, err := s.calcularResumen(ctx, mes)
	if err != nil {
		return nil, err
	}

	// 3. Populate cache — best effort, ignore errors
	if s.rdb != nil {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = s.rdb.Set(ctx, reporteCacheKey(mes), b, reporteCacheTTL).Err()
		}
	}
	return resp, nil
}

func (s *reporteService) calcularResumen(ctx context.Context, mes string) (*dto.ReporteMensualResponse, error) {
	usuarios, err := s.usuarioRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	recons, err := s.reconRepo.ListByMes(ctx, mes)
	if err != nil {
		return nil, err
	}
	presupuestos, err := s.presupuestoRepo.ListByMes(ctx, mes)
	if err != nil {
		return nil, err
	}

	restantes := make(map[uuid.UUID]int, len(presupuestos))
	conPresupuesto := make(map[uuid.UUID]bool, len(presupuestos))
	for _, p := range presupuestos {
		restantes[p.UsuarioID] = p.PuntosRestantes
		conPresupuesto[p.UsuarioID] = true
	}

	filas := make([]dto.ReporteFila, 0, len(usuarios))
	for _, u := range usuarios {
		fila := dto.ReporteFila{
			UsuarioID:    u.ID.String(),
			Nombre:       u.Nombre,
			Departamento: u.Departamento,
			PorCategoria: make(map[string]int),
		}
		for _, r := range recons {
			if r.ParaUsuarioID == u.ID {
				fila.PuntosRecibidos += r.Puntos
				fila.Reconocimientos++
				fila.PorCategoria[r.Categoria] += r.Puntos
			}
		}
		// Points given = budget minus what remains. A user without an
		// allocation row has not touched the month yet.
		if conPresupuesto[u.ID] {
			fila.PuntosDados = PresupuestoMensualInicial - restantes[u.ID]
		}
		filas = append(filas, fila)
	}

	return &dto.ReporteMensualResponse{Mes: mes, Filas: filas}, nil
}

// ExportCSV renders the monthly report as CSV: fixed columns first, then one
// column per known category.
func (s *reporteService) ExportCSV(ctx context.Context, mes string) ([]byte, error) {
	resumen, err := s.ResumenMensual(ctx, mes)
	if err != nil {
		return nil, err
	}
	categorias, err := s.categoriaRepo.Listar(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Nombre", "Departamento", "Puntos recibidos", "Reconocimientos", "Puntos dados"}
	for _, c := range categorias {
		header = append(header, c.Nombre)
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, fila := range resumen.Filas {
		row := []string{
			fila.Nombre,
			fila.Departamento,
			strconv.Itoa(fila.PuntosRecibidos),
			strconv.Itoa(fila.Reconocimientos),
			strconv.Itoa(fila.PuntosDados),
		}
		for _, c := range categorias {
			row = append(row, strconv.Itoa(fila.PorCategoria[c.Nombre]))
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *reporteService) ExportPDF(ctx context.Context, mes string) ([]byte, error) {
	resumen, err := s.ResumenMensual(ctx, mes)
	if err != nil {
		return nil, err
	}
	return infra.GenerateReportePDF(resumen)
}
