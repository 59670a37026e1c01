package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"doorquote/internal/codec"
	"doorquote/internal/dto"
	"doorquote/internal/model"
	"doorquote/internal/repository"
	"doorquote/internal/store"
)

// ErrPresupuestoNoEncontrado is returned when neither the archive nor the
// file sink holds the requested budget.
var ErrPresupuestoNoEncontrado = errors.New("presupuesto no encontrado")

// BudgetSink is the save/open exchange surface for snapshot files. A false
// boolean means the sink declined: a non-error, no-op outcome.
type BudgetSink interface {
	TrySave(fileName string, data []byte) (bool, error)
	TryOpen(fileName string) ([]byte, bool, error)
}

// PresupuestoService captures, archives, exchanges and restores full catalog
// snapshots.
type PresupuestoService interface {
	Guardar(ctx context.Context, nombre string) (*dto.GuardarPresupuestoResponse, error)
	Listar(ctx context.Context) ([]dto.PresupuestoResumen, error)
	Descargar(ctx context.Context, id uuid.UUID) ([]byte, string, error)
	ImportarArchivado(ctx context.Context, id uuid.UUID) (store.State, error)
	ImportarCrudo(raw []byte) (store.State, error)
	Abrir(fileName string) (*model.SavedBudget, error)
}

type presupuestoService struct {
	store *store.CatalogStore
	repo  repository.PresupuestoRepository
	sink  BudgetSink
	codec codec.Codec
}

func NewPresupuestoService(st *store.CatalogStore, repo repository.PresupuestoRepository, sink BudgetSink) PresupuestoService {
	return &presupuestoService{store: st, repo: repo, sink: sink}
}

// Guardar snapshots the current state under the given label, archives it,
// and offers it to the file sink. A declined sink write is reported as
// saved=false, not as a failure.
func (s *presupuestoService) Guardar(ctx context.Context, nombre string) (*dto.GuardarPresupuestoResponse, error) {
	budget := s.codec.Serialize(s.store.Current(), nombre)
	data, err := codec.Encode(budget)
	if err != nil {
		return nil, err
	}

	recID, err := uuid.Parse(budget.ID)
	if err != nil {
		return nil, fmt.Errorf("presupuesto: id invalido: %w", err)
	}
	rec := &model.BudgetRecord{
		ID:        recID,
		Nombre:    budget.Name,
		Timestamp: budget.Timestamp,
		Payload:   data,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("presupuesto: archivar: %w", err)
	}

	fileName := codec.FileName(nombre)
	saved, err := s.sink.TrySave(fileName, data)
	if err != nil {
		// The archive copy exists; the export failure is surfaced but the
		// snapshot is not rolled back.
		log.Error().Err(err).Str("file", fileName).Msg("presupuesto: export write failed")
		return nil, err
	}

	return &dto.GuardarPresupuestoResponse{
		ID:        budget.ID,
		Nombre:    budget.Name,
		Timestamp: budget.Timestamp,
		FileName:  fileName,
		Saved:     saved,
	}, nil
}

func (s *presupuestoService) Listar(ctx context.Context) ([]dto.PresupuestoResumen, error) {
	recs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PresupuestoResumen, 0, len(recs))
	for _, r := range recs {
		out = append(out, dto.PresupuestoResumen{
			ID:        r.ID.String(),
			Nombre:    r.Nombre,
			Timestamp: r.Timestamp,
			CreatedAt: r.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

// Descargar returns the archived snapshot bytes plus the suggested file name.
func (s *presupuestoService) Descargar(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, "", ErrPresupuestoNoEncontrado
	}
	return rec.Payload, codec.FileName(rec.Nombre), nil
}

// ImportarArchivado replaces the catalog state with an archived snapshot.
func (s *presupuestoService) ImportarArchivado(ctx context.Context, id uuid.UUID) (store.State, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return store.State{}, ErrPresupuestoNoEncontrado
	}
	return s.ImportarCrudo(rec.Payload)
}

// ImportarCrudo parses raw snapshot JSON and installs it as the full catalog
// state. All-or-nothing: a parse failure leaves current state untouched.
func (s *presupuestoService) ImportarCrudo(raw []byte) (store.State, error) {
	budget, err := codec.Decode(raw)
	if err != nil {
		return store.State{}, err
	}
	return s.store.ImportBudget(*budget), nil
}

// Abrir reads a budget file from the sink by file name without importing it,
// so the caller can show the label and ask for confirmation first. A missing
// file maps to ErrPresupuestoNoEncontrado.
func (s *presupuestoService) Abrir(fileName string) (*model.SavedBudget, error) {
	data, ok, err := s.sink.TryOpen(fileName)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPresupuestoNoEncontrado
	}
	return codec.Decode(data)
}
