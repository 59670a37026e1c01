package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doorquote/internal/model"
	"doorquote/internal/store"
)

// ── In-memory repository and sink ────────────────────────────────────────────

type memBudgetRepo struct {
	records map[uuid.UUID]*model.BudgetRecord
	order   []uuid.UUID
	failAll bool
}

func newMemBudgetRepo() *memBudgetRepo {
	return &memBudgetRepo{records: make(map[uuid.UUID]*model.BudgetRecord)}
}

func (r *memBudgetRepo) Create(_ context.Context, rec *model.BudgetRecord) error {
	if r.failAll {
		return errors.New("db down")
	}
	r.records[rec.ID] = rec
	r.order = append(r.order, rec.ID)
	return nil
}

func (r *memBudgetRepo) FindByID(_ context.Context, id uuid.UUID) (*model.BudgetRecord, error) {
	rec, ok := r.records[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return rec, nil
}

func (r *memBudgetRepo) List(_ context.Context) ([]model.BudgetRecord, error) {
	out := make([]model.BudgetRecord, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		out = append(out, *r.records[r.order[i]])
	}
	return out, nil
}

func (r *memBudgetRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.records, id)
	return nil
}

type memSink struct {
	files   map[string][]byte
	decline bool
}

func newMemSink() *memSink { return &memSink{files: make(map[string][]byte)} }

func (s *memSink) TrySave(fileName string, data []byte) (bool, error) {
	if s.decline {
		return false, nil
	}
	s.files[fileName] = data
	return true, nil
}

func (s *memSink) TryOpen(fileName string) ([]byte, bool, error) {
	data, ok := s.files[fileName]
	return data, ok, nil
}

func fixture() (PresupuestoService, *store.CatalogStore, *memBudgetRepo, *memSink) {
	st := store.New(nil)
	repo := newMemBudgetRepo()
	sink := newMemSink()
	return NewPresupuestoService(st, repo, sink), st, repo, sink
}

func addProduct(st *store.CatalogStore, id, name string) {
	st.AddDoor(model.Product{ID: id, Name: name, Model: "M", Concepts: []model.PriceConcept{{Name: "x", Amount: 100}}})
}

// ── Guardar ──────────────────────────────────────────────────────────────────

func TestGuardar_ArchivesAndWritesFile(t *testing.T) {
	svc, st, repo, sink := fixture()
	addProduct(st, "a", "Puerta")
	st.SetGeneralNotes("notas")

	resp, err := svc.Guardar(context.Background(), "Obra Mayor")
	require.NoError(t, err)

	assert.True(t, resp.Saved)
	assert.Equal(t, "Obra Mayor", resp.Nombre)
	assert.Equal(t, "obra_mayor.json", resp.FileName)
	assert.NotZero(t, resp.Timestamp)

	// Archived in the repository
	require.Len(t, repo.records, 1)
	rec := repo.records[uuid.MustParse(resp.ID)]
	require.NotNil(t, rec)
	assert.Equal(t, "Obra Mayor", rec.Nombre)

	// File content is the same snapshot
	assert.Equal(t, rec.Payload, sink.files["obra_mayor.json"])
}

func TestGuardar_SinkDeclinedIsNotAnError(t *testing.T) {
	svc, st, repo, sink := fixture()
	sink.decline = true
	addProduct(st, "a", "Puerta")

	resp, err := svc.Guardar(context.Background(), "x")
	require.NoError(t, err)
	assert.False(t, resp.Saved)
	assert.Len(t, repo.records, 1) // archive copy still exists
}

func TestGuardar_RepoFailurePropagates(t *testing.T) {
	svc, st, repo, _ := fixture()
	repo.failAll = true
	addProduct(st, "a", "Puerta")

	_, err := svc.Guardar(context.Background(), "x")
	assert.Error(t, err)
}

// ── Listar / Descargar ───────────────────────────────────────────────────────

func TestListar_NewestFirst(t *testing.T) {
	svc, st, _, _ := fixture()
	addProduct(st, "a", "Puerta")

	first, err := svc.Guardar(context.Background(), "primero")
	require.NoError(t, err)
	second, err := svc.Guardar(context.Background(), "segundo")
	require.NoError(t, err)

	list, err := svc.Listar(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestDescargar_ReturnsPayloadAndFileName(t *testing.T) {
	svc, st, _, _ := fixture()
	addProduct(st, "a", "Puerta")
	resp, err := svc.Guardar(context.Background(), "Mi Obra")
	require.NoError(t, err)

	data, fileName, err := svc.Descargar(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.Equal(t, "mi_obra.json", fileName)
	assert.NotEmpty(t, data)
}

func TestDescargar_UnknownID(t *testing.T) {
	svc, _, _, _ := fixture()
	_, _, err := svc.Descargar(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrPresupuestoNoEncontrado)
}

// ── Importar ─────────────────────────────────────────────────────────────────

func TestImportarArchivado_RoundTripsState(t *testing.T) {
	svc, st, _, _ := fixture()
	addProduct(st, "a", "Puerta Original")
	st.SetGeneralNotes("condiciones")
	resp, err := svc.Guardar(context.Background(), "snapshot")
	require.NoError(t, err)

	// Mutate away from the snapshot, then restore it.
	st.ResetAll()
	require.Empty(t, st.Current().Doors)

	restored, err := svc.ImportarArchivado(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	require.Len(t, restored.Doors, 1)
	assert.Equal(t, "Puerta Original", restored.Doors[0].Name)
	assert.Equal(t, "condiciones", restored.GeneralNotes)
}

func TestImportarCrudo_InvalidContentLeavesStateUntouched(t *testing.T) {
	svc, st, _, _ := fixture()
	addProduct(st, "a", "Intacta")

	_, err := svc.ImportarCrudo([]byte("esto no es json"))
	require.Error(t, err)
	assert.Len(t, st.Current().Doors, 1)
}

func TestImportarCrudo_MinimalSnapshotCoalesces(t *testing.T) {
	svc, st, _, _ := fixture()
	addProduct(st, "a", "Vieja")

	restored, err := svc.ImportarCrudo([]byte(`{"name":"minimo"}`))
	require.NoError(t, err)
	assert.Empty(t, restored.Doors)
	assert.Equal(t, model.DefaultClientInfo(), restored.ClientInfo)
	assert.Empty(t, st.Current().Doors)
}

// ── Abrir ────────────────────────────────────────────────────────────────────

func TestAbrir_ReadsWithoutImporting(t *testing.T) {
	svc, st, _, _ := fixture()
	addProduct(st, "a", "Puerta")
	_, err := svc.Guardar(context.Background(), "guardado")
	require.NoError(t, err)

	st.ResetAll()

	budget, err := svc.Abrir("guardado.json")
	require.NoError(t, err)
	assert.Equal(t, "guardado", budget.Name)
	assert.Len(t, budget.Doors, 1)

	// Catalog state was not replaced by the read
	assert.Empty(t, st.Current().Doors)
}

func TestAbrir_MissingFile(t *testing.T) {
	svc, _, _, _ := fixture()
	_, err := svc.Abrir("no_existe.json")
	assert.ErrorIs(t, err, ErrPresupuestoNoEncontrado)
}
