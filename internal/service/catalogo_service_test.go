package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doorquote/internal/dto"
	"doorquote/internal/model"
	"doorquote/internal/pricing"
	"doorquote/internal/store"
)

func newCatalogoSvc() (CatalogoService, *store.CatalogStore) {
	st := store.New(nil)
	return NewCatalogoService(st, pricing.NewCalculator(0)), st
}

func TestCrear_AssignsIDAndComputesTotals(t *testing.T) {
	svc, _ := newCatalogoSvc()

	resp := svc.Crear(dto.CrearProductoRequest{
		Name:  "Puerta Blindada",
		Model: "BL-200",
		Concepts: []model.PriceConcept{
			{ID: "c1", Name: "Hoja", Amount: 100},
			{ID: "c2", Name: "Herrajes", Amount: 50},
		},
		Margin: 30,
	})

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, 195.0, resp.Totals.BaseImponible)
	assert.Equal(t, 235.95, resp.Totals.Total)
}

func TestCrear_NormalizesImagesToTwoSlots(t *testing.T) {
	svc, _ := newCatalogoSvc()

	resp := svc.Crear(dto.CrearProductoRequest{Name: "P", Model: "M", Images: []string{"una"}})
	require.Len(t, resp.Images, 2)
	assert.Equal(t, "una", resp.Images[0])
	assert.Empty(t, resp.Images[1])
}

func TestCrear_DropsEmptyConceptsAndRoundsAmounts(t *testing.T) {
	svc, _ := newCatalogoSvc()

	resp := svc.Crear(dto.CrearProductoRequest{
		Name:  "P",
		Model: "M",
		Concepts: []model.PriceConcept{
			{ID: "c1", Name: "Hoja", Amount: 19.005},
			{ID: "c2", Name: "   ", Amount: 0}, // empty name + zero: dropped
			{ID: "c3", Name: "", Amount: 5},    // amount alone keeps it
		},
	})

	require.Len(t, resp.Concepts, 2)
	assert.Equal(t, 19.01, resp.Concepts[0].Amount)
	assert.Equal(t, 5.0, resp.Concepts[1].Amount)
}

func TestActualizar_UnknownIDReportsNotFound(t *testing.T) {
	svc, _ := newCatalogoSvc()
	resp, ok := svc.Actualizar("no-existe", dto.ActualizarProductoRequest{})
	assert.False(t, ok)
	assert.Nil(t, resp)
}

func TestActualizar_PartialPatch(t *testing.T) {
	svc, _ := newCatalogoSvc()
	created := svc.Crear(dto.CrearProductoRequest{Name: "Original", Model: "M1", Margin: 10})

	nuevo := "Actualizada"
	resp, ok := svc.Actualizar(created.ID, dto.ActualizarProductoRequest{Name: &nuevo})

	require.True(t, ok)
	assert.Equal(t, "Actualizada", resp.Name)
	assert.Equal(t, "M1", resp.Model)
	assert.Equal(t, 10.0, resp.Margin)
}

func TestTotales_PreviewDoesNotPersist(t *testing.T) {
	svc, st := newCatalogoSvc()

	totals := svc.Totales(dto.TotalesPreviewRequest{
		Concepts: []model.PriceConcept{{Name: "Hoja", Amount: 100}},
		Margin:   0,
	})

	assert.Equal(t, 121.0, totals.Total)
	assert.Empty(t, st.Current().Doors)
}

func TestEstado_AnnotatesEveryProductWithTotals(t *testing.T) {
	svc, _ := newCatalogoSvc()
	svc.Crear(dto.CrearProductoRequest{Name: "A", Model: "M", Concepts: []model.PriceConcept{{Name: "x", Amount: 10}}})
	svc.Crear(dto.CrearProductoRequest{Name: "B", Model: "M", Concepts: []model.PriceConcept{{Name: "x", Amount: 20}}})

	estado := svc.Estado()
	require.Len(t, estado.Doors, 2)
	assert.Equal(t, 12.1, estado.Doors[0].Totals.Total)
	assert.Equal(t, 24.2, estado.Doors[1].Totals.Total)
}
