//go:build integration

package e2e

// e2e_test.go
// End-to-end integration tests using real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v
//
// These tests:
//   T-E2E-1: Login → crear producto → estado con totales
//   T-E2E-2: Guardar presupuesto → listar → descargar → importar archivado
//   T-E2E-3: Documento paginado (capacidad 3, cliente en pag. 1, notas al final)
//   T-E2E-4: Estado persistido en Redis sobrevive a una nueva instancia del store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"doorquote/internal/config"
	"doorquote/internal/infra"
	"doorquote/internal/router"
	"doorquote/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string
	store  *store.CatalogStore
	cfg    *config.Config
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("doorquote_test"),
		tcPostgres.WithUsername("doorquote"),
		tcPostgres.WithPassword("doorquote"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		AdminUser:          "admin",
		AdminPassword:      "admin-e2e",
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		WorkerPoolSize:     1,
		PDFStoragePath:     t.TempDir(),
		BudgetsPath:        t.TempDir(),
		TaxRate:            0.21,
		PageCapacity:       3,
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	st := store.New(infra.NewRedisStateStore(rdb))
	require.NoError(t, st.Hydrate(ctx))

	srv := httptest.NewServer(router.New(cfg, db, rdb, st))
	t.Cleanup(srv.Close)

	env := &testEnv{server: srv, store: st, cfg: cfg}

	// Login
	resp := do(t, srv, http.MethodPost, "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "admin", "password": "admin-e2e"}), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, resp, &login)
	require.NotEmpty(t, login.AccessToken)
	env.token = login.AccessToken

	return env
}

func (env *testEnv) crearProducto(t *testing.T, name string, amount float64) string {
	t.Helper()
	resp := do(t, env.server, http.MethodPost, "/v1/productos", jsonBody(t, map[string]any{
		"name":     name,
		"model":    "Serie E2E",
		"concepts": []map[string]any{{"id": "c1", "name": "Base", "amount": amount}},
		"margin":   30,
	}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &created)
	require.NotEmpty(t, created.ID)
	return created.ID
}

// ── T-E2E-1 ──────────────────────────────────────────────────────────────────

func TestE2E_LoginCrearProductoEstado(t *testing.T) {
	env := setupTestEnv(t)

	// Unauthenticated access is rejected
	resp := do(t, env.server, http.MethodGet, "/v1/catalogo", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	env.crearProducto(t, "Puerta Blindada", 150)

	resp = do(t, env.server, http.MethodGet, "/v1/catalogo", nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var estado struct {
		Doors []struct {
			Name   string `json:"name"`
			Totals struct {
				Base          float64 `json:"base"`
				BaseImponible float64 `json:"base_imponible"`
				IVA           float64 `json:"iva"`
				Total         float64 `json:"total"`
			} `json:"totals"`
		} `json:"doors"`
	}
	decodeJSON(t, resp, &estado)

	require.Len(t, estado.Doors, 1)
	assert.Equal(t, "Puerta Blindada", estado.Doors[0].Name)
	assert.Equal(t, 150.0, estado.Doors[0].Totals.Base)
	assert.Equal(t, 195.0, estado.Doors[0].Totals.BaseImponible)
	assert.Equal(t, 40.95, estado.Doors[0].Totals.IVA)
	assert.Equal(t, 235.95, estado.Doors[0].Totals.Total)
}

// ── T-E2E-2 ──────────────────────────────────────────────────────────────────

func TestE2E_GuardarListarDescargarImportar(t *testing.T) {
	env := setupTestEnv(t)
	env.crearProducto(t, "Puerta Guardada", 100)

	// Guardar
	resp := do(t, env.server, http.MethodPost, "/v1/presupuestos",
		jsonBody(t, map[string]string{"nombre": "Obra E2E"}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var saved struct {
		ID       string `json:"id"`
		FileName string `json:"file_name"`
		Saved    bool   `json:"saved"`
	}
	decodeJSON(t, resp, &saved)
	assert.True(t, saved.Saved)
	assert.Equal(t, "obra_e2e.json", saved.FileName)

	// Listar
	resp = do(t, env.server, http.MethodGet, "/v1/presupuestos", nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []struct {
		ID     string `json:"id"`
		Nombre string `json:"nombre"`
	}
	decodeJSON(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Obra E2E", list[0].Nombre)

	// Descargar: the snapshot file uses the legacy "doors" wire key
	resp = do(t, env.server, http.MethodGet, fmt.Sprintf("/v1/presupuestos/%s/descargar", saved.ID), nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var snapshot map[string]json.RawMessage
	decodeJSON(t, resp, &snapshot)
	assert.Contains(t, snapshot, "doors")
	assert.Contains(t, snapshot, "clientInfo")

	// Reset, then restore from the archive
	resp = do(t, env.server, http.MethodPost, "/v1/catalogo/reset", nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	require.Empty(t, env.store.Current().Doors)

	resp = do(t, env.server, http.MethodPost, fmt.Sprintf("/v1/presupuestos/%s/importar", saved.ID), nil, env.token)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	restored := env.store.Current()
	require.Len(t, restored.Doors, 1)
	assert.Equal(t, "Puerta Guardada", restored.Doors[0].Name)
}

// ── T-E2E-3 ──────────────────────────────────────────────────────────────────

func TestE2E_DocumentoPaginado(t *testing.T) {
	env := setupTestEnv(t)

	// Empty catalog: no document
	resp := do(t, env.server, http.MethodGet, "/v1/documento/paginas", nil, env.token)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	for i := 0; i < 7; i++ {
		env.crearProducto(t, fmt.Sprintf("Puerta %d", i), 100)
	}
	resp = do(t, env.server, http.MethodPut, "/v1/catalogo/notas",
		jsonBody(t, map[string]string{"generalNotes": "Condiciones E2E"}), env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, http.MethodGet, "/v1/documento/paginas", nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var pages []struct {
		Number     int               `json:"number"`
		TotalPages int               `json:"total_pages"`
		ClientInfo *json.RawMessage  `json:"client_info"`
		Products   []json.RawMessage `json:"products"`
		Notes      string            `json:"notes"`
	}
	decodeJSON(t, resp, &pages)

	require.Len(t, pages, 3)
	assert.Len(t, pages[0].Products, 3)
	assert.Len(t, pages[2].Products, 1)
	assert.NotNil(t, pages[0].ClientInfo)
	assert.Nil(t, pages[1].ClientInfo)
	assert.Empty(t, pages[0].Notes)
	assert.Equal(t, "Condiciones E2E", pages[2].Notes)
}

// ── T-E2E-4 ──────────────────────────────────────────────────────────────────

func TestE2E_EstadoPersisteEnRedis(t *testing.T) {
	env := setupTestEnv(t)
	env.crearProducto(t, "Puerta Persistente", 50)

	// A fresh store hydrated from the same Redis sees the catalog
	rdb, err := infra.NewRedis(env.cfg.RedisURL)
	require.NoError(t, err)
	fresh := store.New(infra.NewRedisStateStore(rdb))
	require.NoError(t, fresh.Hydrate(context.Background()))

	st := fresh.Current()
	require.Len(t, st.Doors, 1)
	assert.Equal(t, "Puerta Persistente", st.Doors[0].Name)
	assert.Nil(t, st.EditingDoorID)
}
