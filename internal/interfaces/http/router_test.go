package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reefet/reefet-api/internal/application/auth"
	"github.com/reefet/reefet-api/internal/application/dto"
	"github.com/reefet/reefet-api/internal/application/ingest"
	"github.com/reefet/reefet-api/internal/application/usecase"
	"github.com/reefet/reefet-api/internal/application/validation"
	"github.com/reefet/reefet-api/internal/infrastructure/memory"
	apphttp "github.com/reefet/reefet-api/internal/interfaces/http"
	"github.com/reefet/reefet-api/pkg/logger"
	pkgjwt "github.com/reefet/reefet-api/pkg/jwt"
)

type testServer struct {
	app   *fiber.App
	store *memory.Store
}

// newTestServer arma la API completa sobre el store en memoria, con el endpoint legacy montado.
func newTestServer(t *testing.T) testServer {
	t.Helper()
	s := memory.NewStore()
	companies := memory.NewCompanyRepository(s)
	depots := memory.NewDepotRepository(s)
	nodes := memory.NewNodeRepository(s)
	dispatches := memory.NewDispatchRepository(s)
	users := memory.NewUserRepository(s)
	v := validation.New()
	log := logger.Nop()

	signer, err := pkgjwt.NewSigner(testJWTSecret, testIssuer, 24*time.Hour)
	require.NoError(t, err)
	lookup := ingest.RepoLookup{Nodes: nodes, Depots: depots}
	newIngest := func(strategy string) *ingest.IngestUseCase {
		r, err := ingest.NewResolver(strategy)
		require.NoError(t, err)
		return ingest.NewIngestUseCase(r, lookup, dispatches, v, log)
	}

	app := apphttp.NewApp(apphttp.AppConfig{Name: "reefet-test", Log: log, AllowedOrigins: []string{"http://localhost:5173"}})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:       auth.NewAuthUseCase(users, companies, depots, signer, v),
		CompanyUC:    usecase.NewCompanyUseCase(companies, v),
		DepotUC:      usecase.NewDepotUseCase(depots, companies, v),
		NodeUC:       usecase.NewNodeUseCase(nodes, depots, v),
		DispatchUC:   usecase.NewDispatchUseCase(dispatches),
		Ingest:       newIngest(ingest.StrategyNodeCode),
		LegacyIngest: newIngest(ingest.StrategyDepotTag),
		ServiceName:  "reefet-test",
	})
	return testServer{app: app, store: s}
}

func (ts testServer) do(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func (ts testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	status, body := ts.do(t, http.MethodPost, "/api/login", "", fiber.Map{"email": email, "password": password})
	require.Equal(t, http.StatusOK, status, string(body))
	var out dto.LoginResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return out.Token
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v), string(body))
	return v
}

type fleet struct {
	adminToken string
	companyID  string
	norteID    string
	surID      string
}

// seedFleet crea por HTTP un admin, una empresa, dos depósitos y el nodo N1 en Norte.
func seedFleet(t *testing.T, ts testServer) fleet {
	t.Helper()
	status, body := ts.do(t, http.MethodPost, "/api/register", "", fiber.Map{
		"email": "admin@reefet.io", "password": "admin-password", "isAdmin": true,
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	f := fleet{adminToken: ts.login(t, "admin@reefet.io", "admin-password")}

	status, body = ts.do(t, http.MethodPost, "/api/companies", f.adminToken, fiber.Map{"name": "Frigo SA", "taxId": "76.123.456-7"})
	require.Equal(t, http.StatusCreated, status, string(body))
	f.companyID = decode[dto.CompanyResponse](t, body).ID

	for _, d := range []struct {
		name, tag string
		id        *string
	}{{"Norte", "TAG-NORTE", &f.norteID}, {"Sur", "TAG-SUR", &f.surID}} {
		status, body = ts.do(t, http.MethodPost, "/api/depots", f.adminToken, fiber.Map{
			"name": d.name, "address": "Av. Puerto 1", "lat": -33.04, "lon": -71.61,
			"companyId": f.companyID, "nodeIdentifier": d.tag,
		})
		require.Equal(t, http.StatusCreated, status, string(body))
		*d.id = decode[dto.DepotResponse](t, body).ID
	}

	status, body = ts.do(t, http.MethodPost, "/api/nodes", f.adminToken, fiber.Map{"externalCode": "N1", "depotId": f.norteID})
	require.Equal(t, http.StatusCreated, status, string(body))
	return f
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	status, body := ts.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok","service":"reefet-test"}`, string(body))
}

func TestRutaInexistente_404(t *testing.T) {
	ts := newTestServer(t)
	status, body := ts.do(t, http.MethodGet, "/api/nada", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, apphttp.CodeNotFound, decode[dto.ErrorResponse](t, body).Code)
}

func TestIngesta_PorCodigoDeNodo(t *testing.T) {
	ts := newTestServer(t)
	f := seedFleet(t, ts)

	status, body := ts.do(t, http.MethodPost, "/api/dispatches", "", fiber.Map{
		"idNodo": "N1", "idReefer": "R1", "tServ": "2024-05-01T09:00:00-03:00",
		"sp": -18.5, "sw": "v1.2", "marca": "Carrier",
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	out := decode[dto.DispatchResponse](t, body)
	assert.Equal(t, f.norteID, out.Depot.ID)
	assert.Equal(t, "N1", out.NodeCode)
	require.NotNil(t, out.NodeID)
	assert.True(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC).Equal(out.ServiceTime))
	assert.True(t, out.ServiceTime.Equal(out.NodeTime))
	assert.Equal(t, -18.5, out.SetPoint)
	assert.Equal(t, 1, ts.store.DispatchCount())
}

func TestIngesta_NodoDesconocido_404SinEscritura(t *testing.T) {
	ts := newTestServer(t)
	seedFleet(t, ts)

	status, body := ts.do(t, http.MethodPost, "/api/dispatches", "", fiber.Map{
		"idNodo": "N9", "idReefer": "R1", "tServ": "2024-05-01T12:00:00Z", "sp": 4, "sw": "v1",
	})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, apphttp.CodeNotFound, decode[dto.ErrorResponse](t, body).Code)
	assert.Equal(t, 0, ts.store.DispatchCount())
}

func TestIngesta_PayloadInvalido_400(t *testing.T) {
	ts := newTestServer(t)
	seedFleet(t, ts)

	status, body := ts.do(t, http.MethodPost, "/api/dispatches", "", fiber.Map{
		"idNodo": "N1", "tServ": "2024-05-01T12:00:00Z", "sp": 4, "sw": "v1",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, apphttp.CodeValidation, decode[dto.ErrorResponse](t, body).Code)

	req := httptest.NewRequest(http.MethodPost, "/api/dispatches", bytes.NewReader([]byte("{no json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 0, ts.store.DispatchCount())
}

func TestIngesta_EndpointLegacyPorTagDeDeposito(t *testing.T) {
	ts := newTestServer(t)
	f := seedFleet(t, ts)

	status, body := ts.do(t, http.MethodPost, "/api/dispatches/legacy", "", fiber.Map{
		"identificadorNodo": "TAG-SUR", "idReefer": "R7", "tServ": "2024-05-01T12:00:00Z", "sp": 2.5, "sw": "v0.9",
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	out := decode[dto.DispatchResponse](t, body)
	assert.Equal(t, f.surID, out.Depot.ID)
	assert.Nil(t, out.NodeID)
	assert.Equal(t, "TAG-SUR", out.NodeCode)
}

func TestListado_AlcancePorUsuario(t *testing.T) {
	ts := newTestServer(t)
	f := seedFleet(t, ts)

	for _, p := range []fiber.Map{
		{"identificadorNodo": "TAG-NORTE", "idReefer": "NORTE-1", "tServ": "2024-05-01T10:00:00Z", "sp": 1, "sw": "v1"},
		{"identificadorNodo": "TAG-NORTE", "idReefer": "NORTE-2", "tServ": "2024-05-01T11:00:00Z", "sp": 1, "sw": "v1"},
		{"identificadorNodo": "TAG-SUR", "idReefer": "SUR-1", "tServ": "2024-05-01T12:00:00Z", "sp": 1, "sw": "v1"},
	} {
		status, body := ts.do(t, http.MethodPost, "/api/dispatches/legacy", "", p)
		require.Equal(t, http.StatusCreated, status, string(body))
	}

	status, body := ts.do(t, http.MethodPost, "/api/register", "", fiber.Map{
		"email": "op@frigo.cl", "password": "operador-1", "companyId": f.companyID, "depotIds": []string{f.norteID},
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	status, body = ts.do(t, http.MethodPost, "/api/register", "", fiber.Map{
		"email": "nuevo@frigo.cl", "password": "operador-2", "companyId": f.companyID,
	})
	require.Equal(t, http.StatusCreated, status, string(body))

	t.Run("no admin ve solo sus depósitos", func(t *testing.T) {
		status, body := ts.do(t, http.MethodGet, "/api/dispatches", ts.login(t, "op@frigo.cl", "operador-1"), nil)
		require.Equal(t, http.StatusOK, status)
		list := decode[[]dto.DispatchResponse](t, body)
		require.Len(t, list, 2)
		assert.Equal(t, "NORTE-2", list[0].ReeferID)
		assert.Equal(t, "NORTE-1", list[1].ReeferID)
		for _, d := range list {
			assert.Equal(t, f.norteID, d.Depot.ID)
			assert.Equal(t, "Norte", d.Depot.Name)
		}
	})

	t.Run("no admin sin depósitos recibe lista vacía", func(t *testing.T) {
		status, body := ts.do(t, http.MethodGet, "/api/dispatches", ts.login(t, "nuevo@frigo.cl", "operador-2"), nil)
		require.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, `[]`, string(body))
	})

	t.Run("admin ve todo y la búsqueda aplica", func(t *testing.T) {
		status, body := ts.do(t, http.MethodGet, "/api/dispatches", f.adminToken, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Len(t, decode[[]dto.DispatchResponse](t, body), 3)

		status, body = ts.do(t, http.MethodGet, "/api/dispatches?search=sur", f.adminToken, nil)
		require.Equal(t, http.StatusOK, status)
		list := decode[[]dto.DispatchResponse](t, body)
		require.Len(t, list, 1)
		assert.Equal(t, "SUR-1", list[0].ReeferID)
	})

	t.Run("sin token 401", func(t *testing.T) {
		status, _ := ts.do(t, http.MethodGet, "/api/dispatches", "", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})
}

func TestCreaciones_ConflictoYReferencias(t *testing.T) {
	ts := newTestServer(t)
	f := seedFleet(t, ts)

	status, body := ts.do(t, http.MethodPost, "/api/companies", f.adminToken, fiber.Map{"name": "Frigo SA", "taxId": "otro"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, apphttp.CodeConflict, decode[dto.ErrorResponse](t, body).Code)

	status, _ = ts.do(t, http.MethodPost, "/api/depots", f.adminToken, fiber.Map{
		"name": "Fantasma", "address": "x", "lat": 0, "lon": 0,
		"companyId": "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d", "nodeIdentifier": "TAG-X",
	})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = ts.do(t, http.MethodPost, "/api/nodes", f.adminToken, fiber.Map{"externalCode": "N1", "depotId": f.surID})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = ts.do(t, http.MethodPost, "/api/register", "", fiber.Map{"email": "admin@reefet.io", "password": "otra-clave-1", "isAdmin": true})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = ts.do(t, http.MethodPost, "/api/companies", "", fiber.Map{"name": "Sin token", "taxId": "1"})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestListadosAdministrativos(t *testing.T) {
	ts := newTestServer(t)
	f := seedFleet(t, ts)

	status, body := ts.do(t, http.MethodGet, "/api/depots", f.adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []dto.RefResponse{{ID: f.norteID, Name: "Norte"}, {ID: f.surID, Name: "Sur"}}, decode[[]dto.RefResponse](t, body))

	status, body = ts.do(t, http.MethodGet, "/api/depots?search=su", f.adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []dto.RefResponse{{ID: f.surID, Name: "Sur"}}, decode[[]dto.RefResponse](t, body))

	status, body = ts.do(t, http.MethodGet, "/api/nodes", f.adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	nodes := decode[[]dto.RefResponse](t, body)
	require.Len(t, nodes, 1)
	assert.Equal(t, "N1", nodes[0].Name)

	status, body = ts.do(t, http.MethodGet, "/api/companies?search=FRIGO", f.adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []dto.RefResponse{{ID: f.companyID, Name: "Frigo SA"}}, decode[[]dto.RefResponse](t, body))
}

func TestLogin_CredencialesInvalidasMismoCuerpo(t *testing.T) {
	ts := newTestServer(t)
	seedFleet(t, ts)

	s1, b1 := ts.do(t, http.MethodPost, "/api/login", "", fiber.Map{"email": "admin@reefet.io", "password": "incorrecta"})
	s2, b2 := ts.do(t, http.MethodPost, "/api/login", "", fiber.Map{"email": "nadie@reefet.io", "password": "incorrecta"})
	assert.Equal(t, http.StatusUnauthorized, s1)
	assert.Equal(t, s1, s2)
	assert.Equal(t, string(b1), string(b2))
}

func TestMe_DevuelveClaims(t *testing.T) {
	ts := newTestServer(t)
	f := seedFleet(t, ts)

	status, body := ts.do(t, http.MethodGet, "/api/me", f.adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	claims := decode[dto.ClaimsResponse](t, body)
	assert.Equal(t, "admin@reefet.io", claims.Email)
	assert.True(t, claims.IsAdmin)
	assert.Nil(t, claims.CompanyID)
	assert.Empty(t, claims.DepotIDs)
}

func TestCrearEmpresa_SoloAdmin(t *testing.T) {
	ts := newTestServer(t)
	f := seedFleet(t, ts)

	status, body := ts.do(t, http.MethodPost, "/api/register", "", fiber.Map{
		"email": "op@frigo.cl", "password": "operador-1", "companyId": f.companyID, "depotIds": []string{f.norteID},
	})
	require.Equal(t, http.StatusCreated, status, string(body))

	status, body = ts.do(t, http.MethodPost, "/api/companies", ts.login(t, "op@frigo.cl", "operador-1"), fiber.Map{"name": "Otra SA", "taxId": "99.999.999-9"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.JSONEq(t, `{"code":"UNAUTHORIZED","message":"no autorizado"}`, string(body))

	status, body = ts.do(t, http.MethodGet, "/api/companies", f.adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]dto.RefResponse](t, body), 1, "el intento rechazado no crea la empresa")

	status, _ = ts.do(t, http.MethodPost, "/api/companies", f.adminToken, fiber.Map{"name": "Otra SA", "taxId": "99.999.999-9"})
	assert.Equal(t, http.StatusCreated, status)
}

func TestListado_BusquedaConBytesInvalidos_400(t *testing.T) {
	ts := newTestServer(t)
	f := seedFleet(t, ts)

	for _, path := range []string{"/api/dispatches?search=%FF", "/api/companies?search=a%00b"} {
		status, body := ts.do(t, http.MethodGet, path, f.adminToken, nil)
		assert.Equal(t, http.StatusBadRequest, status, path)
		assert.Equal(t, apphttp.CodeValidation, decode[dto.ErrorResponse](t, body).Code, path)
	}
}
