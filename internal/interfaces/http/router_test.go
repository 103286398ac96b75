package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/suministros-api/internal/application/auth"
	"github.com/jhoicas/suministros-api/internal/application/dto"
	"github.com/jhoicas/suministros-api/internal/application/inventory"
	"github.com/jhoicas/suministros-api/internal/application/supply"
	"github.com/jhoicas/suministros-api/internal/application/usecase"
	"github.com/jhoicas/suministros-api/internal/domain/entity"
	"github.com/jhoicas/suministros-api/internal/infrastructure/memory"
	"github.com/jhoicas/suministros-api/internal/infrastructure/notify"
	"github.com/jhoicas/suministros-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/suministros-api/internal/interfaces/http"
	"github.com/jhoicas/suministros-api/pkg/logger"
	pkgjwt "github.com/jhoicas/suministros-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// API completa sobre el store en memoria
// ──────────────────────────────────────────────────────────────────────────────

const (
	apiCategoryID = "00000000-0000-0000-0000-0000000000c1"
	apiManagerID  = "00000000-0000-0000-0000-0000000000a1"
	apiUserID     = "00000000-0000-0000-0000-0000000000b1"
)

type testAPI struct {
	app     *fiber.App
	manager string
	user    string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	ctx := context.Background()
	log := logger.Nop()
	store := memory.NewStore()
	repos := store.Repositories()

	now := time.Now()
	require.NoError(t, repos.Organizations.Create(ctx, &entity.Organization{ID: testOrganizationID, Name: "Soporte", CreatedAt: now}))
	require.NoError(t, repos.Categories.Create(ctx, &entity.Category{ID: apiCategoryID, OrganizationID: testOrganizationID, Name: "Herramientas", CreatedAt: now}))
	for id, role := range map[string]string{apiManagerID: entity.RoleManager, apiUserID: entity.RoleUser} {
		require.NoError(t, repos.Users.Create(ctx, &entity.User{
			ID: id, OrganizationID: testOrganizationID, Email: id + "@test.local",
			Role: role, Status: entity.UserActive, CreatedAt: now, UpdatedAt: now,
		}))
	}

	notifier := notify.NewLogNotifier(log)
	pool := inventory.NewInstancePool(log)
	inbound := inventory.NewInboundLedger(store, repos, pool, nil, log)
	outbound := inventory.NewOutboundLedger(repos, pool, log)
	returns := supply.NewReturnUseCase(store, repos, inbound, nil, notifier, log)
	requests := supply.NewRequestUseCase(store, repos, outbound, returns, notifier, log)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:         auth.NewAuthUseCase(repos.Users, repos.Organizations, auth.JWTConfig{Secret: testJWTSecret, Issuer: testIssuer, ExpMinutes: testExpMin}),
		OrganizationUC: usecase.NewOrganizationUseCase(repos.Organizations),
		CategoryUC:     usecase.NewCategoryUseCase(repos.Categories, repos.Organizations),
		ItemUC:         inventory.NewItemUseCase(store, repos, log),
		PurchaseUC:     inventory.NewPurchaseUseCase(store, repos, inbound, pool, nil, log),
		Inbound:        inbound,
		Outbound:       outbound,
		RequestUC:      requests,
		ReturnUC:       returns,
		ReceiptUC:      supply.NewReceiptUseCase(requests, repos, pdf.NewReceiptGenerator()),
		ExportUC:       supply.NewExportUseCase(repos),
		JWTSecret:      testJWTSecret,
	})

	token := func(userID, role string) string {
		tok, err := pkgjwt.Generate(testJWTSecret, userID, testOrganizationID, role, testIssuer, testExpMin)
		require.NoError(t, err)
		return "Bearer " + tok
	}
	return &testAPI{app: app, manager: token(apiManagerID, entity.RoleManager), user: token(apiUserID, entity.RoleUser)}
}

// call ejecuta la petición y decodifica la respuesta JSON en out (si no es nil).
func (a *testAPI) call(t *testing.T, method, path, auth string, body interface{}, out interface{}) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (a *testAPI) purchase(t *testing.T, name string, qty int64) dto.RegisterItemResponse {
	t.Helper()
	var reg dto.RegisterItemResponse
	status := a.call(t, http.MethodPost, "/api/purchases", a.manager, dto.RegisterItemRequest{
		Kind: entity.InboundPurchase, CategoryID: apiCategoryID, Name: name, Quantity: qty,
	}, &reg)
	require.Equal(t, http.StatusCreated, status)
	return reg
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_CompraSolicitudYAprobacionDescuentanStock(t *testing.T) {
	api := newTestAPI(t)
	reg := api.purchase(t, "Taladro", 3)

	var req dto.SupplyRequestResponse
	status := api.call(t, http.MethodPost, "/api/supply-requests", api.user, dto.CreateSupplyRequest{
		ItemID: reg.ItemID, Quantity: 2, Purpose: "obra",
	}, &req)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, entity.RequestRequested, req.Status)

	status = api.call(t, http.MethodPatch, "/api/supply-requests/"+req.ID+"/status", api.manager,
		dto.UpdateStatusRequest{Status: entity.RequestApproved}, &req)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, entity.RequestApproved, req.Status)

	var item dto.ItemResponse
	require.Equal(t, http.StatusOK, api.call(t, http.MethodGet, "/api/items/"+reg.ItemID, api.user, nil, &item))
	assert.Equal(t, int64(1), item.TotalQuantity)
	assert.Equal(t, int64(1), item.AvailableQuantity)

	var out []dto.OutboundResponse
	require.Equal(t, http.StatusOK, api.call(t, http.MethodGet, "/api/inventory/out/me", api.user, nil, &out))
	require.Len(t, out, 1)
	assert.Equal(t, int64(2), out[0].Quantity)
}

func TestAPI_UsuarioNoPuedeAprobar(t *testing.T) {
	api := newTestAPI(t)
	reg := api.purchase(t, "Escalera", 1)

	var req dto.SupplyRequestResponse
	require.Equal(t, http.StatusCreated, api.call(t, http.MethodPost, "/api/supply-requests", api.user,
		dto.CreateSupplyRequest{ItemID: reg.ItemID, Quantity: 1}, &req))

	var errBody dto.ErrorResponse
	status := api.call(t, http.MethodPatch, "/api/supply-requests/"+req.ID+"/status", api.user,
		dto.UpdateStatusRequest{Status: entity.RequestApproved}, &errBody)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", errBody.Code)
}

func TestAPI_SegundaAprobacionSinStockRetorna409(t *testing.T) {
	api := newTestAPI(t)
	reg := api.purchase(t, "Cinta", 3)

	ids := make([]string, 0, 2)
	for i := 0; i < 2; i++ {
		var req dto.SupplyRequestResponse
		require.Equal(t, http.StatusCreated, api.call(t, http.MethodPost, "/api/supply-requests", api.user,
			dto.CreateSupplyRequest{ItemID: reg.ItemID, Quantity: 2}, &req))
		ids = append(ids, req.ID)
	}

	require.Equal(t, http.StatusOK, api.call(t, http.MethodPatch, "/api/supply-requests/"+ids[0]+"/status", api.manager,
		dto.UpdateStatusRequest{Status: entity.RequestApproved}, nil))

	var errBody dto.ErrorResponse
	status := api.call(t, http.MethodPatch, "/api/supply-requests/"+ids[1]+"/status", api.manager,
		dto.UpdateStatusRequest{Status: entity.RequestApproved}, &errBody)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", errBody.Code)

	var item dto.ItemResponse
	require.Equal(t, http.StatusOK, api.call(t, http.MethodGet, "/api/items/"+reg.ItemID, api.manager, nil, &item))
	assert.Equal(t, int64(1), item.AvailableQuantity, "la aprobación fallida no debe dejar cambios parciales")
}

func TestAPI_ArticuloInexistenteRetorna404(t *testing.T) {
	api := newTestAPI(t)
	var errBody dto.ErrorResponse
	status := api.call(t, http.MethodGet, "/api/items/no-existe", api.user, nil, &errBody)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "ITEM_NOT_FOUND", errBody.Code)
}

func TestAPI_EntradaManualRechazaTipoCompra(t *testing.T) {
	api := newTestAPI(t)
	reg := api.purchase(t, "Guantes", 5)

	var errBody dto.ErrorResponse
	status := api.call(t, http.MethodPost, "/api/inventory/in", api.manager, dto.InboundRequest{
		ItemID: reg.ItemID, Quantity: 1, Kind: entity.InboundPurchase,
	}, &errBody)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_INBOUND_TYPE", errBody.Code)
}

func TestAPI_ExportLibroDesconocidoRetorna404(t *testing.T) {
	api := newTestAPI(t)
	status := api.call(t, http.MethodGet, "/api/export/facturas", api.manager, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAPI_ComprobantePDFSoloTrasDecision(t *testing.T) {
	api := newTestAPI(t)
	reg := api.purchase(t, "Escalera", 2)

	var req dto.SupplyRequestResponse
	require.Equal(t, http.StatusCreated, api.call(t, http.MethodPost, "/api/supply-requests", api.user,
		dto.CreateSupplyRequest{ItemID: reg.ItemID, Quantity: 1, Purpose: "mantenimiento"}, &req))

	var errResp dto.ErrorResponse
	status := api.call(t, http.MethodGet, "/api/supply-requests/"+req.ID+"/receipt", api.user, nil, &errResp)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_REQUEST_STATUS", errResp.Code)

	require.Equal(t, http.StatusOK, api.call(t, http.MethodPatch, "/api/supply-requests/"+req.ID+"/status", api.manager,
		dto.UpdateStatusRequest{Status: entity.RequestApproved}, nil))

	httpReq := httptest.NewRequest(http.MethodGet, "/api/supply-requests/"+req.ID+"/receipt", nil)
	httpReq.Header.Set("Authorization", api.user)
	resp, err := api.app.Test(httpReq, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
}

func TestAPI_OrganizacionConAdminYAltaDeMiembros(t *testing.T) {
	api := newTestAPI(t)

	var org dto.OrganizationResponse
	status := api.call(t, http.MethodPost, "/api/organizations", "", dto.CreateOrganizationRequest{
		Name:  "Taller",
		Admin: &dto.RegisterRequest{Email: "jefa@taller.local", Password: "clave-segura"},
	}, &org)
	require.Equal(t, http.StatusCreated, status)
	require.NotNil(t, org.Admin)
	assert.Equal(t, entity.RoleAdmin, org.Admin.Role)

	// El registro público no concede roles elevados.
	status = api.call(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		OrganizationID: org.ID, Email: "intruso@taller.local", Password: "clave-segura", Role: entity.RoleAdmin,
	}, nil)
	assert.Equal(t, http.StatusForbidden, status)

	var login dto.LoginResponse
	status = api.call(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email: "jefa@taller.local", Password: "clave-segura",
	}, &login)
	require.Equal(t, http.StatusOK, status)

	var member dto.UserResponse
	status = api.call(t, http.MethodPost, "/api/users", "Bearer "+login.Token, dto.RegisterRequest{
		Email: "gestor@taller.local", Password: "clave-segura", Role: entity.RoleManager,
	}, &member)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, org.ID, member.OrganizationID)
	assert.Equal(t, entity.RoleManager, member.Role)

	status = api.call(t, http.MethodPost, "/api/users", api.manager, dto.RegisterRequest{
		Email: "otro@taller.local", Password: "clave-segura",
	}, nil)
	assert.Equal(t, http.StatusForbidden, status)
}
