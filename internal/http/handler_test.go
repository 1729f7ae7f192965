package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/freightdesk/contracts-service/internal/auth"
	"github.com/freightdesk/contracts-service/internal/config"
	"github.com/freightdesk/contracts-service/internal/excel"
	"github.com/freightdesk/contracts-service/internal/http/middleware"
	"github.com/freightdesk/contracts-service/internal/model"
	"github.com/freightdesk/contracts-service/internal/pdf"
	"github.com/freightdesk/contracts-service/internal/render"
	"github.com/freightdesk/contracts-service/internal/repository"
	"github.com/freightdesk/contracts-service/internal/service"
	"github.com/freightdesk/contracts-service/internal/storage"
)

const testSecret = "test-secret"

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	client model.Client
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.Client{},
		&model.Contract{},
		&model.VolumetricBasis{},
		&model.ContractParty{},
		&model.OdaRule{},
		&model.NonMetroRule{},
		&model.RegionSurcharge{},
		&model.VasCharge{},
		&model.InsuranceRule{},
		&model.IncentiveSlab{},
		&model.ContractAnnexure{},
		&model.MetroCity{},
		&model.SpecialHandlingBand{},
		&model.PickupCharge{},
		&model.ZoneRate{},
		&model.Consignment{},
		&model.ConsignmentStatus{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Exec(`CREATE UNIQUE INDEX uq_contracts_client_code ON contracts (client_id, contract_code)`).Error; err != nil {
		t.Fatalf("unique index: %v", err)
	}

	client := model.Client{ID: uuid.New(), ClientCode: "CL001", Name: "Acme Retail Pvt Ltd"}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}

	cfg := &config.Config{
		Timeouts: config.TimeoutConfig{Write: 5 * time.Second, Upstream: 5 * time.Second},
	}
	renderer, err := render.NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}

	contractRepo := repository.NewContractRepository(db)
	clientRepo := repository.NewClientRepository(db)
	consignmentRepo := repository.NewConsignmentRepository(db)
	store := storage.NewLocalStore(t.TempDir(), "")

	contractService := service.NewContractService(contractRepo, clientRepo, renderer, pdf.NewGenerator(), excel.NewGenerator(), store, cfg)
	clientService := service.NewClientService(clientRepo)
	consignmentService := service.NewConsignmentService(consignmentRepo, clientRepo)

	handler := NewHandler(contractService, clientService, consignmentService, nil, zerolog.Nop())
	authMiddleware := middleware.Auth(auth.NewParser(testSecret))
	router := NewRouter(handler, authMiddleware, "test")

	return &testServer{router: router, db: db, client: client}
}

func signToken(t *testing.T, roles []string, clientID string) string {
	t.Helper()
	claims := auth.Claims{
		UserID:   uuid.NewString(),
		ClientID: clientID,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func (s *testServer) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func TestHealthzIsOpen(t *testing.T) {
	srv := newTestServer(t)
	rec := srv.do(t, http.MethodGet, "/healthz", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz = %d", rec.Code)
	}
}

func TestMissingTokenIsUnauthorized(t *testing.T) {
	srv := newTestServer(t)
	rec := srv.do(t, http.MethodGet, "/contracts", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}

	rec = srv.do(t, http.MethodGet, "/contracts", "not-a-token", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token status = %d", rec.Code)
	}
}

func TestContractLifecycle(t *testing.T) {
	srv := newTestServer(t)
	ops := signToken(t, []string{model.RoleOps}, "")

	body := `{
		"client_id": "` + srv.client.ID.String() + `",
		"contract_code": "FD/2025-26/001",
		"oda": [{"pincode_prefix": "ODA1", "rate_per_kg": 2.5, "min_charge": 500}]
	}`
	rec := srv.do(t, http.MethodPost, "/contracts", ops, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create = %d: %s", rec.Code, rec.Body.String())
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = srv.do(t, http.MethodGet, "/contracts/"+created.ID, ops, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"oda_code":"ODA1"`) {
		t.Fatalf("projection missing canonicalized oda rule: %s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"parties":[]`) {
		t.Fatalf("empty sections should marshal as [], got: %s", rec.Body.String())
	}

	rec = srv.do(t, http.MethodGet, "/contracts/"+created.ID+"/document", ops, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("document = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("document content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "₹2.5/kg") {
		t.Fatalf("document missing oda rate")
	}

	// Duplicate code for the same client conflicts.
	rec = srv.do(t, http.MethodPost, "/contracts", ops, body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate = %d", rec.Code)
	}
}

func TestContractNotFoundAndBadID(t *testing.T) {
	srv := newTestServer(t)
	ops := signToken(t, []string{model.RoleOps}, "")

	rec := srv.do(t, http.MethodGet, "/contracts/"+uuid.NewString(), ops, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown id = %d", rec.Code)
	}
	rec = srv.do(t, http.MethodGet, "/contracts/not-a-uuid", ops, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad id = %d", rec.Code)
	}
}

func TestCreateContractValidationStatus(t *testing.T) {
	srv := newTestServer(t)
	ops := signToken(t, []string{model.RoleOps}, "")

	body := `{
		"client_id": "` + srv.client.ID.String() + `",
		"contract_code": "FD/2025-26/002",
		"parties": [{"party_role": "VENDOR", "legal_name": "A"}]
	}`
	rec := srv.do(t, http.MethodPost, "/contracts", ops, body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad party role = %d", rec.Code)
	}
}

func TestClientRoleCannotWrite(t *testing.T) {
	srv := newTestServer(t)
	clientTok := signToken(t, []string{model.RoleClient}, srv.client.ID.String())

	body := `{"client_id": "` + srv.client.ID.String() + `", "contract_code": "X"}`
	rec := srv.do(t, http.MethodPost, "/contracts", clientTok, body)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("client create = %d", rec.Code)
	}
}

func TestClientRoleIsTenantScoped(t *testing.T) {
	srv := newTestServer(t)
	ops := signToken(t, []string{model.RoleOps}, "")

	other := model.Client{ID: uuid.New(), ClientCode: "CL002", Name: "Beta Traders"}
	if err := srv.db.Create(&other).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	body := `{"client_id": "` + other.ID.String() + `", "contract_code": "FD/2025-26/003"}`
	rec := srv.do(t, http.MethodPost, "/contracts", ops, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create = %d", rec.Code)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	clientTok := signToken(t, []string{model.RoleClient}, srv.client.ID.String())
	rec = srv.do(t, http.MethodGet, "/contracts/"+created.ID, clientTok, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("foreign contract = %d", rec.Code)
	}
}

func TestClientLifecycle(t *testing.T) {
	srv := newTestServer(t)
	ops := signToken(t, []string{model.RoleOps}, "")

	// CL001 is already seeded, so the registry hands out the next code.
	rec := srv.do(t, http.MethodPost, "/clients", ops, `{"name": "Beta Traders", "gstin": "27AABCB1234C1Z5"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create = %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID         string `json:"id"`
		ClientCode string `json:"client_code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ClientCode != "CL002" {
		t.Fatalf("client code = %q, want CL002", created.ClientCode)
	}

	rec = srv.do(t, http.MethodGet, "/clients/by-code/CL002", ops, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get by code = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"id":"`+created.ID+`"`) {
		t.Fatalf("by-code lookup returned wrong client: %s", rec.Body.String())
	}

	rec = srv.do(t, http.MethodGet, "/clients/by-code/CL999", ops, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown code = %d", rec.Code)
	}
}

func TestClientRoleClientRegistryAccess(t *testing.T) {
	srv := newTestServer(t)
	clientTok := signToken(t, []string{model.RoleClient}, srv.client.ID.String())

	rec := srv.do(t, http.MethodPost, "/clients", clientTok, `{"name": "Sneaky Ltd"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("client create = %d", rec.Code)
	}

	// Own record is visible by code, anyone else's is not.
	rec = srv.do(t, http.MethodGet, "/clients/by-code/"+srv.client.ClientCode, clientTok, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("own record = %d", rec.Code)
	}
	other := model.Client{ID: uuid.New(), ClientCode: "CL777", Name: "Gamma Logistics"}
	if err := srv.db.Create(&other).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	rec = srv.do(t, http.MethodGet, "/clients/by-code/CL777", clientTok, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("foreign record = %d", rec.Code)
	}
}

func TestConsignmentFlow(t *testing.T) {
	srv := newTestServer(t)
	ops := signToken(t, []string{model.RoleOps}, "")

	body := `{
		"cn_number": "CN1001",
		"client_id": "` + srv.client.ID.String() + `",
		"shipper_name": "FreightDesk Warehouse",
		"consignee_name": "Acme Retail Pvt Ltd",
		"pieces": 2,
		"actual_weight_kg": 45
	}`
	rec := srv.do(t, http.MethodPost, "/consignments", ops, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create = %d: %s", rec.Code, rec.Body.String())
	}

	rec = srv.do(t, http.MethodPost, "/consignments/CN1001/status", ops, `{"status_code": "IN_TRANSIT"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("append status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = srv.do(t, http.MethodGet, "/consignments/CN1001", ops, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"current_status_code":"IN_TRANSIT"`) {
		t.Fatalf("status snapshot missing: %s", rec.Body.String())
	}
}
