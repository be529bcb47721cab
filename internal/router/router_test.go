package router

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"shopadmin/internal/auth"
	"shopadmin/internal/config"
	"shopadmin/internal/db"
	"shopadmin/internal/handler"
	"shopadmin/internal/model"
	"shopadmin/internal/mq"
	"shopadmin/internal/repository"
	"shopadmin/internal/service"
	"shopadmin/internal/testutil"
)

type memoryKV struct {
	mu         sync.Mutex
	data       map[string][]byte
	failWrites bool
}

func (m *memoryKV) Exists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok, nil
}

func (m *memoryKV) SetStrict(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return errors.New("redis: connection refused")
	}
	m.data[key] = value
	return nil
}

type serverSetup struct {
	requireAdmin bool
	kv           *memoryKV
	categoryRepo func(gdb *gorm.DB) repository.CatalogRepository[model.ProductCategory]
}

func newServer(t *testing.T, requireAdmin bool) *echo.Echo {
	t.Helper()
	return newServerWith(t, serverSetup{requireAdmin: requireAdmin})
}

func newServerWith(t *testing.T, setup serverSetup) *echo.Echo {
	t.Helper()
	gdb := testutil.NewDB(t)
	cfg := &config.Config{RequireAdminAuth: setup.requireAdmin}
	if setup.kv == nil {
		setup.kv = &memoryKV{data: map[string][]byte{}}
	}
	if setup.categoryRepo == nil {
		setup.categoryRepo = repository.NewCatalogRepository[model.ProductCategory]
	}

	tokens := auth.NewJWTService("test-secret", "shopadmin", "shopadmin-clients")
	revoked := auth.NewTokenStore(setup.kv)
	users := repository.NewUserRepository(gdb)
	tx := repository.NewTransactor(gdb)
	events := mq.NewPublisher(nil)

	authSvc := service.NewAuthService(service.AuthDeps{
		Users:       users,
		Tx:          tx,
		Hasher:      auth.NewBcryptHasher(bcrypt.MinCost),
		Tokens:      tokens,
		Revoked:     revoked,
		Events:      events,
		PhoneRegion: "US",
	})
	userSvc := service.NewUserService(users, tx, db.NewExecutionStrategy(0), events)

	categories := service.NewCatalogService[model.ProductCategory, *model.ProductCategory](
		"product-category", setup.categoryRepo(gdb), nil)
	discounts := service.NewCatalogService[model.ProductDiscount, *model.ProductDiscount](
		"product-discount", repository.NewCatalogRepository[model.ProductDiscount](gdb), nil)
	inventories := service.NewCatalogService[model.ProductInventory, *model.ProductInventory](
		"product-inventory", repository.NewCatalogRepository[model.ProductInventory](gdb), nil)

	e := echo.New()
	e.Logger.SetOutput(io.Discard)
	Register(e, cfg, tokens, revoked, Handlers{
		Auth:        handler.NewAuthHandler(authSvc),
		Users:       handler.NewUserHandler(userSvc),
		Categories:  handler.NewCategoryHandler(categories),
		Discounts:   handler.NewDiscountHandler(discounts),
		Inventories: handler.NewInventoryHandler(inventories),
	})
	return e
}

func do(t *testing.T, e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
}

func register(t *testing.T, e *echo.Echo, username string, admin bool) service.UserProfile {
	t.Helper()
	body := `{"username":"` + username + `","password":"s3cret!","first_name":"F","last_name":"L","isAdmin":` + strconv.FormatBool(admin) + `}`
	rec := do(t, e, http.MethodPost, "/api/users/register", "", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var p service.UserProfile
	decode(t, rec, &p)
	return p
}

func login(t *testing.T, e *echo.Echo, username string) string {
	t.Helper()
	rec := do(t, e, http.MethodPost, "/api/users/login", "", `{"username":"`+username+`","password":"s3cret!"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res service.LoginResult
	decode(t, rec, &res)
	return res.Token
}

func TestHealthz(t *testing.T) {
	e := newServer(t, true)
	rec := do(t, e, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestUsers_RegisterAndLogin(t *testing.T) {
	e := newServer(t, true)

	profile := register(t, e, "alice", false)
	assert.Equal(t, []string{"Visitor"}, profile.Roles)

	rec := do(t, e, http.MethodPost, "/api/users/register", "", `{"username":"alice","password":"s3cret!","first_name":"F","last_name":"L"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "USERNAME_TAKEN")

	rec = do(t, e, http.MethodPost, "/api/users/register", "", `{"username":"bob","password":"123"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, e, http.MethodPost, "/api/users/login", "", `{"username":"alice","password":"s3cret!"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var res map[string]interface{}
	decode(t, rec, &res)
	assert.NotEmpty(t, res["token"])
	user := res["user"].(map[string]interface{})
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "F", user["firstName"])
	assert.Equal(t, []interface{}{"Visitor"}, user["roles"])
	assert.NotContains(t, rec.Body.String(), "password")

	wrongPassword := do(t, e, http.MethodPost, "/api/users/login", "", `{"username":"alice","password":"nope"}`)
	unknownUser := do(t, e, http.MethodPost, "/api/users/login", "", `{"username":"ghost","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.JSONEq(t, wrongPassword.Body.String(), unknownUser.Body.String())
}

func TestUsers_Logout(t *testing.T) {
	e := newServer(t, true)
	register(t, e, "root", true)
	token := login(t, e, "root")

	assert.Equal(t, http.StatusUnauthorized, do(t, e, http.MethodPost, "/api/users/logout", "", "").Code)
	assert.Equal(t, http.StatusOK, do(t, e, http.MethodGet, "/api/users/admins", token, "").Code)

	require.Equal(t, http.StatusOK, do(t, e, http.MethodPost, "/api/users/logout", token, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, e, http.MethodGet, "/api/users/admins", token, "").Code)
}

func TestUsers_LogoutFailsWhenRevocationCannotBeStored(t *testing.T) {
	kv := &memoryKV{data: map[string][]byte{}, failWrites: true}
	e := newServerWith(t, serverSetup{requireAdmin: true, kv: kv})
	register(t, e, "root", true)
	token := login(t, e, "root")

	rec := do(t, e, http.MethodPost, "/api/users/logout", token, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "logged out")
}

func TestUsers_AdminEndpoints(t *testing.T) {
	e := newServer(t, true)
	admin := register(t, e, "root", true)
	adminToken := login(t, e, "root")

	rec := do(t, e, http.MethodGet, "/api/users/visitors", adminToken, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No visitors found")

	visitor := register(t, e, "alice", false)
	visitorToken := login(t, e, "alice")

	assert.Equal(t, http.StatusUnauthorized, do(t, e, http.MethodGet, "/api/users/visitors", "", "").Code)
	assert.Equal(t, http.StatusForbidden, do(t, e, http.MethodGet, "/api/users/visitors", visitorToken, "").Code)

	rec = do(t, e, http.MethodGet, "/api/users/visitors", adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var visitors []map[string]interface{}
	decode(t, rec, &visitors)
	require.Len(t, visitors, 1)
	assert.Equal(t, "alice", visitors[0]["username"])
	assert.Contains(t, visitors[0], "created_at")

	rec = do(t, e, http.MethodDelete, "/api/users/visitor/"+itoa(admin.ID), adminToken, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_A_VISITOR")

	rec = do(t, e, http.MethodDelete, "/api/users/visitor/"+itoa(visitor.ID), adminToken, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, e, http.MethodDelete, "/api/users/visitor/"+itoa(visitor.ID), adminToken, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "USER_NOT_FOUND")

	assert.Equal(t, http.StatusBadRequest, do(t, e, http.MethodDelete, "/api/users/visitor/abc", adminToken, "").Code)
}

func TestCatalog_CategoryLifecycle(t *testing.T) {
	e := newServer(t, true)
	register(t, e, "root", true)
	register(t, e, "alice", false)
	adminToken := login(t, e, "root")
	visitorToken := login(t, e, "alice")

	rec := do(t, e, http.MethodGet, "/api/product-categories/list", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	body := `{"id":77,"name":"Shoes","desc":"Footwear"}`
	assert.Equal(t, http.StatusUnauthorized, do(t, e, http.MethodPost, "/api/product-categories/create", "", body).Code)
	assert.Equal(t, http.StatusForbidden, do(t, e, http.MethodPost, "/api/product-categories/create", visitorToken, body).Code)

	rec = do(t, e, http.MethodPost, "/api/product-categories/create", adminToken, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created model.ProductCategory
	decode(t, rec, &created)
	assert.Equal(t, uint(1), created.ID)

	rec = do(t, e, http.MethodPost, "/api/product-categories/create", adminToken, `{"desc":"nameless"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, e, http.MethodPut, "/api/product-categories/update/1", adminToken, `{"id":2,"name":"Boots"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "ID_MISMATCH")

	rec = do(t, e, http.MethodPut, "/api/product-categories/update/9", adminToken, `{"id":9,"name":"Boots"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, e, http.MethodPut, "/api/product-categories/update/1", adminToken, `{"id":1,"name":"Boots","desc":"Leather"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, e, http.MethodGet, "/api/product-categories/details/1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got model.ProductCategory
	decode(t, rec, &got)
	assert.Equal(t, "Boots", got.Name)
	assert.Equal(t, "Leather", got.Desc)

	assert.Equal(t, http.StatusNoContent, do(t, e, http.MethodDelete, "/api/product-categories/delete/1", adminToken, "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, e, http.MethodGet, "/api/product-categories/details/1", "", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, e, http.MethodDelete, "/api/product-categories/delete/1", adminToken, "").Code)

	rec = do(t, e, http.MethodPut, "/api/product-categories/update/1", adminToken, `{"id":1,"name":"Again"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "RECORD_DELETED")
}

func TestCatalog_DiscountAndInventoryRoutes(t *testing.T) {
	e := newServer(t, true)
	register(t, e, "root", true)
	token := login(t, e, "root")

	rec := do(t, e, http.MethodPost, "/api/product-discounts/Add-discount", token, `{"name":"Spring","discount_percent":"150"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, e, http.MethodPost, "/api/product-discounts/Add-discount", token, `{"name":"Spring","discount_percent":"12.5"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, http.StatusOK, do(t, e, http.MethodGet, "/api/product-discounts/Discount/1", "", "").Code)
	assert.Equal(t, http.StatusOK, do(t, e, http.MethodGet, "/api/product-discounts/list-discount", "", "").Code)

	rec = do(t, e, http.MethodPost, "/api/product-inventories/create-inventory", token, `{"quantity":-1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, e, http.MethodPost, "/api/product-inventories/create-inventory", token, `{"quantity":3}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, http.StatusNoContent, do(t, e, http.MethodPut, "/api/product-inventories/update-inventory/1", token, `{"id":1,"quantity":8}`).Code)
	assert.Equal(t, http.StatusOK, do(t, e, http.MethodGet, "/api/product-inventories/inventory-details/1", "", "").Code)
	assert.Equal(t, http.StatusOK, do(t, e, http.MethodGet, "/api/product-inventories/inventory-list", "", "").Code)
	assert.Equal(t, http.StatusNoContent, do(t, e, http.MethodDelete, "/api/product-inventories/delete-inventory/1", token, "").Code)
}

func TestAdminGuardCanBeDisabled(t *testing.T) {
	e := newServer(t, false)

	rec := do(t, e, http.MethodPost, "/api/product-categories/create", "", `{"name":"Open"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	rec = do(t, e, http.MethodGet, "/api/users/admins", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No administrators found")
}

func TestCatalog_UpdateRacingDeleteIsConflict(t *testing.T) {
	e := newServerWith(t, serverSetup{
		requireAdmin: false,
		categoryRepo: func(gdb *gorm.DB) repository.CatalogRepository[model.ProductCategory] {
			return testutil.NewVanishingCatalogRepo[model.ProductCategory](gdb)
		},
	})

	require.Equal(t, http.StatusCreated, do(t, e, http.MethodPost, "/api/product-categories/create", "", `{"name":"Shoes"}`).Code)

	rec := do(t, e, http.MethodPut, "/api/product-categories/update/1", "", `{"id":1,"name":"Boots"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "CONFLICT")
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
