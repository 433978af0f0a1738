package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-dashboard-admin/internal/core/auth"
	"go-dashboard-admin/internal/domain"
	"go-dashboard-admin/internal/service"
	"go-dashboard-admin/internal/transport/http/handler"
	"go-dashboard-admin/internal/transport/http/router"
	"go-dashboard-admin/pkg/utils"
)

type fakeRepo struct {
	byID      map[string]*domain.Account
	listRows  []domain.Account
	listTotal int64
}

func newFakeRepo(accounts ...*domain.Account) *fakeRepo {
	f := &fakeRepo{byID: map[string]*domain.Account{}}
	for _, a := range accounts {
		f.byID[a.ID] = a
	}
	return f
}

func (f *fakeRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	return f.byID[id], nil
}

func (f *fakeRepo) FindByUserName(_ context.Context, userName string) (*domain.Account, error) {
	for _, a := range f.byID {
		if a.UserName == userName {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) List(_ context.Context, _ domain.AccountQuery) ([]domain.Account, int64, error) {
	return f.listRows, f.listTotal, nil
}

func (f *fakeRepo) Create(_ context.Context, a *domain.Account) (int64, error) {
	for _, e := range f.byID {
		if e.UserName == a.UserName {
			return 0, domain.ErrConflict
		}
	}
	f.byID[a.ID] = a
	return 1, nil
}

func (f *fakeRepo) Update(_ context.Context, a *domain.Account) (int64, error) {
	f.byID[a.ID] = a
	return 1, nil
}

func (f *fakeRepo) DeleteByIDs(_ context.Context, ids []string) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := f.byID[id]; ok {
			delete(f.byID, id)
			n++
		}
	}
	return n, nil
}

var testJWTer = &auth.JWTer{Secret: []byte("test-secret"), Issuer: "dashboard-admin", TTL: time.Minute}

func newTestEngine(t *testing.T, r *fakeRepo) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := service.NewAccountService(r, zap.NewNop())
	return router.NewAdminEngine(zap.NewNop(), handler.NewAccountHandler(svc), testJWTer)
}

func token(t *testing.T, uid, userName, role string) string {
	t.Helper()
	tok, err := testJWTer.Issue(uid, userName, role)
	require.NoError(t, err)
	return tok
}

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func perform(t *testing.T, e *gin.Engine, method, path, bearer string, body any) envelope {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestList_EmptyStoreReturnsLegacyQueryFailed(t *testing.T) {
	e := newTestEngine(t, newFakeRepo())
	tok := token(t, "u1", "alice", "admin")

	env := perform(t, e, http.MethodGet, "/admin/v1/dashboard-users?currentPage=1&pageSize=10", tok, nil)
	assert.Equal(t, 500, env.Code)
	assert.Equal(t, "query failed", env.Msg)
}

func TestList_Success(t *testing.T) {
	r := newFakeRepo()
	r.listRows = []domain.Account{{ID: "u1", UserName: "alice", Role: "admin"}}
	r.listTotal = 1
	e := newTestEngine(t, r)

	env := perform(t, e, http.MethodGet, "/admin/v1/dashboard-users?currentPage=1&pageSize=10",
		token(t, "u1", "alice", "admin"), nil)
	assert.Equal(t, 0, env.Code)
	assert.Equal(t, "query success", env.Msg)

	var page domain.AccountPage
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.EqualValues(t, 1, page.Total)
	require.Len(t, page.List, 1)
	assert.Equal(t, "alice", page.List[0].UserName)
}

func TestList_NonPositivePaging(t *testing.T) {
	e := newTestEngine(t, newFakeRepo())

	env := perform(t, e, http.MethodGet, "/admin/v1/dashboard-users?currentPage=0&pageSize=10",
		token(t, "u1", "alice", "admin"), nil)
	assert.Equal(t, 400, env.Code)
}

func TestDetail_NotFound(t *testing.T) {
	e := newTestEngine(t, newFakeRepo())

	env := perform(t, e, http.MethodGet, "/admin/v1/dashboard-users/missing",
		token(t, "u1", "alice", "admin"), nil)
	assert.Equal(t, 404, env.Code)
}

func TestDetail_NeverExposesHash(t *testing.T) {
	r := newFakeRepo(&domain.Account{
		ID: "u1", UserName: "alice", Role: "admin",
		PasswordHash: utils.Sha512Hex("pw"),
	})
	e := newTestEngine(t, r)

	env := perform(t, e, http.MethodGet, "/admin/v1/dashboard-users/u1",
		token(t, "u1", "alice", "admin"), nil)
	assert.Equal(t, 0, env.Code)
	assert.NotContains(t, string(env.Data), utils.Sha512Hex("pw"))
}

func TestCreate(t *testing.T) {
	e := newTestEngine(t, newFakeRepo())

	env := perform(t, e, http.MethodPost, "/admin/v1/dashboard-users",
		token(t, "u1", "alice", "admin"),
		domain.AccountInput{UserName: "bob", Password: "pw", Role: "viewer", Enabled: true})
	assert.Equal(t, 0, env.Code)
	assert.Equal(t, "create success", env.Msg)
	assert.Equal(t, "1", string(env.Data))
}

func TestCreate_ViewerForbidden(t *testing.T) {
	e := newTestEngine(t, newFakeRepo())

	env := perform(t, e, http.MethodPost, "/admin/v1/dashboard-users",
		token(t, "u9", "eve", "viewer"),
		domain.AccountInput{UserName: "bob", Password: "pw", Role: "viewer"})
	assert.Equal(t, 403, env.Code)
}

func TestMissingToken(t *testing.T) {
	e := newTestEngine(t, newFakeRepo())

	env := perform(t, e, http.MethodGet, "/admin/v1/dashboard-users?currentPage=1&pageSize=10", "", nil)
	assert.Equal(t, 401, env.Code)
}

func TestChangePassword_Denied(t *testing.T) {
	r := newFakeRepo(&domain.Account{ID: "u1", UserName: "alice", Role: "admin"})
	e := newTestEngine(t, r)

	env := perform(t, e, http.MethodPut, "/admin/v1/dashboard-users/u1/password",
		token(t, "u2", "carol", "admin"),
		domain.AccountInput{UserName: "dave", Password: "new-pw"})
	assert.Equal(t, 403, env.Code)
	assert.Equal(t, "modify password denied", env.Msg)
}

func TestChangePassword_IDMatch(t *testing.T) {
	r := newFakeRepo(&domain.Account{ID: "u1", UserName: "alice", Role: "admin"})
	e := newTestEngine(t, r)

	env := perform(t, e, http.MethodPut, "/admin/v1/dashboard-users/u1/password",
		token(t, "u1", "alice", "admin"),
		domain.AccountInput{UserName: "bob", Password: "new-pw"})
	assert.Equal(t, 0, env.Code)
	assert.Equal(t, utils.Sha512Hex("new-pw"), r.byID["u1"].PasswordHash)
}

func TestDeleteBatch(t *testing.T) {
	r := newFakeRepo(&domain.Account{ID: "u1", UserName: "alice", Role: "admin"})
	e := newTestEngine(t, r)
	tok := token(t, "u9", "root", "admin")

	env := perform(t, e, http.MethodDelete, "/admin/v1/dashboard-users/batch", tok, []string{"u1", "u1"})
	assert.Equal(t, 0, env.Code)
	assert.Equal(t, "1", string(env.Data))

	env = perform(t, e, http.MethodDelete, "/admin/v1/dashboard-users/batch", tok, []string{})
	assert.Equal(t, 400, env.Code)
}
