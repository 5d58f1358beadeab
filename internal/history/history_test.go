package history

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"Formulary/internal/auth"
	"Formulary/internal/calc"
	"Formulary/internal/repo"
)

type fixture struct {
	router *mux.Router
	env    *auth.Env
	ada    int
	bob    int
}

func setup(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db, r, err := repo.Open(ctx, "sqlite", filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ada, err := r.CreateUser(ctx, "ada", "ada@example.com", "x")
	require.NoError(t, err)
	bob, err := r.CreateUser(ctx, "bob", "bob@example.com", "x")
	require.NoError(t, err)

	log := zaptest.NewLogger(t)
	env := &auth.Env{Key: []byte("k"), Repo: r, Log: log}
	h := NewHandler(r, log)
	h.Now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }

	router := mux.NewRouter()
	user := router.PathPrefix("/api/user").Subrouter()
	user.Use(env.Middleware)
	h.Register(user, calc.NewHandler(calc.Default, log))
	return &fixture{router: router, env: env, ada: ada, bob: bob}
}

func (f *fixture) do(t *testing.T, user int, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if user != 0 {
		token, err := f.env.NewToken(user, fmt.Sprint("user", user), time.Now())
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestRecordListGetDelete(t *testing.T) {
	f := setup(t)

	rec := f.do(t, f.ada, http.MethodPost, "/api/user/tools/gcf/calc", `{"values":{"numbers":"12 18"}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = f.do(t, f.ada, http.MethodPost, "/api/user/tools/lcm/calc", `{"values":{"numbers":"4 6"}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// failed calculations are not stored
	rec = f.do(t, f.ada, http.MethodPost, "/api/user/tools/gcf/calc", `{"values":{"numbers":"x"}}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = f.do(t, f.ada, http.MethodGet, "/api/user/history", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []repo.Calculation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.ElementsMatch(t, []string{"gcf", "lcm"}, []string{list[0].Calculator, list[1].Calculator})
	for _, c := range list {
		switch c.Calculator {
		case "gcf":
			assert.Equal(t, 6.0, c.Result.Value)
		case "lcm":
			assert.Equal(t, 12.0, c.Result.Value)
		}
	}

	rec = f.do(t, f.ada, http.MethodGet, "/api/user/history?limit=1", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	id := list[0].ID
	path := fmt.Sprintf("/api/user/history/%d", id)
	assert.Equal(t, http.StatusOK, f.do(t, f.ada, http.MethodGet, path, "").Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, f.bob, http.MethodGet, path, "").Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, f.bob, http.MethodDelete, path, "").Code)
	assert.Equal(t, http.StatusNoContent, f.do(t, f.ada, http.MethodDelete, path, "").Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, f.ada, http.MethodGet, path, "").Code)
}

func TestHistoryRequiresSession(t *testing.T) {
	f := setup(t)
	assert.Equal(t, http.StatusUnauthorized, f.do(t, 0, http.MethodGet, "/api/user/history", "").Code)
	assert.Equal(t, http.StatusUnauthorized, f.do(t, 0, http.MethodPost, "/api/user/tools/gcf/calc", `{"values":{"numbers":"4 6"}}`).Code)
}

func TestListLimit(t *testing.T) {
	f := setup(t)
	assert.Equal(t, http.StatusBadRequest, f.do(t, f.ada, http.MethodGet, "/api/user/history?limit=0", "").Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, f.ada, http.MethodGet, "/api/user/history?limit=abc", "").Code)
	rec := f.do(t, f.ada, http.MethodGet, "/api/user/history?limit=1000", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}
