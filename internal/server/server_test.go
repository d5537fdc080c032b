package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/shell-assess/internal/assess"
	"github.com/sells-group/shell-assess/internal/domain"
	"github.com/sells-group/shell-assess/internal/model"
	"github.com/sells-group/shell-assess/internal/store"
)

func newTestServer(t *testing.T) (*Server, store.Store) {
	t.Helper()
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Migrate(context.Background()))

	engine := assess.NewEngine(
		domain.NewClassifier(domain.NewBadlist([]string{"gmail.com"})),
		assess.DefaultConfig(),
	)
	return New(Options{Engine: engine, Store: st}), st
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestAccount_SalesforceNotConfigured(t *testing.T) {
	s, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/account/001000000000001AAA", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAnalyze_SalesforceNotConfigured(t *testing.T) {
	s, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/accounts/analyze", strings.NewReader(`{}`))
	s.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetRun_NotFound(t *testing.T) {
	s, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs/no-such-run", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListRuns_StripsAssessments(t *testing.T) {
	s, st := newTestServer(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx, "accounts.csv")
	require.NoError(t, err)
	require.NoError(t, st.CompleteRun(ctx, run.ID, []model.Assessment{
		{Account: model.Account{ID: "001000000000001AAA"}},
	}))

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var runs []model.Run
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, run.ID, runs[0].ID)
	assert.Empty(t, runs[0].Assessments)
}

func TestExportRun_NotComplete(t *testing.T) {
	s, st := newTestServer(t)
	run, err := st.CreateRun(context.Background(), "accounts.csv")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs/"+run.ID+"/export", nil))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestExportRun_CSVAttachment(t *testing.T) {
	s, st := newTestServer(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx, "accounts.csv")
	require.NoError(t, err)
	require.NoError(t, st.CompleteRun(ctx, run.ID, []model.Assessment{
		{Account: model.Account{ID: "001000000000001AAA", Name: "Acme"}},
	}))

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs/"+run.ID+"/export", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".csv")
	assert.Contains(t, rec.Body.String(), "Account ID")
	assert.Contains(t, rec.Body.String(), "Acme")
}

func TestExportRun_XLSXFormat(t *testing.T) {
	s, st := newTestServer(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx, "accounts.csv")
	require.NoError(t, err)
	require.NoError(t, st.CompleteRun(ctx, run.ID, []model.Assessment{
		{Account: model.Account{ID: "001000000000001AAA"}},
	}))

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs/"+run.ID+"/export?format=xlsx", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotEmpty(t, rec.Body.Bytes())
}
