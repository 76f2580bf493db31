package ui

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dhamidi/eqsolve/analysis"
	"github.com/dhamidi/eqsolve/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	s, err := NewServer(cfg)
	require.NoError(t, err)
	return s
}

func TestIndex(t *testing.T) {
	s := newTestServer(t, Config{Format: format.Options{Precision: -1}})

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<form method="post" action="/solve">`)
}

func TestStatic(t *testing.T) {
	s := newTestServer(t, Config{})

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/style.css", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "textarea")
}

func postForm(s *Server, system string) *httptest.ResponseRecorder {
	form := url.Values{"system": {system}}
	req := httptest.NewRequest(http.MethodPost, "/solve", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestSolveForm(t *testing.T) {
	s := newTestServer(t, Config{Format: format.Options{Precision: 2}})

	rec := postForm(s, "x+y=3\nx-y=1")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "x + y = 3\nx - y = 1")
	assert.Contains(t, body, "<td>x</td><td>2.00</td>")
	assert.Contains(t, body, "<td>y</td><td>1.00</td>")
}

func TestSolveFormError(t *testing.T) {
	s := newTestServer(t, Config{})

	rec := postForm(s, "x * y = 1")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-kind="lex"`)
	assert.Contains(t, rec.Body.String(), "x * y = 1")
}

func TestSolveFormSingular(t *testing.T) {
	s := newTestServer(t, Config{Format: format.Options{Precision: -1}})

	rec := postForm(s, "x + y = 2\n2x + 2y = 4")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "least-squares")
}

func postAPI(s *Server, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/solve", strings.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestAPISolve(t *testing.T) {
	s := newTestServer(t, Config{})

	rec := postAPI(s, "application/json", `{"system": "2x + 3y = 8\nx - y = 2"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp solveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2x + 3y = 8\nx - y = 2", resp.System)
	assert.Equal(t, []string{"x", "y"}, resp.Variables)
	assert.InDelta(t, 2.8, resp.Solution["x"], 1e-9)
	assert.InDelta(t, 0.8, resp.Solution["y"], 1e-9)
	assert.False(t, resp.Approximate)
	assert.Equal(t, 2, resp.Rank)
}

func TestAPISolvePlainText(t *testing.T) {
	s := newTestServer(t, Config{})

	rec := postAPI(s, "text/plain", "x = 4\n")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp solveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 4.0, resp.Solution["x"])
}

func TestAPISolveErrors(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		body   string
		status int
		kind   analysis.Kind
		line   int
		column int
	}{
		{"lex", Config{}, `{"system": "x + y = 1\nx * y = 2"}`, http.StatusUnprocessableEntity, analysis.KindLex, 2, 3},
		{"parse", Config{}, `{"system": "x + = 2"}`, http.StatusUnprocessableEntity, analysis.KindParse, 1, 5},
		{"dimension", Config{}, `{"system": "x + y = 1"}`, http.StatusUnprocessableEntity, analysis.KindDimension, 0, 0},
		{"input", Config{}, `{"system": "x + y"}`, http.StatusUnprocessableEntity, analysis.KindInput, 1, 1},
		{"empty", Config{}, `{"system": ""}`, http.StatusUnprocessableEntity, analysis.KindInput, 0, 0},
		{"strict from config", Config{Strict: true}, `{"system": "x + y = 2\n2x + 2y = 4"}`, http.StatusUnprocessableEntity, analysis.KindSingular, 0, 0},
		{"strict from request", Config{}, `{"system": "x + y = 2\n2x + 2y = 4", "strict": true}`, http.StatusUnprocessableEntity, analysis.KindSingular, 0, 0},
		{"bad json", Config{}, `{"system":`, http.StatusBadRequest, analysis.KindInput, 0, 0},
		{"too large", Config{MaxBytes: 8}, `{"system": "x = 1"}`, http.StatusRequestEntityTooLarge, analysis.KindInput, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, tt.cfg)
			rec := postAPI(s, "application/json", tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())

			var resp errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
			assert.Equal(t, tt.kind, resp.Kind)
			assert.Equal(t, tt.line, resp.Line)
			assert.Equal(t, tt.column, resp.Column)
		})
	}
}

func TestAPIGrammar(t *testing.T) {
	s := newTestServer(t, Config{})

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/grammar", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "System")
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, Config{})

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/solve", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestAPISolveReadError(t *testing.T) {
	s := newTestServer(t, Config{})

	req := httptest.NewRequest(http.MethodPost, "/api/solve", failingReader{})
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "connection reset")
	assert.Equal(t, analysis.KindInput, resp.Kind)
}
