// Package testutil provides common test utilities shared across packages.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// RegistryServer is a fake practitioner registry. It answers every search
// with the page registered for its raw query string, or an empty page.
type RegistryServer struct {
	*httptest.Server

	mu      sync.Mutex
	pages   map[string]string
	queries []string
	status  int
}

const emptyRegistryPage = `<html><body><div class="container"></div></body></html>`

// NewRegistryServer starts a fake registry closed at test cleanup.
func NewRegistryServer(t *testing.T) *RegistryServer {
	t.Helper()
	rs := &RegistryServer{pages: make(map[string]string), status: http.StatusOK}
	rs.Server = httptest.NewServer(http.HandlerFunc(rs.serve))
	t.Cleanup(rs.Close)
	return rs
}

// Page registers the HTML returned for rawQuery (e.g. "lastname=dupont").
func (rs *RegistryServer) Page(rawQuery, html string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.pages[rawQuery] = html
}

// FailWith makes every following search answer with status.
func (rs *RegistryServer) FailWith(status int) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.status = status
}

// Queries returns the raw query strings received so far.
func (rs *RegistryServer) Queries() []string {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return append([]string(nil), rs.queries...)
}

func (rs *RegistryServer) serve(w http.ResponseWriter, r *http.Request) {
	rs.mu.Lock()
	rs.queries = append(rs.queries, r.URL.RawQuery)
	status := rs.status
	page, ok := rs.pages[r.URL.RawQuery]
	rs.mu.Unlock()

	if status != http.StatusOK {
		w.WriteHeader(status)
		return
	}
	if !ok {
		page = emptyRegistryPage
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(page))
}

// DoRequest executes a request against a handler and returns the recorder.
func DoRequest(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// AssertStatus asserts the response status code matches expected.
func AssertStatus(t *testing.T, rr *httptest.ResponseRecorder, expected int) {
	t.Helper()
	assert.Equal(t, expected, rr.Code, "unexpected status code")
}

// AssertStatusOK asserts the response status is 200 OK.
func AssertStatusOK(t *testing.T, rr *httptest.ResponseRecorder) {
	t.Helper()
	AssertStatus(t, rr, http.StatusOK)
}
