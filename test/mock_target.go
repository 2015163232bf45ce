package test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// MockTarget is an HTTP dispatch target for tests. By default it echoes the
// request body, so a Cargo batch comes back as an array of the same length.
type MockTarget struct {
	Server *httptest.Server

	mu       sync.Mutex
	requests [][]byte
	headers  []http.Header
	reply    func(body []byte) (int, []byte)
}

// NewMockTarget starts a MockTarget that echoes every request.
func NewMockTarget() *MockTarget {
	m := &MockTarget{
		reply: func(body []byte) (int, []byte) {
			return http.StatusOK, body
		},
	}
	m.Server = httptest.NewServer(http.HandlerFunc(m.serve))
	return m
}

// Reply replaces the response function.
func (m *MockTarget) Reply(fn func(body []byte) (int, []byte)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reply = fn
}

func (m *MockTarget) URL() string {
	return m.Server.URL
}

func (m *MockTarget) Close() {
	m.Server.Close()
}

// Requests returns the bodies received so far.
func (m *MockTarget) Requests() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]byte(nil), m.requests...)
}

func (m *MockTarget) Headers() []http.Header {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]http.Header(nil), m.headers...)
}

func (m *MockTarget) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	m.mu.Lock()
	m.requests = append(m.requests, body)
	m.headers = append(m.headers, r.Header.Clone())
	reply := m.reply
	m.mu.Unlock()

	code, out := reply(body)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(out)
}
