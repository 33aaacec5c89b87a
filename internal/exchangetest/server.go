// Package exchangetest runs a scripted fake of the exchange REST API for
// tests. Responses are registered per method and path; every request is
// recorded so tests can assert on what the client actually sent.
package exchangetest

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
)

// UnknownEndpoint is served for requests with no registered response.
const UnknownEndpoint = `{"errorCode":110,"error":"Invalid endpoint. Please check url and HTTP method."}`

// Request is one recorded call.
type Request struct {
	Method   string
	Path     string // without query
	RawQuery string
	Target   string // path plus "?query" when present, as signed
	Header   http.Header
	Body     []byte
}

type response struct {
	status int
	body   string
}

// Server is a fake exchange backed by httptest.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	routes   map[string]response
	requests []Request
}

// New starts a server that is closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{routes: make(map[string]response)}

	router := gin.New()
	router.NoRoute(s.serve)
	s.Server = httptest.NewServer(router)
	t.Cleanup(s.Close)
	return s
}

// Handle registers the response for method and path, e.g.
// Handle("GET", "/v2/time", 200, `{"time":1}`). The query string is not
// part of the match.
func (s *Server) Handle(method, path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[method+" "+path] = response{status: status, body: body}
}

// Requests returns every recorded request in arrival order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request. ok is false if none arrived.
func (s *Server) LastRequest() (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}, false
	}
	return s.requests[len(s.requests)-1], true
}

func (s *Server) serve(c *gin.Context) {
	body, _ := c.GetRawData()

	target := c.Request.URL.Path
	if c.Request.URL.RawQuery != "" {
		target += "?" + c.Request.URL.RawQuery
	}

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method:   c.Request.Method,
		Path:     c.Request.URL.Path,
		RawQuery: c.Request.URL.RawQuery,
		Target:   target,
		Header:   c.Request.Header.Clone(),
		Body:     body,
	})
	resp, ok := s.routes[c.Request.Method+" "+c.Request.URL.Path]
	s.mu.Unlock()

	if !ok {
		resp = response{status: http.StatusNotFound, body: UnknownEndpoint}
	}
	c.Data(resp.status, "application/json; charset=utf-8", []byte(resp.body))
}
