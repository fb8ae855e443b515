// Package testkit provides test doubles for the storefront's outgoing HTTP
// traffic.
//
// MockTransport implements http.RoundTripper: install it on the shared
// client, stub the calls a test expects, and every other outgoing request
// fails loudly instead of hitting the network.
//
//	mt := testkit.NewMockTransport()
//	mt.Stub("GET", "/api/cart", 200, `{"items":[]}`)
//	http.DefaultClient.Transport = mt
//	defer http.ResetTransport()
//	// ... run test ...
//	mt.AssertAllCalled(t)
package testkit

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
)

// RecordedRequest is one intercepted outgoing request, body already read.
type RecordedRequest struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

type stub struct {
	method    string
	pathPart  string
	status    int
	body      string
	callCount int
}

// MockTransport matches outgoing requests against stubs and answers them
// synthetically. Unstubbed calls return an error, which surfaces in the
// caller as a transport failure.
type MockTransport struct {
	mu       sync.Mutex
	stubs    []*stub
	recorded []RecordedRequest
}

// NewMockTransport builds an empty transport. Add expectations with Stub.
func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

// Stub registers a synthetic response for requests of the given method
// whose URL contains pathPart. Matching prefers the first registered stub
// not yet consumed, so the same route can be stubbed twice to answer
// differently per call; once every match is consumed, further calls reuse
// the last one.
func (mt *MockTransport) Stub(method, pathPart string, status int, body string) *MockTransport {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.stubs = append(mt.stubs, &stub{method: method, pathPart: pathPart, status: status, body: body})
	return mt
}

// RoundTrip intercepts the outgoing request.
func (mt *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var bodyBytes []byte
	if req.Body != nil {
		bodyBytes, _ = io.ReadAll(req.Body)
		req.Body.Close() //nolint:errcheck
	}

	mt.mu.Lock()
	defer mt.mu.Unlock()

	mt.recorded = append(mt.recorded, RecordedRequest{
		Method: req.Method,
		URL:    req.URL.String(),
		Header: req.Header.Clone(),
		Body:   bodyBytes,
	})

	var match *stub
	for _, s := range mt.stubs {
		if s.method != req.Method || !strings.Contains(req.URL.String(), s.pathPart) {
			continue
		}
		match = s
		if s.callCount == 0 {
			break
		}
	}
	if match == nil {
		return nil, fmt.Errorf("testkit: unexpected outgoing %s %s — no matching stub", req.Method, req.URL)
	}
	match.callCount++

	header := make(http.Header)
	header.Set("Content-Type", "application/json")
	return &http.Response{
		StatusCode: match.status,
		Status:     fmt.Sprintf("%d %s", match.status, http.StatusText(match.status)),
		Header:     header,
		Body:       io.NopCloser(bytes.NewReader([]byte(match.body))),
		Request:    req,
	}, nil
}

// Requests returns every intercepted request in order.
func (mt *MockTransport) Requests() []RecordedRequest {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	return append([]RecordedRequest(nil), mt.recorded...)
}

// CallCount reports how many requests matched the stub for method+pathPart.
func (mt *MockTransport) CallCount(method, pathPart string) int {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	n := 0
	for _, s := range mt.stubs {
		if s.method == method && s.pathPart == pathPart {
			n += s.callCount
		}
	}
	return n
}

// AssertAllCalled fails the test when any stub was never matched.
func (mt *MockTransport) AssertAllCalled(t *testing.T) {
	t.Helper()
	mt.mu.Lock()
	defer mt.mu.Unlock()

	for _, s := range mt.stubs {
		if s.callCount == 0 {
			t.Errorf("testkit: stub %s %q was never called", s.method, s.pathPart)
		}
	}
}

// AssertNotCalled fails the test when any request hit the given path.
func (mt *MockTransport) AssertNotCalled(t *testing.T, pathPart string) {
	t.Helper()
	mt.mu.Lock()
	defer mt.mu.Unlock()

	for _, r := range mt.recorded {
		if strings.Contains(r.URL, pathPart) {
			t.Errorf("testkit: unexpected call %s %s", r.Method, r.URL)
		}
	}
}
