package testkit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// MockStep answers outgoing HTTP calls made while a scenario runs, such as
// the Stripe API calls behind /payment-success:
//
//	"mocks": [{
//	  "method": "GET",
//	  "matchUrl": "https://api.stripe.test/v1/checkout/sessions/cs_1",
//	  "body": {"id": "cs_1", "object": "checkout.session", "status": "complete"}
//	}]
type MockStep struct {
	Method   string          `json:"method"`   // empty matches any method
	MatchURL string          `json:"matchUrl"` // prefix of the full request URL
	Status   int             `json:"status"`   // defaults to 200
	Body     json.RawMessage `json:"body"`
}

func (m MockStep) String() string {
	method := m.Method
	if method == "" {
		method = "*"
	}
	return method + " " + m.MatchURL
}

// MockCall is one outgoing request seen by a MockTransport.
type MockCall struct {
	Method string
	URL    string
	Body   []byte
}

// MockTransport is an http.RoundTripper that serves MockSteps instead of
// reaching the network. A request that matches no step fails.
//
//	mt := testkit.NewMockTransport()
//	client := mt.Client() // hand to the SDK under test
//	mt.Expect(testkit.MockStep{Method: "GET", MatchURL: "https://api.example.test/v1/x", Body: body})
type MockTransport struct {
	mu        sync.Mutex
	steps     []*mockEntry
	calls     []MockCall
	unmatched []string
}

type mockEntry struct {
	step  MockStep
	calls int
}

func NewMockTransport() *MockTransport { return &MockTransport{} }

// Client returns an http.Client that sends every request through mt.
func (mt *MockTransport) Client() *http.Client { return &http.Client{Transport: mt} }

// Expect adds steps. When several steps match a request, the first one not
// yet called answers; once all were called the last match keeps answering.
func (mt *MockTransport) Expect(steps ...MockStep) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	for _, s := range steps {
		mt.steps = append(mt.steps, &mockEntry{step: s})
	}
}

// Reset drops every step and the call history.
func (mt *MockTransport) Reset() {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.steps, mt.calls, mt.unmatched = nil, nil, nil
}

// RoundTrip implements http.RoundTripper.
func (mt *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		data, err := io.ReadAll(req.Body)
		_ = req.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("testkit: read outgoing body: %w", err)
		}
		body = data
	}
	url := req.URL.String()

	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.calls = append(mt.calls, MockCall{Method: req.Method, URL: url, Body: body})

	var hit *mockEntry
	for _, e := range mt.steps {
		if !e.matches(req.Method, url) {
			continue
		}
		hit = e
		if e.calls == 0 {
			break
		}
	}
	if hit == nil {
		mt.unmatched = append(mt.unmatched, req.Method+" "+url)
		return nil, fmt.Errorf("testkit: no mock step for %s %s", req.Method, url)
	}
	hit.calls++
	return mockResponse(req, hit.step), nil
}

// Calls returns every outgoing request seen since the last Reset.
func (mt *MockTransport) Calls() []MockCall {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	return append([]MockCall(nil), mt.calls...)
}

// Unused returns the steps that never answered a request.
func (mt *MockTransport) Unused() []MockStep {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	var out []MockStep
	for _, e := range mt.steps {
		if e.calls == 0 {
			out = append(out, e.step)
		}
	}
	return out
}

// Unmatched returns "METHOD url" for every request no step answered.
func (mt *MockTransport) Unmatched() []string {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	return append([]string(nil), mt.unmatched...)
}

func (e *mockEntry) matches(method, url string) bool {
	if e.step.Method != "" && !strings.EqualFold(e.step.Method, method) {
		return false
	}
	return strings.HasPrefix(url, e.step.MatchURL)
}

func mockResponse(req *http.Request, s MockStep) *http.Response {
	code := s.Status
	if code == 0 {
		code = http.StatusOK
	}
	header := make(http.Header)
	header.Set("Content-Type", "application/json")
	return &http.Response{
		StatusCode:    code,
		Status:        fmt.Sprintf("%d %s", code, http.StatusText(code)),
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(s.Body)),
		ContentLength: int64(len(s.Body)),
		Request:       req,
	}
}
