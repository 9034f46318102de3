package testkit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// TokenFunc returns the bearer token for an actor.
type TokenFunc func(actor string) string

// Runner fires scenarios against a handler and keeps captured variables
// between steps.
type Runner struct {
	handler   http.Handler
	token     TokenFunc
	vars      map[string]string
	transport *MockTransport
}

// NewRunner returns a runner for handler. token may be nil when every
// scenario is anonymous.
func NewRunner(handler http.Handler, token TokenFunc) *Runner {
	return &Runner{handler: handler, token: token, vars: make(map[string]string)}
}

// WithTransport serves each scenario's mocks from mt. mt must be the
// transport of the HTTP client the handler makes outgoing calls with.
func (r *Runner) WithTransport(mt *MockTransport) *Runner {
	r.transport = mt
	return r
}

// Set defines a variable usable as {{name}}.
func (r *Runner) Set(name, value string) { r.vars[name] = value }

// Var returns a captured or preset variable.
func (r *Runner) Var(name string) string { return r.vars[name] }

// Run executes the scenario or flow stored at path.
func (r *Runner) Run(t *testing.T, path string) {
	t.Helper()

	steps, err := LoadFlow(path)
	if err != nil {
		t.Fatalf("testkit: load %q: %v", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	t.Run(name, func(t *testing.T) {
		r.runSteps(t, steps)
	})
}

// RunDir runs every *.json file in dir in file-name order. Files sharing
// the runner see each other's captured variables.
func (r *Runner) RunDir(t *testing.T, dir string) {
	t.Helper()

	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil || len(paths) == 0 {
		t.Fatalf("testkit: no scenario files found in %q", dir)
	}
	sort.Strings(paths)

	for _, p := range paths {
		if strings.HasSuffix(p, "_req.json") || strings.HasSuffix(p, "_res.json") {
			continue
		}
		r.Run(t, p)
	}
}

// runSteps stops at the first failing step; later steps usually depend on
// what it would have captured.
func (r *Runner) runSteps(t *testing.T, steps []*Scenario) {
	for _, s := range steps {
		if ok := t.Run(s.Name, func(t *testing.T) { r.runScenario(t, s) }); !ok {
			t.FailNow()
		}
	}
}

func (r *Runner) runScenario(t *testing.T, s *Scenario) {
	t.Helper()

	body, err := r.requestBody(s)
	if err != nil {
		t.Fatalf("[%s] %v", s.Name, err)
	}

	req := httptest.NewRequest(strings.ToUpper(s.RequestMethod), r.expand(s.RequestURL), body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if s.Actor != "" && r.token != nil {
		req.Header.Set("Authorization", "Bearer "+r.token(s.Actor))
	}
	for k, v := range s.Headers {
		req.Header.Set(k, r.expand(v))
	}

	r.installMocks(t, s)

	rec := httptest.NewRecorder()
	r.handler.ServeHTTP(rec, req)

	AssertStatusCode(t, s, rec.Code, rec.Body.Bytes())
	r.assertMocks(t, s)

	if p := s.ResponseBodyPath(); p != "" {
		expected, err := os.ReadFile(p)
		if err != nil {
			t.Errorf("[%s] read response file %q: %v", s.Name, p, err)
		} else {
			AssertJSONBody(t, s, []byte(r.expand(string(expected))), rec.Body.Bytes())
		}
	}

	if len(s.Expect) == 0 && len(s.Capture) == 0 {
		return
	}

	var decoded any
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("[%s] response is not JSON: %v\nbody: %s", s.Name, err, rec.Body.String())
	}
	expanded := *s
	expanded.Expect = make(map[string]any, len(s.Expect))
	for k, v := range s.Expect {
		if str, ok := v.(string); ok {
			v = r.expand(str)
		}
		expanded.Expect[k] = v
	}
	AssertFields(t, &expanded, decoded)

	for name, path := range s.Capture {
		v, ok := Lookup(decoded, path)
		if !ok || v == nil {
			t.Fatalf("[%s] capture %q: nothing at %q", s.Name, name, path)
		}
		r.vars[name] = fmt.Sprint(v)
	}
}

func (r *Runner) installMocks(t *testing.T, s *Scenario) {
	t.Helper()
	if r.transport == nil {
		if len(s.Mocks) > 0 {
			t.Fatalf("[%s] scenario declares mocks but the runner has no MockTransport", s.Name)
		}
		return
	}

	r.transport.Reset()
	for _, m := range s.Mocks {
		m.MatchURL = r.expand(m.MatchURL)
		m.Body = json.RawMessage(r.expand(string(m.Body)))
		r.transport.Expect(m)
	}
}

func (r *Runner) assertMocks(t *testing.T, s *Scenario) {
	t.Helper()
	if r.transport == nil {
		return
	}
	for _, call := range r.transport.Unmatched() {
		t.Errorf("[%s] unexpected outgoing call %s", s.Name, call)
	}
	for _, m := range r.transport.Unused() {
		t.Errorf("[%s] mock %s was never called", s.Name, m)
	}
}

func (r *Runner) requestBody(s *Scenario) (io.Reader, error) {
	var raw []byte
	switch {
	case len(s.RequestBody) > 0:
		raw = s.RequestBody
	case s.RequestBodyPath() != "":
		data, err := os.ReadFile(s.RequestBodyPath())
		if err != nil {
			return nil, fmt.Errorf("read request file: %w", err)
		}
		raw = data
	default:
		return nil, nil
	}
	return bytes.NewReader([]byte(r.expand(string(raw)))), nil
}

func (r *Runner) expand(s string) string {
	if !strings.Contains(s, "{{") {
		return s
	}
	for k, v := range r.vars {
		s = strings.ReplaceAll(s, "{{"+k+"}}", v)
	}
	return s
}
