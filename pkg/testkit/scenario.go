// Package testkit drives REST API tests from JSON scenario files.
//
// A scenario file holds either one scenario or an ordered array of them (a
// flow). Steps in a flow share variables: a value captured from one response
// can be used as {{name}} in the URL, headers or body of a later step.
//
//	testdata/
//	  checkout_flow.json      ← array of steps
//	  create_service_req.json ← request body referenced by requestFileName
//
//	func TestAPI(t *testing.T) {
//	    r := testkit.NewRunner(handler, tokenFor)
//	    r.RunDir(t, "testdata")
//	}
package testkit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Scenario describes a single request and what its response must look like.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	// Actor is the identity the request is made as. The runner turns it into
	// an Authorization header. Empty means anonymous.
	Actor string `json:"actor"`

	RequestMethod   string            `json:"requestMethod"`
	RequestURL      string            `json:"requestUrl"`
	RequestBody     json.RawMessage   `json:"requestBody"`
	RequestFileName string            `json:"requestFileName"` // relative to the scenario file
	Headers         map[string]string `json:"headers"`

	ExpectedCode     int    `json:"expectedCode"`
	ResponseFileName string `json:"responseFileName"` // exact JSON match

	// Expect maps a dotted path ("data.0.email") to its expected value.
	// The string "*" only requires the path to be present and non-null.
	Expect map[string]any `json:"expect"`

	// Capture stores the value at a dotted path under a variable name.
	Capture map[string]string `json:"capture"`

	// Mocks answer the outgoing HTTP calls the request triggers. Every mock
	// must be called. Needs a runner with a MockTransport.
	Mocks []MockStep `json:"mocks"`

	dir string
}

// LoadScenario reads one scenario from a JSON file.
func LoadScenario(path string) (*Scenario, error) {
	abs, data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("testkit: parse %q: %w", abs, err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("testkit: invalid scenario %q: %w", abs, err)
	}
	s.dir = filepath.Dir(abs)
	return &s, nil
}

// LoadFlow reads a file holding either a scenario array or a single scenario.
func LoadFlow(path string) ([]*Scenario, error) {
	abs, data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	if !isArray(data) {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		return []*Scenario{s}, nil
	}

	var steps []*Scenario
	if err := json.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("testkit: parse flow %q: %w", abs, err)
	}
	dir := filepath.Dir(abs)
	for i, s := range steps {
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("testkit: invalid step %d of %q: %w", i, abs, err)
		}
		s.dir = dir
	}
	return steps, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.RequestURL == "" {
		return fmt.Errorf("requestUrl is required")
	}
	if s.ExpectedCode == 0 {
		return fmt.Errorf("expectedCode is required")
	}
	if s.RequestMethod == "" {
		s.RequestMethod = "GET"
	}
	if len(s.RequestBody) > 0 && s.RequestFileName != "" {
		return fmt.Errorf("requestBody and requestFileName are mutually exclusive")
	}
	for i, m := range s.Mocks {
		if m.MatchURL == "" {
			return fmt.Errorf("mocks[%d].matchUrl is required", i)
		}
	}
	return nil
}

// RequestBodyPath returns the absolute path of the request body file, or "".
func (s *Scenario) RequestBodyPath() string {
	return s.resolve(s.RequestFileName)
}

// ResponseBodyPath returns the absolute path of the expected response, or "".
func (s *Scenario) ResponseBodyPath() string {
	return s.resolve(s.ResponseFileName)
}

func (s *Scenario) resolve(name string) string {
	if name == "" {
		return ""
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}

func readFile(path string) (string, []byte, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", nil, fmt.Errorf("testkit: resolve path %q: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", nil, fmt.Errorf("testkit: read %q: %w", abs, err)
	}
	return abs, data, nil
}

func isArray(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '['
}
