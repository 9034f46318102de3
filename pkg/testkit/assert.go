package testkit

import (
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AnyValue in an expect map only requires the path to be present.
const AnyValue = "*"

// AssertStatusCode checks the response code, printing the body on mismatch.
func AssertStatusCode(t *testing.T, s *Scenario, got int, body []byte) {
	t.Helper()
	assert.Equal(t, s.ExpectedCode, got, "[%s] HTTP status code mismatch\nbody: %s", s.Name, body)
}

// AssertJSONBody compares two JSON documents ignoring key order and
// whitespace.
func AssertJSONBody(t *testing.T, s *Scenario, expected, actual []byte) {
	t.Helper()
	if len(expected) == 0 {
		return
	}

	var expVal, actVal any
	require.NoError(t, json.Unmarshal(expected, &expVal), "[%s] expected response file is not valid JSON", s.Name)
	if !assert.NoError(t, json.Unmarshal(actual, &actVal), "[%s] actual response is not valid JSON\nbody: %s", s.Name, actual) {
		return
	}
	assert.Equal(t, expVal, actVal, "[%s] response body mismatch", s.Name)
}

// AssertFields checks every expect entry of s against the decoded body.
func AssertFields(t *testing.T, s *Scenario, decoded any) {
	t.Helper()

	for path, want := range s.Expect {
		got, ok := Lookup(decoded, path)
		if !assert.True(t, ok, "[%s] %s: missing in response", s.Name, path) {
			continue
		}
		if want == AnyValue {
			assert.NotNil(t, got, "[%s] %s: expected a value", s.Name, path)
			continue
		}
		assert.Equal(t, want, got, "[%s] %s", s.Name, path)
	}
}

// Lookup walks a decoded JSON value along a dotted path. Numeric segments
// index arrays; "#" yields an array's length.
func Lookup(v any, path string) (any, bool) {
	if path == "" {
		return v, true
	}
	for _, seg := range strings.Split(path, ".") {
		switch node := v.(type) {
		case map[string]any:
			next, ok := node[seg]
			if !ok {
				return nil, false
			}
			v = next
		case []any:
			if seg == "#" {
				v = float64(len(node))
				continue
			}
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			v = node[i]
		default:
			return nil, false
		}
	}
	return v, true
}
