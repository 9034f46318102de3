package testkit_test

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/decorhub/pkg/testkit"
)

// quoteHandler relays a rate from an upstream API reached through client.
func quoteHandler(client *http.Client) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		resp, err := client.Get("https://rates.example.test/v1/" + r.URL.Query().Get("currency"))
		if err != nil {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = io.WriteString(w, `{"status":502}`)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = io.WriteString(w, `{"status":502}`)
			return
		}
		body, _ := io.ReadAll(resp.Body)
		_, _ = io.WriteString(w, `{"status":200,"data":`+string(body)+`}`)
	})
}

func TestRunnerServesScenarioMocks(t *testing.T) {
	mt := testkit.NewMockTransport()
	r := testkit.NewRunner(quoteHandler(mt.Client()), nil).WithTransport(mt)

	r.Run(t, "testdata/mocks/rates_flow.json")
	assert.Equal(t, "eur", r.Var("quoted"))
}

func TestMockTransportOrdersRepeatedMatches(t *testing.T) {
	mt := testkit.NewMockTransport()
	mt.Expect(
		testkit.MockStep{Method: "GET", MatchURL: "https://api.test/v1/job", Body: json.RawMessage(`{"state":"open"}`)},
		testkit.MockStep{Method: "GET", MatchURL: "https://api.test/v1/job", Body: json.RawMessage(`{"state":"done"}`)},
	)
	client := mt.Client()

	read := func() string {
		resp, err := client.Get("https://api.test/v1/job?expand=all")
		require.NoError(t, err)
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return string(b)
	}

	assert.JSONEq(t, `{"state":"open"}`, read())
	assert.JSONEq(t, `{"state":"done"}`, read())
	assert.JSONEq(t, `{"state":"done"}`, read())
	assert.Empty(t, mt.Unused())
}

func TestMockTransportRecordsAndRejects(t *testing.T) {
	mt := testkit.NewMockTransport()
	mt.Expect(
		testkit.MockStep{Method: "POST", MatchURL: "https://api.test/v1/items", Status: http.StatusCreated},
		testkit.MockStep{Method: "DELETE", MatchURL: "https://api.test/v1/items/1"},
	)
	client := mt.Client()

	resp, err := client.Post("https://api.test/v1/items", "application/x-www-form-urlencoded", strings.NewReader("name=lamp"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	_, err = client.Get("https://api.test/v1/items")
	assert.Error(t, err)

	calls := mt.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "name=lamp", string(calls[0].Body))
	assert.Equal(t, []string{"GET https://api.test/v1/items"}, mt.Unmatched())
	require.Len(t, mt.Unused(), 1)
	assert.Equal(t, "DELETE https://api.test/v1/items/1", mt.Unused()[0].String())

	mt.Reset()
	assert.Empty(t, mt.Calls())
	assert.Empty(t, mt.Unused())
}

func TestLoadFlowRejectsMockWithoutURL(t *testing.T) {
	path := t.TempDir() + "/bad.json"
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"x","requestUrl":"/","expectedCode":200,"mocks":[{"method":"GET"}]}]`), 0o644))

	_, err := testkit.LoadFlow(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mocks[0].matchUrl is required")
}
