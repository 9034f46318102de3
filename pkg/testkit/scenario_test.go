package testkit_test

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/decorhub/pkg/testkit"
)

// notesHandler stores one note and serves it back; enough to exercise
// capture and substitution.
func notesHandler() http.Handler {
	var text string
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/notes":
			var in struct{ Text string }
			_ = json.NewDecoder(r.Body).Decode(&in)
			text = in.Text
			owner := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer token-")
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"status":201,"data":{"id":"n1","owner":"`+owner+`"}}`)
		case r.Method == http.MethodGet && r.URL.Path == "/notes/n1":
			_, _ = io.WriteString(w, `{"status":200,"data":{"id":"n1","text":"`+text+`","tags":["a","b"]}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"status":404}`)
		}
	})
}

func TestRunDir(t *testing.T) {
	r := testkit.NewRunner(notesHandler(), func(actor string) string { return "token-" + actor })
	r.RunDir(t, "testdata")
	assert.Equal(t, "n1", r.Var("noteId"))
}

func TestLoadFlow(t *testing.T) {
	steps, err := testkit.LoadFlow("testdata/echo_flow.json")
	require.NoError(t, err)
	require.Len(t, steps, 2)

	assert.Equal(t, "POST", steps[0].RequestMethod)
	assert.Equal(t, "ana@example.com", steps[0].Actor)
	assert.Equal(t, map[string]string{"noteId": "data.id"}, steps[0].Capture)
	assert.Equal(t, "GET", steps[1].RequestMethod)
	assert.True(t, strings.HasSuffix(steps[1].ResponseBodyPath(), "echo_note_res.json"))
}

func TestLookup(t *testing.T) {
	var doc any
	require.NoError(t, json.Unmarshal([]byte(`{"data":[{"email":"a@x.io"},{"email":"b@x.io"}],"n":3}`), &doc))

	v, ok := testkit.Lookup(doc, "data.1.email")
	assert.True(t, ok)
	assert.Equal(t, "b@x.io", v)

	v, ok = testkit.Lookup(doc, "data.#")
	assert.True(t, ok)
	assert.Equal(t, 2.0, v)

	_, ok = testkit.Lookup(doc, "data.5.email")
	assert.False(t, ok)
	_, ok = testkit.Lookup(doc, "n.deeper")
	assert.False(t, ok)
}

func TestAssertJSONBodyIgnoresOrder(t *testing.T) {
	s := &testkit.Scenario{Name: "order", ExpectedCode: 200}
	testkit.AssertJSONBody(t, s, []byte(`{"name":"Mira","cost":30}`), []byte(`{"cost": 30, "name": "Mira"}`))
}
