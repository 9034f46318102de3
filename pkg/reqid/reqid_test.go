package reqid_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/decorhub/pkg/reqid"
)

func TestMiddlewareGeneratesID(t *testing.T) {
	var seen string
	h := reqid.Middleware()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = reqid.FromCtx(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(reqid.Header))
}

func TestMiddlewareHonoursUpstreamID(t *testing.T) {
	var seen string
	h := reqid.Middleware()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = reqid.FromCtx(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(reqid.Header, "from-gateway")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "from-gateway", seen)
}

func TestMiddlewareReplacesMalformedID(t *testing.T) {
	var seen string
	h := reqid.Middleware()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = reqid.FromCtx(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(reqid.Header, "bad id\nlevel=ERROR")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.NotEqual(t, "bad id\nlevel=ERROR", seen)
	assert.Len(t, seen, 36)
}

func TestFromCtxEmpty(t *testing.T) {
	assert.Equal(t, "", reqid.FromCtx(httptest.NewRequest(http.MethodGet, "/", nil).Context()))
}
