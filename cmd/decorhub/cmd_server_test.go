package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/decorhub/pkg/router"
)

func TestPrintRoutesSorted(t *testing.T) {
	var out bytes.Buffer
	err := printRoutes(&out, []router.RouteInfo{
		{Method: "POST", Path: "/users", Name: "users.register"},
		{Method: "GET", Path: "/services", Name: "services.index"},
		{Method: "GET", Path: "/users", Name: "users.index"},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[2], "services.index")
	assert.Contains(t, lines[3], "users.index")
	assert.Contains(t, lines[4], "users.register")
}

func TestPrintRoutesEmpty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printRoutes(&out, nil))
	assert.Equal(t, "No named routes registered.\n", out.String())
}

func TestRouteListCommand(t *testing.T) {
	var out bytes.Buffer
	routeListCmd.SetOut(&out)
	require.NoError(t, routeListCmd.RunE(routeListCmd, nil))

	assert.Contains(t, out.String(), "orders.assign")
	assert.Contains(t, out.String(), "/create-checkout-session")
}
