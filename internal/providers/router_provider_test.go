package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dummyHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	})
}

func TestRouterProvider_GetAddsRoute(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/stats", dummyHandler("ok"))

	routes := rp.GetRoutes()
	require.Len(t, routes, 1)
	assert.Equal(t, "/stats", routes[0].Url)
}

func TestRouterProvider_SharedPathIsOneRoute(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/sightings", dummyHandler("list"))
	rp.Post("/sightings", dummyHandler("create"))
	rp.Get("/colors", dummyHandler("colors"))

	routes := rp.GetRoutes()
	require.Len(t, routes, 2)
	assert.Equal(t, "/sightings", routes[0].Url)
	assert.Equal(t, "/colors", routes[1].Url)

	rr := httptest.NewRecorder()
	routes[0].Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/sightings", nil))
	assert.Equal(t, "list", rr.Body.String())

	rr = httptest.NewRecorder()
	routes[0].Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/sightings", nil))
	assert.Equal(t, "create", rr.Body.String())
}

func TestRouterProvider_GetRouteRejectsPost(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/test", dummyHandler("ok"))

	route := rp.GetRoutes()[0]
	rr := httptest.NewRecorder()
	route.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/test", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "GET", rr.Header().Get("Allow"))
}

func TestRouterProvider_AllowHeaderListsAllMethods(t *testing.T) {
	rp := NewRouterProvider()
	rp.Post("/sightings", dummyHandler("create"))
	rp.Get("/sightings", dummyHandler("list"))

	route := rp.GetRoutes()[0]
	rr := httptest.NewRecorder()
	route.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/sightings", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "GET, POST", rr.Header().Get("Allow"))
}
