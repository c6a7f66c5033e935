package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"spotter/internal/models"
	"spotter/internal/services"
	"spotter/internal/testutil"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- local mocks (scoped to controller tests) ---

type mockService struct {
	saveCalls  []*models.NewSighting
	saveResult *models.SaveResult
	saveErr    error
	list       []models.Sighting
	listErr    error
	statsCalls int
	flushed    int
	flushErr   error
	queued     int
	online     bool
}

func (m *mockService) Save(_ context.Context, input *models.NewSighting) (*models.SaveResult, error) {
	m.saveCalls = append(m.saveCalls, input)
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return m.saveResult, nil
}

func (m *mockService) FlushQueue(_ context.Context) (int, error) { return m.flushed, m.flushErr }

func (m *mockService) ListForUser(_ context.Context, _ string) ([]models.Sighting, error) {
	return m.list, m.listErr
}

func (m *mockService) Stats(_ context.Context, _ string) (models.SightingStats, error) {
	m.statsCalls++
	if m.listErr != nil {
		return models.SightingStats{}, m.listErr
	}
	return models.CalculateStats(m.list), nil
}

func (m *mockService) QueueLen() int  { return m.queued }
func (m *mockService) IsOnline() bool { return m.online }

// --- helpers ---

func newTestController(svc *mockService, cache *testutil.MockCache) (*ApiController, *testutil.MockLogger) {
	logger := &testutil.MockLogger{}
	return NewApiController(logger, svc, cache), logger
}

func sampleList() []models.Sighting {
	return []models.Sighting{
		{ID: "q", Model: models.ThreeDoor, Color: "#FF0000", UserID: "u1"},
		{ID: "b", Model: models.FiveDoor, Color: "#0000FF", UserID: "u1", Synced: true},
		{ID: "a", Model: models.FiveDoor, Color: "#0000FF", UserID: "u1", Synced: true},
	}
}

// --- CreateSighting ---

func TestCreateSighting_Created(t *testing.T) {
	svc := &mockService{saveResult: &models.SaveResult{
		Sighting: models.Sighting{ID: "id-1", Model: models.ThreeDoor, Color: "#FF0000", UserID: "u1"},
		NewColor: true,
		Queued:   true,
	}}
	ac, _ := newTestController(svc, testutil.NewMockCache())

	body := `{"model":"three-door","color":"#FF0000","userId":"u1","latitude":52.5,"longitude":13.4}`
	req := httptest.NewRequest(http.MethodPost, "/sightings", strings.NewReader(body))
	rr := httptest.NewRecorder()
	ac.CreateSighting(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	require.Len(t, svc.saveCalls, 1)
	assert.Equal(t, "u1", svc.saveCalls[0].UserID)
	require.NotNil(t, svc.saveCalls[0].Latitude)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["newColor"])
	assert.Equal(t, true, resp["queued"])
	assert.Equal(t, "id-1", resp["sighting"].(map[string]any)["id"])
}

func TestCreateSighting_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "not json"},
		{"empty", ""},
		{"unknown model", `{"model":"coupe","color":"#FF0000"}`},
		{"missing color", `{"model":"five-door"}`},
		{"half location", `{"model":"five-door","color":"#FF0000","latitude":1}`},
		{"oversized", strings.Repeat("x", maxRequestBodySize+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ac, _ := newTestController(&mockService{}, testutil.NewMockCache())

			req := httptest.NewRequest(http.MethodPost, "/sightings", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			ac.CreateSighting(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestCreateSighting_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"remote", fmt.Errorf("%w: %w", services.ErrRemote, testutil.ErrMockRemote), http.StatusBadGateway},
		{"local storage", services.ErrLocalStorage, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ac, logger := newTestController(&mockService{saveErr: tt.err}, testutil.NewMockCache())

			req := httptest.NewRequest(http.MethodPost, "/sightings", strings.NewReader(`{"model":"three-door","color":"#FF0000"}`))
			rr := httptest.NewRecorder()
			ac.CreateSighting(rr, req)

			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, 1, logger.Count("error"))
		})
	}
}

// --- ListSightings ---

func TestListSightings_ReturnsList(t *testing.T) {
	ac, _ := newTestController(&mockService{list: sampleList()}, testutil.NewMockCache())

	req := httptest.NewRequest(http.MethodGet, "/sightings?user=u1", nil)
	rr := httptest.NewRecorder()
	ac.ListSightings(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp []models.Sighting
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp, 3)
	assert.Equal(t, "q", resp[0].ID)
}

func TestListSightings_Limit(t *testing.T) {
	ac, _ := newTestController(&mockService{list: sampleList()}, testutil.NewMockCache())

	req := httptest.NewRequest(http.MethodGet, "/sightings?user=u1&limit=2", nil)
	rr := httptest.NewRecorder()
	ac.ListSightings(rr, req)

	var resp []models.Sighting
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}

func TestListSightings_EmptyIsArray(t *testing.T) {
	ac, _ := newTestController(&mockService{list: []models.Sighting{}}, testutil.NewMockCache())

	req := httptest.NewRequest(http.MethodGet, "/sightings?user=u1", nil)
	rr := httptest.NewRecorder()
	ac.ListSightings(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", rr.Body.String())
}

func TestListSightings_BadRequests(t *testing.T) {
	for _, target := range []string{"/sightings", "/sightings?user=u1&limit=abc", "/sightings?user=u1&limit=-1"} {
		ac, _ := newTestController(&mockService{}, testutil.NewMockCache())

		req := httptest.NewRequest(http.MethodGet, target, nil)
		rr := httptest.NewRecorder()
		ac.ListSightings(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code, target)
	}
}

func TestListSightings_RemoteFailure(t *testing.T) {
	svc := &mockService{listErr: fmt.Errorf("%w: timeout", services.ErrRemote)}
	ac, _ := newTestController(svc, testutil.NewMockCache())

	req := httptest.NewRequest(http.MethodGet, "/sightings?user=u1", nil)
	rr := httptest.NewRecorder()
	ac.ListSightings(rr, req)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

// --- GetStats ---

func TestGetStats_ComputesAndCaches(t *testing.T) {
	svc := &mockService{list: sampleList()}
	cache := testutil.NewMockCache()
	ac, _ := newTestController(svc, cache)

	req := httptest.NewRequest(http.MethodGet, "/stats?user=u1", nil)
	rr := httptest.NewRecorder()
	ac.GetStats(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var stats models.SightingStats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	assert.Equal(t, 3, stats.TotalSightings)
	assert.Equal(t, 2, stats.ByModel.FiveDoor)
	assert.Equal(t, "#0000FF", stats.MostFrequentColor.Color)
	assert.Equal(t, "Blue", stats.MostFrequentColor.Name)

	_, cached := cache.Data[services.StatsCacheKey("u1")]
	assert.True(t, cached)

	rr2 := httptest.NewRecorder()
	ac.GetStats(rr2, httptest.NewRequest(http.MethodGet, "/stats?user=u1", nil))
	assert.Equal(t, rr.Body.String(), rr2.Body.String())
	assert.Equal(t, 1, svc.statsCalls)
}

func TestGetStats_ErrorNotCached(t *testing.T) {
	svc := &mockService{listErr: fmt.Errorf("%w: timeout", services.ErrRemote)}
	cache := testutil.NewMockCache()
	ac, _ := newTestController(svc, cache)

	rr := httptest.NewRecorder()
	ac.GetStats(rr, httptest.NewRequest(http.MethodGet, "/stats?user=u1", nil))

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Empty(t, cache.Data)
}

func TestGetStats_RequiresUser(t *testing.T) {
	ac, _ := newTestController(&mockService{}, testutil.NewMockCache())

	rr := httptest.NewRecorder()
	ac.GetStats(rr, httptest.NewRequest(http.MethodGet, "/stats", nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// --- Sync ---

func TestSync_Flushes(t *testing.T) {
	ac, _ := newTestController(&mockService{flushed: 4, queued: 1}, testutil.NewMockCache())

	rr := httptest.NewRecorder()
	ac.Sync(rr, httptest.NewRequest(http.MethodPost, "/sync", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"flushed":4,"queued":1}`, rr.Body.String())
}

func TestSync_Offline(t *testing.T) {
	ac, _ := newTestController(&mockService{flushErr: services.ErrOffline}, testutil.NewMockCache())

	rr := httptest.NewRecorder()
	ac.Sync(rr, httptest.NewRequest(http.MethodPost, "/sync", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

// --- GetColors ---

func TestGetColors(t *testing.T) {
	cache := testutil.NewMockCache()
	ac, _ := newTestController(&mockService{}, cache)

	rr := httptest.NewRecorder()
	ac.GetColors(rr, httptest.NewRequest(http.MethodGet, "/colors", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	var palette []models.ColorOption
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &palette))
	assert.Len(t, palette, len(models.Palette))
	assert.Equal(t, "White", palette[0].Name)
	assert.Contains(t, cache.Data, "colors")
}
