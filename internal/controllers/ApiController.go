package controllers

import (
	"errors"
	"net/http"
	"spotter/internal/models"
	"spotter/internal/providers"
	"spotter/internal/services"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type ApiController struct {
	logger  providers.Logger
	service services.SightingServiceInterface
	cache   providers.CacheProviderInterface
}

func NewApiController(logger providers.Logger, service services.SightingServiceInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

type syncResponse struct {
	Flushed int `json:"flushed"`
	Queued  int `json:"queued"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	gson, err := json.Marshal(body)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

// writeError maps service errors onto status codes.
func (ac *ApiController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrOffline):
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
	case errors.Is(err, services.ErrRemote):
		ac.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "%s %s: %s", r.Method, r.URL.Path, err)
		http.Error(w, "Bad Gateway", http.StatusBadGateway)
	default:
		ac.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "%s %s: %s", r.Method, r.URL.Path, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, r *http.Request, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		ac.writeError(w, r, err)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (ac *ApiController) CreateSighting(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload models.NewSighting
	err := json.NewDecoder(r.Body).Decode(&payload)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	result, err := ac.service.Save(r.Context(), &payload)
	if err != nil {
		ac.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

func (ac *ApiController) ListSightings(w http.ResponseWriter, r *http.Request) {
	user := r.URL.Query().Get("user")
	if user == "" {
		http.Error(w, "Bad Request: user is required", http.StatusBadRequest)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := cast.ToIntE(raw)
		if err != nil || n < 0 {
			http.Error(w, "Bad Request: invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	list, err := ac.service.ListForUser(r.Context(), user)
	if err != nil {
		ac.writeError(w, r, err)
		return
	}
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}

	writeJSON(w, http.StatusOK, list)
}

func (ac *ApiController) GetStats(w http.ResponseWriter, r *http.Request) {
	user := r.URL.Query().Get("user")
	if user == "" {
		http.Error(w, "Bad Request: user is required", http.StatusBadRequest)
		return
	}
	ac.serveFromCacheOrCompute(w, r, services.StatsCacheKey(user), func() (any, error) {
		return ac.service.Stats(r.Context(), user)
	})
}

func (ac *ApiController) Sync(w http.ResponseWriter, r *http.Request) {
	flushed, err := ac.service.FlushQueue(r.Context())
	if err != nil {
		ac.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, syncResponse{Flushed: flushed, Queued: ac.service.QueueLen()})
}

func (ac *ApiController) GetColors(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, r, "colors", func() (any, error) {
		return models.Palette, nil
	})
}
