package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"spotter/internal/models"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

const defaultRestTimeout = 10 * time.Second

// APIError is a non-2xx answer from the REST endpoint.
type APIError struct {
	Status  int
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote: HTTP %d", e.Status)
	}
	return fmt.Sprintf("remote: HTTP %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}

// RestStore speaks the PostgREST dialect: one table under /rest/v1/.
type RestStore struct {
	BaseURL string
	APIKey  string
	Table   string
	HTTP    *http.Client
}

func NewRestStore(baseURL, apiKey, table string, timeout time.Duration) *RestStore {
	if timeout <= 0 {
		timeout = defaultRestTimeout
	}
	if table == "" {
		table = "sightings"
	}
	return &RestStore{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Table:   table,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

func (r *RestStore) Insert(ctx context.Context, sightings []models.Sighting) error {
	if len(sightings) == 0 {
		return nil
	}
	rows := make([]row, 0, len(sightings))
	for _, s := range sightings {
		rows = append(rows, toRow(s))
	}

	headers := map[string]string{"Prefer": "return=minimal,resolution=ignore-duplicates"}
	return r.doRequest(ctx, http.MethodPost, url.Values{"on_conflict": {"id"}}, rows, nil, headers)
}

func (r *RestStore) ListByUser(ctx context.Context, userID string) ([]models.Sighting, error) {
	query := url.Values{
		"select":  {"*"},
		"user_id": {"eq." + userID},
		"order":   {"timestamp.desc"},
	}

	var rows []row
	if err := r.doRequest(ctx, http.MethodGet, query, nil, &rows, nil); err != nil {
		return nil, err
	}

	out := make([]models.Sighting, 0, len(rows))
	for _, rw := range rows {
		out = append(out, rw.sighting())
	}
	return out, nil
}

func (r *RestStore) Ping(ctx context.Context) error {
	query := url.Values{"select": {"id"}, "limit": {"1"}}
	return r.doRequest(ctx, http.MethodGet, query, nil, nil, nil)
}

func (r *RestStore) Close() error {
	r.HTTP.CloseIdleConnections()
	return nil
}

func (r *RestStore) doRequest(ctx context.Context, method string, query url.Values, body, result any, headers map[string]string) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	endpoint := r.BaseURL + "/rest/v1/" + r.Table
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.APIKey != "" {
		req.Header.Set("apikey", r.APIKey)
		req.Header.Set("Authorization", "Bearer "+r.APIKey)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := r.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{}
		if json.Unmarshal(respBody, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(respBody))
		}
		apiErr.Status = resp.StatusCode
		return apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}
