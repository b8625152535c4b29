package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/vibeos/vibeos/internal/constants"
	apperrors "github.com/vibeos/vibeos/internal/errors"
	"github.com/vibeos/vibeos/internal/logger"
	"github.com/vibeos/vibeos/internal/models"
)

// TokenSource supplies the bearer credential attached to every call. An
// empty token means the session is unauthenticated.
type TokenSource func() (string, error)

// HTTPStore talks to the hosted sync server.
type HTTPStore struct {
	baseURL string
	token   TokenSource
	client  *http.Client
}

func NewHTTPStore(baseURL string, token TokenSource) *HTTPStore {
	return &HTTPStore{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: constants.RequestTimeout},
	}
}

// savePaths maps each entity kind to its single-key set endpoint.
var savePaths = map[models.EntityKind]string{
	models.KindTasks:         "/tasks",
	models.KindLogs:          "/logs",
	models.KindTimerSessions: "/timer-sessions",
	models.KindSettings:      "/settings",
	models.KindTimer:         "/timer",
	models.KindShuffle:       "/horse-shuffle",
}

// envelopeKeys wraps each payload under the body key the server expects.
// The timer payload is a TimerState and is sent bare: its own JSON shape
// ({"totalSeconds": n}) is the envelope.
var envelopeKeys = map[models.EntityKind]string{
	models.KindTasks:         "tasks",
	models.KindLogs:          "logs",
	models.KindTimerSessions: "timerSessions",
	models.KindSettings:      "settings",
	models.KindShuffle:       "shuffle",
}

type fetchResponse struct {
	Tasks         []models.Task         `json:"tasks"`
	Logs          []models.LogEntry     `json:"logs"`
	TimerSessions []models.TimerSession `json:"timerSessions"`
	Settings      models.Settings       `json:"settings"`
	Timer         models.TimerState     `json:"timer"`
	Shuffle       []int                 `json:"horseRevealShuffle"`
}

func (s *HTTPStore) Fetch(ctx context.Context) (models.Snapshot, error) {
	body, err := s.do(ctx, http.MethodGet, "/data", nil)
	if err != nil {
		return models.Snapshot{}, err
	}

	var resp fetchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return models.Snapshot{}, fmt.Errorf("%w: decode snapshot: %v", apperrors.ErrRemoteUnavailable, err)
	}
	return models.Snapshot{
		Tasks:         resp.Tasks,
		Logs:          resp.Logs,
		TimerSessions: resp.TimerSessions,
		Settings:      resp.Settings,
		Timer:         resp.Timer,
		Shuffle:       resp.Shuffle,
	}, nil
}

func (s *HTTPStore) Save(ctx context.Context, kind models.EntityKind, payload any) error {
	path, ok := savePaths[kind]
	if !ok {
		return fmt.Errorf("unknown entity kind: %s", kind)
	}

	var body any = payload
	if key, wrap := envelopeKeys[kind]; wrap {
		body = map[string]any{key: payload}
	}
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", kind, err)
	}

	_, err = s.do(ctx, http.MethodPost, path, data)
	return err
}

func (s *HTTPStore) Health(ctx context.Context) error {
	_, err := s.do(ctx, http.MethodGet, "/health", nil)
	return err
}

func (s *HTTPStore) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	token, err := s.token()
	if err != nil || token == "" {
		return nil, apperrors.ErrAuthenticationRequired
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRemoteUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRemoteUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, apperrors.ErrAuthenticationRequired
	case resp.StatusCode >= 300:
		logger.Warn("Remote call failed", "method", method, "path", path, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: %s", apperrors.ErrRemoteUnavailable, serverError(data, resp.Status))
	}
	return data, nil
}

// serverError extracts the server's {"error": "..."} message when the
// response body carries one, falling back to the HTTP status line.
func serverError(body []byte, status string) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return status
}
