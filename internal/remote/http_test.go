package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/vibeos/vibeos/internal/errors"
	"github.com/vibeos/vibeos/internal/models"
)

func staticToken(token string) TokenSource {
	return func() (string, error) { return token, nil }
}

func TestFetchDecodesSnapshot(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.Method != http.MethodGet || r.URL.Path != "/data" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		io.WriteString(w, `{
			"tasks": [{"id": "t1", "text": "remote", "completed": false}],
			"logs": [],
			"timerSessions": [{"id": "s1", "duration": 120, "date": "2026-02-01"}],
			"settings": {"projectName": "REMOTE"},
			"timer": {"totalSeconds": 4200},
			"horseRevealShuffle": [1, 0, 2]
		}`)
	}))
	defer srv.Close()

	store := NewHTTPStore(srv.URL, staticToken("tok-123"))
	snap, err := store.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}

	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want Bearer tok-123", gotAuth)
	}
	if len(snap.Tasks) != 1 || snap.Tasks[0].ID != "t1" {
		t.Errorf("snap.Tasks = %+v, want the remote task", snap.Tasks)
	}
	if snap.Timer.TotalSeconds != 4200 {
		t.Errorf("snap.Timer.TotalSeconds = %d, want 4200", snap.Timer.TotalSeconds)
	}
	if len(snap.Shuffle) != 3 || snap.Shuffle[0] != 1 {
		t.Errorf("snap.Shuffle = %v, want [1 0 2]", snap.Shuffle)
	}
	if snap.Settings.ProjectName != "REMOTE" {
		t.Errorf("snap.Settings.ProjectName = %q, want REMOTE", snap.Settings.ProjectName)
	}
}

func TestSaveEnvelopes(t *testing.T) {
	type request struct {
		path string
		body map[string]json.RawMessage
	}
	var got request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		got.path = r.URL.Path
		got.body = nil
		json.Unmarshal(data, &got.body)
		io.WriteString(w, `{"success": true}`)
	}))
	defer srv.Close()

	store := NewHTTPStore(srv.URL, staticToken("tok"))
	ctx := context.Background()

	t.Run("tasks wrapped", func(t *testing.T) {
		if err := store.Save(ctx, models.KindTasks, []models.Task{{ID: "a"}}); err != nil {
			t.Fatalf("Save() failed: %v", err)
		}
		if got.path != "/tasks" {
			t.Errorf("path = %q, want /tasks", got.path)
		}
		if _, ok := got.body["tasks"]; !ok {
			t.Errorf("body keys = %v, want a tasks envelope", keys(got.body))
		}
	})

	t.Run("shuffle wrapped", func(t *testing.T) {
		if err := store.Save(ctx, models.KindShuffle, []int{1, 0}); err != nil {
			t.Fatalf("Save() failed: %v", err)
		}
		if got.path != "/horse-shuffle" {
			t.Errorf("path = %q, want /horse-shuffle", got.path)
		}
		if _, ok := got.body["shuffle"]; !ok {
			t.Errorf("body keys = %v, want a shuffle envelope", keys(got.body))
		}
	})

	t.Run("timer sent bare", func(t *testing.T) {
		if err := store.Save(ctx, models.KindTimer, models.TimerState{TotalSeconds: 77}); err != nil {
			t.Fatalf("Save() failed: %v", err)
		}
		if got.path != "/timer" {
			t.Errorf("path = %q, want /timer", got.path)
		}
		raw, ok := got.body["totalSeconds"]
		if !ok {
			t.Fatalf("body keys = %v, want bare totalSeconds", keys(got.body))
		}
		if string(raw) != "77" {
			t.Errorf("totalSeconds = %s, want 77", raw)
		}
	})
}

func keys(m map[string]json.RawMessage) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestEmptyTokenFailsWithoutRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	store := NewHTTPStore(srv.URL, staticToken(""))
	_, err := store.Fetch(context.Background())
	if !errors.Is(err, apperrors.ErrAuthenticationRequired) {
		t.Fatalf("Fetch() error = %v, want ErrAuthenticationRequired", err)
	}
	if called {
		t.Error("no request may be sent without a token")
	}
}

func TestUnauthorizedMapsToAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := NewHTTPStore(srv.URL, staticToken("expired"))
	err := store.Save(context.Background(), models.KindLogs, []models.LogEntry{})
	if !errors.Is(err, apperrors.ErrAuthenticationRequired) {
		t.Fatalf("Save() error = %v, want ErrAuthenticationRequired", err)
	}
}

func TestServerErrorSurfacesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"error": "kv quota exceeded"}`)
	}))
	defer srv.Close()

	store := NewHTTPStore(srv.URL, staticToken("tok"))
	err := store.Save(context.Background(), models.KindTasks, []models.Task{})
	if !errors.Is(err, apperrors.ErrRemoteUnavailable) {
		t.Fatalf("Save() error = %v, want ErrRemoteUnavailable", err)
	}
	if got := err.Error(); !strings.Contains(got, "kv quota exceeded") {
		t.Errorf("error %q should carry the server message", got)
	}
}

func TestSaveUnknownKind(t *testing.T) {
	store := NewHTTPStore("http://unused", staticToken("tok"))
	if err := store.Save(context.Background(), models.EntityKind("nope"), nil); err == nil {
		t.Error("Save() with unknown kind should fail")
	}
}
