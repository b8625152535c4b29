package cli

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/vibeos/vibeos/internal/auth"
	"github.com/vibeos/vibeos/internal/constants"
	"github.com/vibeos/vibeos/internal/models"
	"github.com/vibeos/vibeos/internal/session"
	"github.com/vibeos/vibeos/internal/storage"
	"github.com/vibeos/vibeos/internal/syncer"
)

func TestLogoutClearsLocalCache(t *testing.T) {
	gokeyring.MockInit()
	if err := auth.SaveCredentials(auth.Credentials{AccessToken: "tok", UserID: "u-1", Email: "dev@example.com"}); err != nil {
		t.Fatalf("SaveCredentials() failed: %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success": true}`)
	}))
	defer srv.Close()

	local := storage.NewJSONStore(filepath.Join(t.TempDir(), "vibeos.json"))
	if err := local.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if err := local.Save(models.Snapshot{
		Tasks:    []models.Task{{ID: "t1", Text: "private task", CreatedAt: time.Now()}},
		Logs:     []models.LogEntry{{ID: "l1", Text: "private win", Date: time.Now()}},
		Settings: models.Settings{ProjectName: "PRIVATE", TargetProjects: 7},
		Timer:    models.TimerState{TotalSeconds: 500},
	}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	store := session.New()
	coord := syncer.New(nil)
	ctx := &Context{
		Store:       store,
		Local:       local,
		Coordinator: coord,
		Reconciler:  syncer.NewReconciler(store, nil, coord),
		Auth:        auth.NewClient(srv.URL),
	}

	if err := ctx.Hydrate(); err != nil {
		t.Fatalf("Hydrate() failed: %v", err)
	}
	if len(store.Tasks()) != 1 || !coord.Authenticated() {
		t.Fatal("hydration did not restore the signed-in session")
	}

	if err := (&LogoutCmd{}).Run(ctx); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if err := ctx.Shutdown(); err != nil {
		t.Fatalf("Shutdown() failed: %v", err)
	}

	// The on-disk snapshot must hold none of the signed-out user's data.
	snap, err := local.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(snap.Tasks) != 0 || len(snap.Logs) != 0 || len(snap.TimerSessions) != 0 {
		t.Errorf("cache still holds entities after logout: %+v", snap)
	}
	if snap.Timer.TotalSeconds != 0 {
		t.Errorf("cache timer = %d after logout, want 0", snap.Timer.TotalSeconds)
	}
	if snap.Settings.ProjectName != constants.DefaultProjectName {
		t.Errorf("cache settings = %q after logout, want default %q",
			snap.Settings.ProjectName, constants.DefaultProjectName)
	}

	if _, err := auth.LoadCredentials(); err == nil {
		t.Error("credentials still present after logout")
	}
	if coord.Authenticated() {
		t.Error("coordinator still authenticated after logout")
	}
}
