package workflows

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/nainglynndw/securedenv/internal/configs"
	serrors "github.com/nainglynndw/securedenv/internal/errors"
)

// fakeRemote is an in-memory contents API for push/pull tests.
type fakeRemote struct {
	objects   map[string][]byte
	revisions map[string]string
	nextRev   int
}

func (f *fakeRemote) store(path string, content []byte) {
	f.nextRev++
	f.objects[path] = content
	f.revisions[path] = fmt.Sprintf("rev-%d", f.nextRev)
}

func (f *fakeRemote) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const prefix = "/repos/alice/backups/contents/"
		path := r.URL.Path[len(prefix):]

		switch r.Method {
		case http.MethodGet:
			content, ok := f.objects[path]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]string{
				"content": base64.StdEncoding.EncodeToString(content),
				"sha":     f.revisions[path],
			})

		case http.MethodPut:
			var req struct {
				Content string `json:"content"`
				SHA     string `json:"sha"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}

			current, exists := f.revisions[path]
			if exists && req.SHA != current {
				w.WriteHeader(http.StatusConflict)
				return
			}

			content, err := base64.StdEncoding.DecodeString(req.Content)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}

			status := http.StatusOK
			if !exists {
				status = http.StatusCreated
			}
			f.store(path, content)
			w.WriteHeader(status)
			fmt.Fprint(w, `{}`)
		}
	}
}

// setupRemote starts a fake remote, configures it as the user's remote,
// and routes workflow clients at it.
func setupRemote(t *testing.T) *fakeRemote {
	t.Helper()

	fake := &fakeRemote{
		objects:   make(map[string][]byte),
		revisions: make(map[string]string),
	}
	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)

	originalBase := remoteBaseURL
	remoteBaseURL = server.URL
	t.Cleanup(func() {
		remoteBaseURL = originalBase
	})

	config := &configs.UserConfig{}
	config.Remote.Repository = "alice/backups"
	config.Remote.Token = "test-token"
	if err := configs.SaveUserConfig(config); err != nil {
		t.Fatalf("failed to save remote config: %v", err)
	}

	return fake
}

func TestPushCreatesRemoteObject(t *testing.T) {
	root := setupTest(t)
	fake := setupRemote(t)
	writeEnvFile(t, root, ".env", "A=1\n")

	result, err := Push(context.Background(), PushOptions{
		KeyOptions:  KeyOptions{Password: testPassword},
		ProjectRoot: root,
	})
	if err != nil {
		t.Fatalf("push failed: %v", err)
	}

	if !result.Created {
		t.Error("first push should report a created object")
	}
	if result.RemotePath != "myapp/backup.senv" {
		t.Errorf("unexpected remote path %q", result.RemotePath)
	}

	// The uploaded bytes must be exactly the local container.
	local, err := os.ReadFile(configs.ContainerPath(result.Project.Hash))
	if err != nil {
		t.Fatal(err)
	}
	if string(fake.objects["myapp/backup.senv"]) != string(local) {
		t.Error("remote object differs from the local container")
	}
}

func TestPushUpdatesExistingObject(t *testing.T) {
	root := setupTest(t)
	setupRemote(t)
	writeEnvFile(t, root, ".env", "A=1\n")

	if _, err := Push(context.Background(), PushOptions{
		KeyOptions:  KeyOptions{Password: testPassword},
		ProjectRoot: root,
	}); err != nil {
		t.Fatalf("first push failed: %v", err)
	}

	writeEnvFile(t, root, ".env", "A=2\n")
	result, err := Push(context.Background(), PushOptions{
		KeyOptions:  KeyOptions{Password: testPassword},
		ProjectRoot: root,
	})
	if err != nil {
		t.Fatalf("second push failed: %v", err)
	}
	if result.Created {
		t.Error("second push should update, not create")
	}
}

func TestPushWithoutRemote(t *testing.T) {
	root := setupTest(t)
	writeEnvFile(t, root, ".env", "A=1\n")

	_, err := Push(context.Background(), PushOptions{
		KeyOptions:  KeyOptions{Password: testPassword},
		ProjectRoot: root,
	})
	if !errors.Is(err, serrors.ErrRemoteNotConfigured) {
		t.Fatalf("expected ErrRemoteNotConfigured, got %v", err)
	}
}

func TestPullRestoresFromRemote(t *testing.T) {
	root := setupTest(t)
	setupRemote(t)
	writeEnvFile(t, root, ".env", "A=1\n")
	writeEnvFile(t, root, ".env.prod", "B=2\n")

	result, err := Push(context.Background(), PushOptions{
		KeyOptions:  KeyOptions{Password: testPassword},
		ProjectRoot: root,
	})
	if err != nil {
		t.Fatalf("push failed: %v", err)
	}

	// Simulate a fresh machine: wipe local container and working copies.
	if err := os.RemoveAll(configs.ProjectStoragePath(result.Project.Hash)); err != nil {
		t.Fatal(err)
	}
	os.Remove(filepath.Join(root, ".env"))
	os.Remove(filepath.Join(root, ".env.prod"))

	pull, err := Pull(context.Background(), PullOptions{
		KeyOptions:  KeyOptions{Password: testPassword},
		ProjectRoot: root,
	})
	if err != nil {
		t.Fatalf("pull failed: %v", err)
	}
	if !reflect.DeepEqual(pull.Files, []string{".env", ".env.prod"}) {
		t.Errorf("unexpected pulled files: %v", pull.Files)
	}

	if got := readEnvFile(t, root, ".env"); got != "A=1\n" {
		t.Errorf("pulled .env = %q", got)
	}
	if got := readEnvFile(t, root, ".env.prod"); got != "B=2\n" {
		t.Errorf("pulled .env.prod = %q", got)
	}

	// The pull must also repopulate the local container.
	if _, err := os.Stat(pull.ContainerPath); err != nil {
		t.Errorf("local container not restored: %v", err)
	}
}

func TestPullNoRemoteObject(t *testing.T) {
	root := setupTest(t)
	setupRemote(t)

	_, err := Pull(context.Background(), PullOptions{
		KeyOptions:  KeyOptions{Password: testPassword},
		ProjectRoot: root,
	})
	if !errors.Is(err, serrors.ErrRemoteNotFound) {
		t.Fatalf("expected ErrRemoteNotFound, got %v", err)
	}
}

func TestPullWrongPasswordKeepsWorkingTree(t *testing.T) {
	root := setupTest(t)
	setupRemote(t)
	writeEnvFile(t, root, ".env", "A=1\n")

	if _, err := Push(context.Background(), PushOptions{
		KeyOptions:  KeyOptions{Password: testPassword},
		ProjectRoot: root,
	}); err != nil {
		t.Fatalf("push failed: %v", err)
	}

	writeEnvFile(t, root, ".env", "LOCAL_EDIT=1\n")

	_, err := Pull(context.Background(), PullOptions{
		KeyOptions:  KeyOptions{Password: "N0tTheSame!Key1"},
		ProjectRoot: root,
	})
	if !errors.Is(err, serrors.ErrDecryptionFailed) {
		t.Fatalf("expected ErrDecryptionFailed, got %v", err)
	}
	if got := readEnvFile(t, root, ".env"); got != "LOCAL_EDIT=1\n" {
		t.Errorf("working copy modified by failed pull: %q", got)
	}
}
