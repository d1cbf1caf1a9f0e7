package remote

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	serrors "github.com/nainglynndw/securedenv/internal/errors"
)

// fakeContentsAPI is an in-memory stand-in for the hosted contents API.
type fakeContentsAPI struct {
	objects   map[string][]byte
	revisions map[string]string
	nextRev   int
}

func newFakeContentsAPI() *fakeContentsAPI {
	return &fakeContentsAPI{
		objects:   make(map[string][]byte),
		revisions: make(map[string]string),
	}
}

func (f *fakeContentsAPI) put(path string, content []byte) {
	f.nextRev++
	f.objects[path] = content
	f.revisions[path] = fmt.Sprintf("rev-%d", f.nextRev)
}

func (f *fakeContentsAPI) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("missing bearer token, got %q", r.Header.Get("Authorization"))
		}

		const prefix = "/repos/alice/backups/contents/"
		if len(r.URL.Path) <= len(prefix) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		path := r.URL.Path[len(prefix):]

		switch r.Method {
		case http.MethodGet:
			content, ok := f.objects[path]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `{"message":"Not Found"}`)
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
				fmt.Fprint(w, `{"message":"is at a different revision"}`)
				return
			}
			if !exists && req.SHA != "" {
				w.WriteHeader(http.StatusUnprocessableEntity)
				fmt.Fprint(w, `{"message":"sha provided for missing object"}`)
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
			f.put(path, content)
			w.WriteHeader(status)
			fmt.Fprint(w, `{}`)

		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}
}

func newTestClient(t *testing.T, api *fakeContentsAPI) *Client {
	t.Helper()
	server := httptest.NewServer(api.handler(t))
	t.Cleanup(server.Close)

	return New(Config{
		Repository: "alice/backups",
		Token:      "test-token",
		BaseURL:    server.URL,
	})
}

func TestGetBlobFound(t *testing.T) {
	api := newFakeContentsAPI()
	api.put("myapp/backup.senv", []byte("container-bytes"))

	client := newTestClient(t, api)

	blob, err := client.GetBlob(context.Background(), "myapp/backup.senv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(blob.Content) != "container-bytes" {
		t.Errorf("unexpected content %q", blob.Content)
	}
	if blob.Revision == "" {
		t.Error("expected a revision marker")
	}
}

func TestGetBlobNotFound(t *testing.T) {
	client := newTestClient(t, newFakeContentsAPI())

	_, err := client.GetBlob(context.Background(), "myapp/backup.senv")
	if !errors.Is(err, serrors.ErrRemoteNotFound) {
		t.Fatalf("expected ErrRemoteNotFound, got %v", err)
	}
}

func TestPutBlobCreate(t *testing.T) {
	api := newFakeContentsAPI()
	client := newTestClient(t, api)

	err := client.PutBlob(context.Background(), "myapp/backup.senv", []byte("v1"), "", "initial push")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(api.objects["myapp/backup.senv"]) != "v1" {
		t.Error("object was not stored")
	}
}

func TestPutBlobConditionalUpdate(t *testing.T) {
	api := newFakeContentsAPI()
	api.put("myapp/backup.senv", []byte("v1"))

	client := newTestClient(t, api)

	blob, err := client.GetBlob(context.Background(), "myapp/backup.senv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = client.PutBlob(context.Background(), "myapp/backup.senv", []byte("v2"), blob.Revision, "update")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(api.objects["myapp/backup.senv"]) != "v2" {
		t.Error("object was not updated")
	}
}

func TestPutBlobStaleRevisionConflict(t *testing.T) {
	api := newFakeContentsAPI()
	api.put("myapp/backup.senv", []byte("v1"))

	client := newTestClient(t, api)

	blob, err := client.GetBlob(context.Background(), "myapp/backup.senv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Another machine pushes in between.
	api.put("myapp/backup.senv", []byte("v2"))

	err = client.PutBlob(context.Background(), "myapp/backup.senv", []byte("v3"), blob.Revision, "update")
	if !errors.Is(err, serrors.ErrRemoteConflict) {
		t.Fatalf("expected ErrRemoteConflict, got %v", err)
	}
	if string(api.objects["myapp/backup.senv"]) != "v2" {
		t.Error("conflicting push must not overwrite the remote object")
	}
}

func TestGetBlobWrappedBase64(t *testing.T) {
	// The real API wraps base64 content across lines.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		encoded := base64.StdEncoding.EncodeToString([]byte("wrapped-content"))
		mid := len(encoded) / 2
		_ = json.NewEncoder(w).Encode(map[string]string{
			"content": encoded[:mid] + "\n" + encoded[mid:],
			"sha":     "rev-1",
		})
	}))
	t.Cleanup(server.Close)

	client := New(Config{Repository: "alice/backups", Token: "t", BaseURL: server.URL})

	blob, err := client.GetBlob(context.Background(), "myapp/backup.senv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(blob.Content) != "wrapped-content" {
		t.Errorf("unexpected content %q", blob.Content)
	}
}

func TestContentsURLEscaping(t *testing.T) {
	client := New(Config{Repository: "alice/backups", BaseURL: "https://example.test"})

	url := client.contentsURL("my app/backup.senv")
	want := "https://example.test/repos/alice/backups/contents/my%20app/backup.senv"
	if url != want {
		t.Errorf("expected %q, got %q", want, url)
	}
}
