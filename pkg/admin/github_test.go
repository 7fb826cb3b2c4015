package admin

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/makeajourney/asnisum/pkg/config"
)

func newTestGitHub(t *testing.T, handler http.HandlerFunc) *GitHubClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewGitHubClient(context.Background(), config.GitHubConfig{
		Token:  "test-token",
		Owner:  "makeajourney",
		Repo:   "asnisum",
		Path:   "catalog.json",
		Branch: "main",
	})
	c.baseURL = srv.URL
	c.httpClient = srv.Client()
	return c
}

func TestUpdateFileCreatesWhenMissing(t *testing.T) {
	var put map[string]string
	client := newTestGitHub(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/makeajourney/asnisum/contents/catalog.json" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		switch r.Method {
		case http.MethodGet:
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPut:
			if err := json.NewDecoder(r.Body).Decode(&put); err != nil {
				t.Fatalf("decode PUT body: %v", err)
			}
			w.WriteHeader(http.StatusCreated)
		}
	})

	if err := client.UpdateFile(context.Background(), []byte(`{"menus":[]}`), "Update menu catalog"); err != nil {
		t.Fatalf("UpdateFile failed: %v", err)
	}
	if _, hasSHA := put["sha"]; hasSHA {
		t.Error("create must not send a sha")
	}
	if put["branch"] != "main" {
		t.Errorf("branch = %q", put["branch"])
	}
	decoded, err := base64.StdEncoding.DecodeString(put["content"])
	if err != nil || string(decoded) != `{"menus":[]}` {
		t.Errorf("content = %q (%v)", put["content"], err)
	}
}

func TestUpdateFileSendsExistingSHA(t *testing.T) {
	var put map[string]string
	client := newTestGitHub(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			if got := r.URL.Query().Get("ref"); got != "main" {
				t.Errorf("ref = %q", got)
			}
			json.NewEncoder(w).Encode(map[string]string{"sha": "abc123"})
		case http.MethodPut:
			if err := json.NewDecoder(r.Body).Decode(&put); err != nil {
				t.Fatalf("decode PUT body: %v", err)
			}
			w.WriteHeader(http.StatusOK)
		}
	})

	if err := client.UpdateFile(context.Background(), []byte("{}"), "Update menu catalog"); err != nil {
		t.Fatalf("UpdateFile failed: %v", err)
	}
	if put["sha"] != "abc123" {
		t.Errorf("sha = %q, want abc123", put["sha"])
	}
}

func TestUpdateFileSurfacesAPIError(t *testing.T) {
	client := newTestGitHub(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		http.Error(w, `{"message":"Validation Failed"}`, http.StatusUnprocessableEntity)
	})

	if err := client.UpdateFile(context.Background(), []byte("{}"), "Update menu catalog"); err == nil {
		t.Fatal("expected error from 422 response")
	}
}
