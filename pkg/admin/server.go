// Package admin serves a small menu management page. Saving the form
// rewrites the catalog file on disk and, when configured, commits it to
// a GitHub repository.
package admin

import (
	"context"
	"crypto/subtle"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/makeajourney/asnisum/pkg/catalog"
	"github.com/makeajourney/asnisum/pkg/config"
	"github.com/makeajourney/asnisum/pkg/logger"
)

//go:embed page.html
var pageHTML string

// CatalogStore is the part of the catalog package the server needs.
// It is an interface so tests can watch reloads.
type CatalogStore interface {
	Current() *catalog.Catalog
	Replace(cat *catalog.Catalog) error
}

type Server struct {
	cfg     config.AdminConfig
	catalog CatalogStore
	github  *GitHubClient
	srv     *http.Server
}

func NewServer(cfg config.AdminConfig, store CatalogStore) *Server {
	s := &Server{cfg: cfg, catalog: store}
	if cfg.GitHub.Token != "" && cfg.GitHub.Owner != "" && cfg.GitHub.Repo != "" {
		s.github = NewGitHubClient(context.Background(), cfg.GitHub)
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Get("/", s.handlePage)
	r.Get("/api/menu", s.handleGetMenu)
	r.Post("/api/menu", s.handleSaveMenu)

	s.srv = &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, fmt.Sprintf("%d", cfg.Port)),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Start serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.InfoCF("admin", "Admin server listening", map[string]any{
			"addr": s.srv.Addr,
		})
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	data, err := json.Marshal(s.catalog.Current())
	if err != nil {
		http.Error(w, "catalog unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, strings.Replace(pageHTML, "{{MENU_DATA}}", string(data), 1))
}

func (s *Server) handleGetMenu(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Current())
}

type saveRequest struct {
	Action   string          `json:"action"`
	MenuData json.RawMessage `json:"menuData"`
	Password string          `json:"password"`
}

func (s *Server) handleSaveMenu(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "요청 형식이 올바르지 않습니다.")
		return
	}
	if req.Action != "save" && req.Action != "auth" {
		writeError(w, http.StatusBadRequest, "지원하지 않는 동작입니다.")
		return
	}
	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.cfg.Password)) != 1 {
		writeError(w, http.StatusUnauthorized, "비밀번호가 올바르지 않습니다.")
		return
	}
	if req.Action == "auth" {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	var cat catalog.Catalog
	if err := json.Unmarshal(req.MenuData, &cat); err != nil {
		writeError(w, http.StatusBadRequest, "메뉴 데이터를 해석할 수 없습니다.")
		return
	}
	if err := cat.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.catalog.Replace(&cat); err != nil {
		logger.ErrorCF("admin", "Catalog save failed", map[string]any{
			"error": err.Error(),
		})
		writeError(w, http.StatusInternalServerError, "저장에 실패했습니다.")
		return
	}

	if s.github != nil {
		content, err := json.MarshalIndent(&cat, "", "  ")
		if err == nil {
			err = s.github.UpdateFile(r.Context(), content, "Update menu catalog")
		}
		if err != nil {
			// Local save already succeeded; report but do not fail.
			logger.WarnCF("admin", "GitHub catalog push failed", map[string]any{
				"error": err.Error(),
			})
		}
	}

	logger.InfoC("admin", "Catalog updated")
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
