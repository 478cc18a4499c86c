package http

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"codeslabs/frontend/notfound"
	sessioncontext "codeslabs/frontend/shared/context"
	"codeslabs/infrastructure/api"
	"codeslabs/infrastructure/argon"
	"codeslabs/infrastructure/audit"
	"codeslabs/infrastructure/content"
	"codeslabs/infrastructure/restclient"
	"codeslabs/infrastructure/session"
	"codeslabs/infrastructure/sqlite"
)

//go:embed assets/*
var assets embed.FS

var ShutdownTimeout = 5 * time.Second

// Options are the addresses and secrets the server is started with.
type Options struct {
	Addr string
	// APIBaseURL points the site at an external content API. When empty the
	// embedded API is mounted under /api and reached over loopback.
	APIBaseURL    string
	PublicBaseURL string
	AdminKey      string
}

// Server bundles dependencies and route wiring.
type Server struct {
	Addr   string
	ln     net.Listener
	server *http.Server
	router *chi.Mux

	DB            *sqlite.DB
	Store         *content.Store
	Sessions      *session.Manager
	Keys          *argon.KeyVerifier
	Audit         *audit.Service
	Notifier      api.ContactNotifier
	API           *restclient.Client
	PublicBaseURL string
	embeddedAPI   bool
}

// NewServer wires the site, the admin console and, unless an external API
// is configured, the content API.
func NewServer(opts Options, db *sqlite.DB, store *content.Store, sessions *session.Manager, keys *argon.KeyVerifier, auditSvc *audit.Service, notifier api.ContactNotifier) *Server {
	apiBase := strings.TrimSpace(opts.APIBaseURL)
	embedded := apiBase == ""
	if embedded {
		apiBase = "http://" + loopbackAddr(opts.Addr) + "/api"
	}

	s := &Server{
		Addr:          opts.Addr,
		router:        chi.NewRouter(),
		DB:            db,
		Store:         store,
		Sessions:      sessions,
		Keys:          keys,
		Audit:         auditSvc,
		Notifier:      notifier,
		API:           restclient.New(apiBase, opts.AdminKey),
		PublicBaseURL: strings.TrimRight(opts.PublicBaseURL, "/"),
		embeddedAPI:   embedded,
		server: &http.Server{
			MaxHeaderBytes:    1 << 20,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}

	// Secure headers first.
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			next.ServeHTTP(w, r)
		})
	})

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(s.CSRFMiddleware)

	s.router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Serve assets from embedded FS.
	var assetsFS fs.FS = assets
	if sub, err := fs.Sub(assets, "assets"); err == nil {
		assetsFS = sub
	} else {
		slog.Error("assets subfs init failed; serving fallback fs", slog.Any("err", err))
	}
	s.router.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(assetsFS))))

	if embedded {
		s.router.Mount("/api", api.NewHandler(store, keys, notifier).Routes())
	}

	s.router.Group(func(r chi.Router) {
		r.Use(s.LoadSessionMiddleware)
		s.RegisterPublicRoutes(r)
		r.Route("/admin", func(r chi.Router) {
			s.RegisterLoginRoutes(r)
			r.Group(func(r chi.Router) {
				r.Use(s.RequireAdminMiddleware)
				s.RegisterAdminRoutes(r)
			})
		})
	})

	s.router.NotFound(notfound.Handler)

	s.server.Handler = s.router
	return s
}

// Router exposes the root handler.
func (s *Server) Router() http.Handler {
	return s.router
}

// LoadSessionMiddleware attaches the admin session to the request context
// when the cookie resolves. Stale cookies are cleared.
func (s *Server) LoadSessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(session.CookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}
		adminSession, err := s.Sessions.Resolve(r.Context(), cookie.Value)
		if err != nil {
			if !errors.Is(err, session.ErrNoSession) {
				slog.Error("resolve admin session failed", slog.Any("err", err))
			}
			http.SetCookie(w, session.ClearCookie())
			next.ServeHTTP(w, r)
			return
		}
		ctx := sessioncontext.NewContextWithSession(r.Context(), adminSession)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdminMiddleware sends visitors without a session to the login page.
func (s *Server) RequireAdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !sessioncontext.IsAdmin(r.Context()) {
			slog.Warn("admin route without session", slog.String("method", r.Method), slog.String("path", r.URL.Path))
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// PurgeSessions removes expired admin sessions every interval until ctx ends.
func (s *Server) PurgeSessions(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.Sessions.PurgeExpired(ctx)
			if err != nil {
				slog.Error("purge admin sessions failed", slog.Any("err", err))
				continue
			}
			if n > 0 {
				slog.Info("purged expired admin sessions", slog.Int("count", n))
			}
		}
	}
}

// loopbackAddr turns a listen address into one the server can dial itself
// on: ":8080" and "0.0.0.0:8080" become "127.0.0.1:8080".
func loopbackAddr(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "127.0.0.1"
	}
	return net.JoinHostPort(host, port)
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	var err error
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	go func() {
		if err := s.server.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server stopped", slog.Any("err", err))
		}
	}()
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.ln == nil {
		return fmt.Errorf("HTTP server has not been started or is already stopped")
	}
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}
	s.ln = nil
	return nil
}
