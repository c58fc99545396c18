/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/login              Session
  /api/calendar           Registration calendar
  /api/registrations/*    Toggle and presence lists
  /api/presence           Manual attendance confirmation
  /api/gate/*             Serving-line scanner
  /api/blocks/*           Administrative blocks
  /api/menus/*            Daily menus
  /api/notices/*          Announcements
  /api/special/*          Bulk headcount registrations
  /api/members/*          Roster management
  /api/reports/*          Kitchen planning
  /*                      Static files (frontend)

STATIC FILE SERVING:
  Serves the built frontend from web/dist/ when present, falling back to
  index.html for client-side routing.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/erancho/mess-engine/gate"
	"github.com/erancho/mess-engine/menu"
	"github.com/erancho/mess-engine/rancho"
	"github.com/erancho/mess-engine/roster"
	"github.com/erancho/mess-engine/store/sqlite"
)

// NewHandler wires the domain services around one store. bypassCPFs names
// the accounts exempt from the schedule rules; nil means none.
func NewHandler(store *sqlite.Store, bypassCPFs map[string]bool) *Handler {
	clock := rancho.SystemClock{Location: time.Local}
	engine := rancho.Engine{Window: rancho.DefaultWindow()}

	members := &roster.Service{Store: store, BypassCPFs: bypassCPFs}
	registrations := &rancho.RegistrationService{
		Engine:        engine,
		Blocks:        store,
		Registrations: store,
		Clock:         clock,
	}

	return &Handler{
		Registrations: registrations,
		Blocks:        &rancho.BlockService{Registry: store, Clock: clock},
		Specials:      store,
		Roster:        members,
		Menus:         store,
		Notices:       &menu.NoticeService{Store: store},
		Planner:       &menu.Planner{Registrations: store, Specials: store, Menus: store},
		Gate:          &gate.Service{Members: members, Registrations: store, Clock: clock},
		Clock:         clock,
	}
}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", requesterHeader},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Post("/login", h.Login)

		r.Get("/calendar", h.GetCalendar)

		// Registration routes
		r.Route("/registrations", func(r chi.Router) {
			r.Get("/", h.ListRegistrations)
			r.Post("/toggle", h.ToggleRegistration)
		})
		r.Post("/presence", h.ConfirmPresence)

		// Gate routes
		r.Route("/gate", func(r chi.Router) {
			r.Post("/scan", h.Scan)
		})

		// Block routes
		r.Route("/blocks", func(r chi.Router) {
			r.Get("/", h.ListBlocks)
			r.Post("/", h.CreateBlock)
			r.Delete("/{date}", h.DeleteBlock)
		})

		// Menu routes
		r.Route("/menus", func(r chi.Router) {
			r.Get("/", h.ListMenus)
			r.Post("/", h.SaveMenu)
			r.Delete("/{date}", h.DeleteMenu)
		})

		// Notice routes
		r.Route("/notices", func(r chi.Router) {
			r.Get("/", h.ListNotices)
			r.Post("/", h.PublishNotice)
			r.Get("/unseen", h.UnseenNotices)
			r.Post("/{id}/seen", h.MarkNoticeSeen)
			r.Delete("/{id}", h.DeleteNotice)
		})

		// Special registration routes
		r.Route("/special", func(r chi.Router) {
			r.Get("/", h.ListSpecial)
			r.Post("/", h.CreateSpecial)
		})

		// Member routes
		r.Route("/members", func(r chi.Router) {
			r.Get("/", h.ListMembers)
			r.Post("/", h.SaveMember)
			r.Put("/{id}", h.SaveMember)
		})

		// Report routes
		r.Route("/reports", func(r chi.Router) {
			r.Get("/headcount", h.HeadcountReport)
		})
	})

	// Serve static files (frontend build)
	staticDir := "./web/dist"
	if _, err := os.Stat(staticDir); os.IsNotExist(err) {
		exe, _ := os.Executable()
		staticDir = filepath.Join(filepath.Dir(exe), "web", "dist")
	}

	if _, err := os.Stat(staticDir); err == nil {
		fileServer := http.FileServer(http.Dir(staticDir))
		r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
			fullPath := filepath.Join(staticDir, r.URL.Path)
			if _, err := os.Stat(fullPath); os.IsNotExist(err) {
				// SPA routing: serve index.html
				http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
				return
			}
			fileServer.ServeHTTP(w, r)
		})
	} else {
		r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Rancho</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Mess Hall Registration API</h1>
<p>The frontend is not built yet. Run <code>cd web && npm install && npm run build</code></p>
<h2>API Endpoints</h2>
<ul>
<li><a href="/api/menus">/api/menus</a> - Published menus</li>
<li><a href="/api/blocks">/api/blocks</a> - Blocked dates</li>
<li><a href="/api/notices">/api/notices</a> - Notices</li>
</ul>
</body>
</html>`))
		})
	}

	return r
}
