package http

import (
	"net/http"

	"nearnote/internal/auth"
	"nearnote/internal/bus"
	"nearnote/internal/config"
	"nearnote/internal/geofence"
	"nearnote/internal/http/handler"
	mw "nearnote/internal/http/middleware"
	"nearnote/internal/location"
	"nearnote/internal/note"
	"nearnote/internal/notesync"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	DB       *gorm.DB
	JWT      *auth.JWT
	Store    *note.Store
	Ctl      *notesync.Controller
	Bus      *bus.Bus
	Perms    *geofence.PermissionState
	Selector *location.Selector
}

func NewRouter(cfg config.Config, d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	ah := &handler.AuthHandler{DB: d.DB, JWT: d.JWT}
	r.Post("/auth/register", ah.Register)
	r.Post("/auth/login", ah.Login)

	// OS boundary: monitor callbacks and host signals, unauthenticated.
	ph := &handler.PlatformHandler{Bus: d.Bus, Perms: d.Perms}
	r.Route("/platform", func(r chi.Router) {
		r.Post("/geofence", ph.Geofence)
		r.Post("/boot", ph.Boot)
		r.Post("/permissions", ph.Permissions)
	})

	nh := &handler.NoteHandler{Ctl: d.Ctl, Store: d.Store}
	sh := &handler.StreamHandler{Store: d.Store}
	r.Route("/notes", func(r chi.Router) {
		r.Use(auth.RequireAuth(d.JWT))

		r.Post("/", nh.Create)
		r.Get("/", nh.List)
		r.Get("/stream", sh.Stream)

		r.Get("/{id}", nh.Get)
		r.Put("/{id}", nh.Update)
		r.Delete("/{id}", nh.Delete)
	})

	lh := &handler.LocationHandler{Selector: d.Selector}
	r.Route("/location/selection", func(r chi.Router) {
		r.Use(auth.RequireAuth(d.JWT))

		r.Put("/", lh.Select)
		r.Get("/", lh.Current)
		r.Delete("/", lh.Clear)
	})

	return r
}
