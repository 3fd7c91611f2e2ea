package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"nearnote/internal/auth"
	"nearnote/internal/bootstrap"
	"nearnote/internal/bus"
	"nearnote/internal/config"
	"nearnote/internal/db"
	"nearnote/internal/geofence"
	httpx "nearnote/internal/http"
	"nearnote/internal/jobs"
	"nearnote/internal/location"
	"nearnote/internal/note"
	"nearnote/internal/notesync"
	"nearnote/internal/notify"
	"nearnote/internal/trigger"
)

func main() {
	app := &cli.App{
		Name:  "nearnote",
		Usage: "location-triggered note reminders",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the agent: note API, platform webhooks, resync worker",
				Action: serve,
			},
			{
				Name:   "resync",
				Usage:  "Run one full geofence reconciliation and exit",
				Action: resyncOnce,
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serve(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	gdb, err := db.Connect(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if err := db.AutoMigrateAndIndexes(gdb); err != nil {
		return err
	}

	store := note.NewStore(gdb)
	perms := geofence.NewPermissionState(cfg.PermissionsGranted)
	registry := geofence.NewClient(cfg.MonitorURL, cfg.MonitorCallbackURL, perms)
	ctl := &notesync.Controller{Store: store, Registry: registry}

	var notifier notify.Notifier = notify.LogNotifier{}
	if cfg.NotifyWebhookURL != "" {
		notifier = notify.NewWebhookNotifier(cfg.NotifyWebhookURL, cfg.PublicBaseURL)
	}

	var geocoder location.Geocoder = location.NoGeocoder{}
	if cfg.GeocoderURL != "" {
		geocoder = location.NewHTTPGeocoder(cfg.GeocoderURL)
	}
	selector := location.NewSelector(geocoder)

	jwtSvc := auth.NewJWT(cfg.JWTSecret)
	b := bus.New()

	r := httpx.NewRouter(cfg, httpx.Deps{
		DB:       gdb,
		JWT:      jwtSvc,
		Store:    store,
		Ctl:      ctl,
		Bus:      b,
		Perms:    perms,
		Selector: selector,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// trigger source subscribers
	boot := &bootstrap.Listener{Bus: b, Resync: ctl.ResyncAll}
	go boot.Run(ctx)

	tl := &trigger.Listener{Bus: b, Handler: &trigger.Handler{Store: store, Notifier: notifier}}
	go tl.Run(ctx)

	// worker
	jobsRepo := &jobs.Repo{DB: gdb}
	worker := &jobs.Worker{ID: "worker-1", Repo: jobsRepo, Resync: ctl.ResyncAll, EnqueueEvery: cfg.ResyncInterval}
	go worker.Run(ctx)

	// app start: bring the registered-region set in line with the store
	if err := jobsRepo.EnqueueResync("startup", time.Now()); err != nil {
		log.Printf("enqueue startup resync: %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("listening on %s\n", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
	return nil
}

func resyncOnce(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	gdb, err := db.Connect(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if err := db.AutoMigrateAndIndexes(gdb); err != nil {
		return err
	}

	store := note.NewStore(gdb)
	perms := geofence.NewPermissionState(cfg.PermissionsGranted)
	registry := geofence.NewClient(cfg.MonitorURL, cfg.MonitorCallbackURL, perms)
	ctl := &notesync.Controller{Store: store, Registry: registry}

	if err := ctl.ResyncAll(context.Background()); err != nil {
		return err
	}
	// registry calls are fire-and-forget; give them a moment to land
	time.Sleep(2 * time.Second)
	return nil
}
