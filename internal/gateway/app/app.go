package app

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"wfcatalog/internal/catalog"
	"wfcatalog/internal/export"
	"wfcatalog/internal/gateway/config"
	"wfcatalog/internal/gateway/handler"
	"wfcatalog/internal/gateway/server"
	"wfcatalog/internal/safeio"
)

type App struct {
	handler http.Handler
	server  *server.Server
}

// New loads the configuration from args and the environment and wires the
// gateway.
func New(args []string) (*App, error) {
	cfg, err := config.Load(args)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewWithConfig(cfg)
}

func NewWithConfig(cfg *config.Config) (*App, error) {
	// Dependencies
	root, err := safeio.NewOS(cfg.WorkflowsDir)
	if err != nil {
		return nil, fmt.Errorf("open workflows dir: %w", err)
	}
	routePrefix := cfg.RoutePrefix
	if routePrefix == "" {
		routePrefix = "/"
	}
	cat, err := catalog.New(root, catalog.Options{
		RoutePrefix:  routePrefix,
		CacheEntries: cfg.CacheEntries,
	})
	if err != nil {
		return nil, fmt.Errorf("init catalog: %w", err)
	}

	mirror, err := initMirror(cfg)
	if err != nil {
		return nil, err
	}
	var opts []export.Option
	if mirror != nil {
		opts = append(opts, export.WithMirror(mirror))
	}
	exporter := export.New(opts...)

	workflowHandler := handler.NewWorkflowHandler(cat)
	convertHandler := handler.NewConvertHandler(exporter, export.Request{
		SourceDir: cfg.WorkflowsDir,
		DestDir:   cfg.ExportDir,
		Glob:      export.DefaultGlob,
	})
	log.Printf("workflows dir: %s, export dir: %s, route prefix: %q", root.Root(), cfg.ExportDir, cfg.RoutePrefix)

	// Routing & Server
	mux := server.NewMux(cfg.RoutePrefix, workflowHandler, convertHandler)
	srv := server.New(cfg.Port, mux)

	return &App{
		handler: mux,
		server:  srv,
	}, nil
}

// Handler returns the routed handler without the network server around it.
func (a *App) Handler() http.Handler {
	return a.handler
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}
