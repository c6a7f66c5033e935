package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"spotter/internal/connectivity/interfaces"
	"spotter/internal/controllers"
	"spotter/internal/providers"
	"spotter/internal/services"
	"spotter/internal/structures"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type App struct {
	WebServer *http.Server
	conf      *structures.Config
	logger    providers.Logger
	monitor   interfaces.MonitorInterface
}

func NewApp(apiController *controllers.ApiController, healthController *controllers.HealthController, monitor interfaces.MonitorInterface, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) *App {
	// Inner mux: API routes
	apiMux := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		apiMux.Handle(route.Url, route.Handler)
	}

	// Wrap API routes with metrics middleware
	instrumentedAPI := providers.MetricsMiddleware(metrics, logger, apiMux)

	// Outer mux: infrastructure + instrumented API
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", instrumentedAPI)

	return &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		conf:    conf,
		logger:  logger,
		monitor: monitor,
	}
}

// Run serves HTTP and probes connectivity until SIGINT/SIGTERM or a server
// error.
func (app *App) Run() error {
	app.logger.Infof(providers.TypeApp, "Starting %s", app.conf.AppName)

	serverErr := make(chan error, 1)
	go func() {
		app.logger.Infof(providers.TypeApp, "Listening HTTP clients on %s:%d", app.conf.WebServer.Host, app.conf.WebServer.Port)
		if err := app.WebServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// The first probe, and any reconnect flush it triggers, runs in the background.
	app.monitor.Init()
	defer app.monitor.Stop()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case <-stop:
		app.logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.WebServer.Shutdown(ctx); err != nil {
		return err
	}
	app.logger.Infof(providers.TypeApp, "gracefully stopped")
	return nil
}

// Runtime is the service graph without the HTTP server, for one-shot
// commands.
type Runtime struct {
	Config  *structures.Config
	Logger  providers.Logger
	Service services.SightingServiceInterface
	Monitor interfaces.MonitorInterface
}

func NewRuntime(conf *structures.Config, logger providers.Logger, service services.SightingServiceInterface, monitor interfaces.MonitorInterface) *Runtime {
	return &Runtime{
		Config:  conf,
		Logger:  logger,
		Service: service,
		Monitor: monitor,
	}
}

// Flush probes the remote store, which flushes on reconnect, then flushes
// again for anything queued meanwhile. It returns how many sightings left
// the queue.
func (rt *Runtime) Flush(ctx context.Context) (int, error) {
	before := rt.Service.QueueLen()

	if !rt.Monitor.Probe(ctx) {
		return 0, services.ErrOffline
	}
	_, err := rt.Service.FlushQueue(ctx)

	return before - rt.Service.QueueLen(), err
}
