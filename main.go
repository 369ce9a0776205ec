// Command retro-tactics starts the Retro Tactics game server.
//
// It supports two modes:
//  1. "server" (default) runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "stdio-mcp" runs an MCP stdio server and spins up an internal HTTP API if none is available
//
// Flags (each with an environment fallback) control host/port, config
// directory, storage backend, debug logging, and optional ngrok tunneling.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/retro-tactics/api"
	"github.com/wricardo/retro-tactics/game/config"
	"github.com/wricardo/retro-tactics/game/service"
	"github.com/wricardo/retro-tactics/game/session"
	"github.com/wricardo/retro-tactics/game/storage"
	"github.com/wricardo/retro-tactics/pkg/logger"
	"github.com/wricardo/retro-tactics/transport/mcp"
	"github.com/wricardo/retro-tactics/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Retro Tactics Server"
)

const (
	sessionMaxAge       = 24 * time.Hour
	cleanupInterval     = 1 * time.Hour
	syncInterval        = 1 * time.Minute
	defaultExternalAPI  = "http://localhost:8080"
	defaultStoragePath  = "retro-tactics.db"
	defaultConfigFolder = "configs"
)

// options is the resolved command line
type options struct {
	Port        int
	Host        string
	ConfigDir   string
	Storage     string
	StoragePath string
	Debug       bool
	Ngrok       bool
	NgrokAuth   string
	NgrokDomain string
}

func (o options) addr() string {
	return fmt.Sprintf("%s:%d", o.Host, o.Port)
}

// services is everything the transports need
type services struct {
	game     service.GameService
	sessions *session.Manager
	store    storage.Storage
}

// Close flushes sessions and releases the store
func (s *services) Close() {
	if err := s.sessions.SaveAllSessions(); err != nil {
		logger.Log.WithError(err).Warn("Failed to save sessions on shutdown")
	}
	if err := s.store.Close(); err != nil {
		logger.Log.WithError(err).Warn("Failed to close storage")
	}
}

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
	}

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		logger.Log.Fatal(err)
	}
}

// newApp builds the command tree. The root command runs the HTTP server.
func newApp() *cli.Command {
	return &cli.Command{
		Name:    "retro-tactics",
		Usage:   AppName,
		Version: Version,
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "port", Value: 8080, Usage: "HTTP server port", Sources: cli.EnvVars("PORT")},
			&cli.StringFlag{Name: "host", Value: "localhost", Usage: "HTTP server host", Sources: cli.EnvVars("HOST")},
			&cli.StringFlag{Name: "config-dir", Value: defaultConfigFolder, Usage: "Directory containing game configurations", Sources: cli.EnvVars("CONFIG_DIR")},
			&cli.StringFlag{Name: "storage", Value: storage.BackendSQLite, Usage: "Storage backend: memory, file or sqlite", Sources: cli.EnvVars("STORAGE")},
			&cli.StringFlag{Name: "storage-path", Value: defaultStoragePath, Usage: "Database file (sqlite) or directory (file)", Sources: cli.EnvVars("STORAGE_PATH")},
			&cli.BoolFlag{Name: "debug", Usage: "Enable debug logging", Sources: cli.EnvVars("DEBUG")},
			&cli.BoolFlag{Name: "ngrok", Usage: "Enable ngrok tunnel", Sources: cli.EnvVars("NGROK_ENABLED")},
			&cli.StringFlag{Name: "ngrok-auth", Usage: "Ngrok auth token", Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN")},
			&cli.StringFlag{Name: "ngrok-domain", Usage: "Custom ngrok domain (optional)", Sources: cli.EnvVars("NGROK_DOMAIN")},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logger.Init()
			if cmd.Bool("debug") {
				logger.SetDebug()
			}
			return ctx, nil
		},
		Action: runServerCommand,
		Commands: []*cli.Command{
			{
				Name:    "server",
				Aliases: []string{"http"},
				Usage:   "Run HTTP server with API, WebSocket, and MCP endpoint",
				Action:  runServerCommand,
			},
			{
				Name:    "stdio-mcp",
				Aliases: []string{"mcp-stdio", "mcp"},
				Usage:   "Run MCP stdio server with internal HTTP server",
				Action:  runStdioCommand,
			},
		},
	}
}

func optionsFrom(cmd *cli.Command) options {
	return options{
		Port:        cmd.Int("port"),
		Host:        cmd.String("host"),
		ConfigDir:   cmd.String("config-dir"),
		Storage:     cmd.String("storage"),
		StoragePath: cmd.String("storage-path"),
		Debug:       cmd.Bool("debug"),
		Ngrok:       cmd.Bool("ngrok"),
		NgrokAuth:   cmd.String("ngrok-auth"),
		NgrokDomain: cmd.String("ngrok-domain"),
	}
}

func runServerCommand(ctx context.Context, cmd *cli.Command) error {
	opts := optionsFrom(cmd)
	logger.Log.WithField("mode", "server").Infof("Starting %s v%s", AppName, Version)

	svc, err := initializeServices(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer svc.Close()

	return runHTTPServer(ctx, opts, svc.game)
}

func runStdioCommand(ctx context.Context, cmd *cli.Command) error {
	opts := optionsFrom(cmd)
	logger.Log.WithField("mode", "stdio-mcp").Infof("Starting %s v%s", AppName, Version)

	svc, err := initializeServices(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer svc.Close()

	return runStdioMCPWithInternalServer(svc.game, defaultExternalAPI)
}

// newRouter mounts the REST API at root and the MCP proxy at /mcp
func newRouter(gameService service.GameService, hub *websocket.Hub, mcpClient *mcp.Client) http.Handler {
	apiServer := api.NewServer(gameService, hub)

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)

	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})

	return mainRouter
}

// runHTTPServer serves until SIGINT or SIGTERM, tunneling through ngrok
// when enabled
func runHTTPServer(ctx context.Context, opts options, gameService service.GameService) error {
	log := logger.Log.WithField("component", "http")

	hub := websocket.NewHub()
	go hub.Run()

	addr := opts.addr()
	mainRouter := newRouter(gameService, hub, mcp.NewClient("http://"+addr))

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	serveErr := make(chan error, 1)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.WithFields(logrus.Fields{
			"rest":      fmt.Sprintf("http://%s/api", addr),
			"websocket": fmt.Sprintf("ws://%s/ws?session=<session_id>", addr),
			"mcp":       fmt.Sprintf("http://%s/mcp", addr),
		}).Infof("HTTP server listening on %s", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	if opts.Ngrok {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(ctx, opts, mainRouter)
		}()
	}

	var runErr error
	select {
	case sig := <-stop:
		log.WithField("signal", sig.String()).Info("Shutting down")
	case err := <-serveErr:
		runErr = fmt.Errorf("HTTP server failed: %w", err)
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("HTTP server shutdown error")
	}

	wg.Wait()
	log.Info("Server stopped")
	return runErr
}

// runNgrokTunnel serves the router through an ngrok endpoint until ctx ends
func runNgrokTunnel(ctx context.Context, opts options, handler http.Handler) {
	log := logger.Log.WithField("component", "ngrok")

	if opts.NgrokAuth == "" {
		log.Warn("Ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN)")
		return
	}

	var tunnel ngrokConfig.Tunnel
	if opts.NgrokDomain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(opts.NgrokDomain))
		log.WithField("domain", opts.NgrokDomain).Info("Using custom ngrok domain")
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(opts.NgrokAuth))
	if err != nil {
		log.WithError(err).Error("Failed to start ngrok tunnel")
		return
	}

	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			log.WithError(err).Warn("Failed to close ngrok tunnel")
		}
	}()

	url := tun.URL()
	log.WithFields(logrus.Fields{
		"rest":      url + "/api",
		"websocket": url + "/ws?session=<session_id>",
		"mcp":       url + "/mcp",
	}).Infof("Ngrok tunnel established: %s", url)

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed && ctx.Err() == nil {
		log.WithError(err).Warn("Ngrok server error")
	}
	log.Info("Ngrok tunnel closed")
}

// initializeServices wires storage, session and config managers and the game
// service. Background routines prune stale sessions and flush live ones until
// ctx ends.
func initializeServices(ctx context.Context, opts options) (*services, error) {
	configManager, err := config.NewManager(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	store, err := storage.New(opts.Storage, opts.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", opts.Storage, err)
	}

	sessionManager := session.NewManagerWithPersistence(store)
	if err := sessionManager.LoadPersistedSessions(); err != nil {
		logger.Log.WithError(err).Warn("Failed to load persisted sessions")
	}

	gameService := service.NewGameService(sessionManager, configManager)

	go sessionCleanupRoutine(ctx, sessionManager, cleanupInterval)
	if opts.Storage != storage.BackendMemory {
		go sessionSyncRoutine(ctx, sessionManager, syncInterval)
	}

	return &services{game: gameService, sessions: sessionManager, store: store}, nil
}

// sessionCleanupRoutine periodically removes sessions that have not been
// accessed within sessionMaxAge
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpiredSessions(sessionMaxAge); removed > 0 {
				logger.Log.WithField("count", removed).Info("Cleaned up expired sessions")
			}
		}
	}
}

// sessionSyncRoutine periodically writes live sessions to the store
func sessionSyncRoutine(ctx context.Context, manager *session.Manager, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := manager.SaveAllSessions(); err != nil {
				logger.Log.WithError(err).Warn("Session sync failed")
			}
		}
	}
}

// externalAPIAvailable reports whether a server already answers at baseURL
func externalAPIAvailable(baseURL string) bool {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// runStdioMCPWithInternalServer runs an MCP stdio server against externalURL
// when a server answers there, otherwise against an internal HTTP API bound
// to a random loopback port
func runStdioMCPWithInternalServer(gameService service.GameService, externalURL string) error {
	log := logger.Log.WithField("component", "stdio-mcp")

	baseURL := externalURL
	if externalAPIAvailable(externalURL) {
		log.WithField("url", externalURL).Info("External API server found, using it for MCP")
	} else {
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}

		internalAddr := listener.Addr().String()
		log.WithField("addr", internalAddr).Info("No external API server found, starting internal HTTP server")

		hub := websocket.NewHub()
		go hub.Run()

		httpServer := &http.Server{Handler: api.NewServer(gameService, hub)}
		defer httpServer.Close()

		go func() {
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				log.WithError(err).Error("Internal HTTP server error")
			}
		}()

		baseURL = "http://" + internalAddr
	}

	mcpClient := mcp.NewClient(baseURL)
	log.WithField("api", baseURL).Info("MCP stdio server ready")

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}
