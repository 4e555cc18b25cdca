// Command ptp-core runs the autonomous decision engine's tick loop and
// exposes its live state over a debug HTTP API, a WebSocket event
// stream, and an MCP tool server.
//
// It supports two subcommands:
//  1. "serve" (default) – runs the tick loop in the background while
//     exposing the debug API, WebSocket hub, and an /mcp HTTP bridge.
//  2. "stdio-mcp" – runs the tick loop in the background and serves the
//     MCP tool server over stdio, for direct use by an MCP-speaking
//     language-model client.
//
// Flags control the run's configuration document, save directory,
// host/port, debug logging, and optional ngrok tunneling for external
// access during development.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"

	"github.com/wojons/ptp-core/api"
	"github.com/wojons/ptp-core/internal/collab"
	"github.com/wojons/ptp-core/internal/config"
	"github.com/wojons/ptp-core/internal/goap"
	"github.com/wojons/ptp-core/internal/loop"
	"github.com/wojons/ptp-core/internal/memory"
	"github.com/wojons/ptp-core/internal/savestate"
	"github.com/wojons/ptp-core/transport/mcp"
	"github.com/wojons/ptp-core/transport/websocket"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"
)

const (
	appVersion = "1.0.0"
	appName    = "ptp-core"
)

// runtime bundles every collaborator the tick loop, the debug API, and
// the MCP surface all share: one Controller, wired once per process.
type runtime struct {
	controller *loop.Controller
	hub        *websocket.Hub
	cfg        *config.RuntimeConfig
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: error loading .env file: %v", err)
	}

	cmd := &cli.Command{
		Name:    appName,
		Usage:   "run the monster-battling decision engine",
		Version: appVersion,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "host", Value: "localhost", Usage: "debug HTTP server host"},
			&cli.IntFlag{Name: "port", Value: 8080, Usage: "debug HTTP server port"},
			&cli.StringFlag{Name: "config-dir", Value: getConfigDirDefault(), Usage: "directory containing run configuration YAML files"},
			&cli.StringFlag{Name: "config", Value: "default", Usage: "name of the configuration document to load"},
			&cli.StringFlag{Name: "save-dir", Value: getSaveDirDefault(), Usage: "directory for save-state snapshots"},
			&cli.BoolFlag{Name: "debug", Usage: "enable debug logging"},
			&cli.BoolFlag{Name: "ngrok", Usage: "enable an ngrok tunnel (or set NGROK_ENABLED=1)"},
			&cli.StringFlag{Name: "ngrok-auth", Usage: "ngrok auth token (or NGROK_AUTHTOKEN env var)"},
			&cli.StringFlag{Name: "ngrok-domain", Usage: "custom ngrok domain (optional)"},
		},
		Commands: []*cli.Command{
			{
				Name:  "stdio-mcp",
				Usage: "run the MCP tool server over stdio",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runStdioMCP(ctx, cmd)
				},
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runServe(ctx, cmd)
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatalf("%v", err)
	}
}

func getConfigDirDefault() string {
	if dir := os.Getenv("CONFIG_DIR"); dir != "" {
		return dir
	}
	return "configs"
}

func getSaveDirDefault() string {
	if dir := os.Getenv("SAVE_DIR"); dir != "" {
		return dir
	}
	return "snapshots"
}

// buildRuntime loads the run's configuration document and wires every
// collaborator the tick loop needs: in-memory emulator/vision/dialogue
// doubles (this repo ships no real emulator integration), the
// save-state manager, the three memory tiers, the hierarchical
// planner, and the Controller itself.
func buildRuntime(cmd *cli.Command) (*runtime, error) {
	if cmd.Bool("debug") {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(log.LstdFlags)
	}

	cfg, err := loadConfig(cmd.String("config-dir"), cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	if err := os.MkdirAll(cmd.String("save-dir"), 0o755); err != nil {
		return nil, fmt.Errorf("create save directory: %w", err)
	}
	snapshots, err := savestate.NewManager(cmd.String("save-dir"), cfg.Save.MaxSnapshots)
	if err != nil {
		return nil, fmt.Errorf("open save-state manager: %w", err)
	}

	emulator := collab.NewInMemoryEmulator()
	vision := &collab.InMemoryVision{}
	dialogue := collab.NewDefaultDialogueAdaptor()

	dispatcher := loop.NewActionDispatcher(context.Background(), emulator, dialogue)
	planner := goap.NewHierarchicalPlanner(dispatcher)

	observer := memory.NewObserverMemory()
	strategist := memory.NewStrategistMemory(uuid.NewString())
	tactician := memory.NewTacticianMemory()

	controller := loop.NewController(
		emulator, vision, dialogue, planner,
		observer, strategist, tactician, snapshots,
		loop.TickRate{
			BaseHz:    cfg.TickRate.Base,
			BattleHz:  cfg.TickRate.Battle,
			TimeoutMS: cfg.TickRate.Timeout,
			Adaptive:  cfg.TickRate.Adaptive,
		},
		loop.Limits{
			MaxTicks:         cfg.Limits.MaxTicks,
			MaxCostUSD:       cfg.Limits.MaxCost,
			MaxPokemon:       cfg.Limits.MaxPokemon,
			MaxBadges:        cfg.Limits.MaxBadges,
			MaxLevel:         cfg.Limits.MaxLevel,
			OnLimit:          onLimitPolicy(cfg.Limits.OnLimit),
			GracePeriodTicks: cfg.Limits.GracePeriod,
		},
	)
	controller.Budget = loop.BudgetAccount{
		Window:   loop.BudgetWindow(cfg.TickRate.Budget),
		LimitUSD: cfg.TickRate.BudgetLimit,
	}

	hub := websocket.NewHub()
	go hub.Run()

	return &runtime{controller: controller, hub: hub, cfg: cfg}, nil
}

func onLimitPolicy(name string) loop.OnLimitPolicy {
	switch name {
	case string(loop.OnLimitSaveAndExit):
		return loop.OnLimitSaveAndExit
	case string(loop.OnLimitSaveOnly):
		return loop.OnLimitSaveOnly
	default:
		return loop.OnLimitAbort
	}
}

// loadConfig opens a config.Manager over dir and loads the named
// document, falling back to the built-in default when dir itself does
// not exist (e.g. a first run with no configs/ directory checked in
// yet).
func loadConfig(dir, name string) (*config.RuntimeConfig, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return config.Default(), nil
	}
	manager, err := config.NewManager(dir)
	if err != nil {
		return nil, err
	}
	return manager.LoadConfig(name)
}

// runServe runs the tick loop in the background while serving the
// debug API, WebSocket hub, and an /mcp HTTP bridge, mirroring the
// teacher's graceful-shutdown and optional-ngrok shape.
func runServe(ctx context.Context, cmd *cli.Command) error {
	rt, err := buildRuntime(cmd)
	if err != nil {
		return err
	}

	apiServer := api.NewServer(rt.controller, rt.hub)
	mcpClient := mcp.NewClient(rt.controller)

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			log.Printf("mcp response encode error: %v", err)
		}
	})

	addr := fmt.Sprintf("%s:%d", cmd.String("host"), cmd.Int("port"))
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup
	result := make(chan loop.RunResult, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()
		result <- rt.controller.Run(runCtx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("debug API listening on %s", addr)
		log.Printf("REST API: http://%s/api", addr)
		log.Printf("WebSocket: ws://%s/ws?run=<run_id>", addr)
		log.Printf("MCP endpoint: http://%s/mcp", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("http server failed: %v", err)
		}
	}()

	if ngrokEnabled(cmd) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(runCtx, cmd, mainRouter)
		}()
	}

	var runResult loop.RunResult
	select {
	case sig := <-stop:
		log.Printf("received signal %v, shutting down", sig)
		cancelRun()
		runResult = <-result
	case runResult = <-result:
		log.Printf("run finished: %s", runResult.Reason)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("http server shutdown error: %v", err)
	}

	wg.Wait()
	log.Printf("stopped after %d ticks (%s)", runResult.TicksRun, runResult.Reason)
	os.Exit(runResult.ExitCode)
	return nil
}

// runStdioMCP runs the tick loop in the background and blocks serving
// the MCP tool server over stdio until the client disconnects; the run
// finishing (e.g. on a limit) is logged but does not stop the stdio
// server.
func runStdioMCP(ctx context.Context, cmd *cli.Command) error {
	rt, err := buildRuntime(cmd)
	if err != nil {
		return err
	}
	mcpClient := mcp.NewClient(rt.controller)

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	result := make(chan loop.RunResult, 1)
	go func() {
		result <- rt.controller.Run(runCtx)
	}()

	go func() {
		runResult := <-result
		log.Printf("run finished: %s (%d ticks)", runResult.Reason, runResult.TicksRun)
		cancelRun()
	}()

	log.Println("MCP stdio server ready")
	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("mcp stdio server: %w", err)
	}
	return nil
}

func ngrokEnabled(cmd *cli.Command) bool {
	if cmd.Bool("ngrok") {
		return true
	}
	enabled := os.Getenv("NGROK_ENABLED")
	return enabled == "true" || enabled == "1"
}

func runNgrokTunnel(ctx context.Context, cmd *cli.Command, handler http.Handler) {
	authToken := cmd.String("ngrok-auth")
	if authToken == "" {
		authToken = os.Getenv("NGROK_AUTHTOKEN")
	}
	if authToken == "" {
		authToken = os.Getenv("NGROK_AUTH_TOKEN")
	}
	if authToken == "" {
		log.Println("warning: ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN)")
		return
	}

	domain := cmd.String("ngrok-domain")
	if domain == "" {
		domain = os.Getenv("NGROK_DOMAIN")
	}

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		log.Printf("using custom ngrok domain: %s", domain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		log.Printf("failed to start ngrok tunnel: %v", err)
		return
	}
	defer func() {
		if err := tun.Close(); err != nil {
			log.Printf("failed to close ngrok tunnel: %v", err)
		}
	}()

	log.Printf("ngrok tunnel established: %s", tun.URL())
	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed {
		log.Printf("ngrok server error: %v", err)
	}
}
