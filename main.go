package main

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/mattn/go-isatty"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/mapvote/auth"
	"github.com/danielhkuo/mapvote/catalog"
	"github.com/danielhkuo/mapvote/cliparse"
	"github.com/danielhkuo/mapvote/config"
	"github.com/danielhkuo/mapvote/db"
	"github.com/danielhkuo/mapvote/gamestate"
	"github.com/danielhkuo/mapvote/handlers"
	"github.com/danielhkuo/mapvote/middleware"
	"github.com/danielhkuo/mapvote/random"
	"github.com/danielhkuo/mapvote/rcon"
	"github.com/danielhkuo/mapvote/router"
	"github.com/danielhkuo/mapvote/session"
	"github.com/danielhkuo/mapvote/votelog"
)

func setupLogging() {
	var handler slog.Handler
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		handler = slog.NewTextHandler(os.Stderr, nil)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, nil)
	}
	slog.SetDefault(slog.New(handler))
}

// loadCatalog reads the layer file when one is configured and mirrors it
// into the layer table. Without a file the table is the catalog.
func loadCatalog(ctx context.Context, conn *sql.DB, cfg cliparse.Config) (*catalog.Catalog, error) {
	if cfg.LayersPath == "" {
		return catalog.LoadSQL(ctx, conn)
	}
	cat, err := catalog.LoadFile(cfg.LayersPath)
	if err != nil {
		return nil, err
	}
	if err := cat.Store(ctx, conn); err != nil {
		return nil, err
	}
	return cat, nil
}

func main() {
	var err error

	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}
	setupLogging()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	driver, err := db.DriverName(cfg.DatabaseType)
	if err != nil {
		slog.Error("unsupported database", "error", err)
		os.Exit(1)
	}
	dbConn, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cat, err := loadCatalog(ctx, dbConn, cfg)
	if err != nil {
		slog.Error("failed to load layers", "error", err)
		os.Exit(1)
	}
	if cat.Len() == 0 {
		slog.Warn("layer catalog is empty, votes cannot start until layers are loaded")
	}

	opts, err := config.Load(cfg.OptionsPath)
	if err != nil {
		slog.Error("failed to load options", "path", cfg.OptionsPath, "error", err)
		os.Exit(1)
	}

	rng, seed, err := random.New(cfg.Seed)
	if err != nil {
		slog.Error("failed to seed random generator", "error", err)
		os.Exit(1)
	}
	slog.Info("layers loaded", "layers", cat.Len(), "seed", seed)

	state := gamestate.New()
	client := rcon.New(cfg.RCONURL, auth.GenerateBridgeKey(cfg.ServerID, cfg.BridgeKeySalt), nil)

	eventLog := votelog.NewSQLSink(dbConn)
	sinks := votelog.Multi{eventLog}
	if cfg.LogWebhookURL != "" {
		sinks = append(sinks, votelog.NewWebhookSink(cfg.LogWebhookURL, nil))
	}

	engine, err := session.New(session.Deps{
		Catalog:  cat,
		Server:   state,
		Notifier: client,
		Admin:    client,
		Log:      sinks,
		Rand:     rng,
		Options:  opts,
	})
	if err != nil {
		slog.Error("failed to create vote engine", "error", err)
		os.Exit(1)
	}
	engine.Start(ctx)

	limiter := handlers.NewChatLimiter()
	go limiter.Run(ctx)

	mux := router.NewRouter(engine, state, eventLog, limiter, cfg)

	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlc
		cancel()
		server.Close()
	}()

	slog.Info("Listening", "port", cfg.Port, "server_id", cfg.ServerID)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
