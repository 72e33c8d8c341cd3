package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Skufu/GoSymptom/internal/analysis"
	"github.com/Skufu/GoSymptom/internal/config"
	"github.com/Skufu/GoSymptom/internal/dataset"
	"github.com/Skufu/GoSymptom/internal/httpapi"
	"github.com/Skufu/GoSymptom/internal/lexicon"
	"github.com/Skufu/GoSymptom/internal/llm"
	"github.com/Skufu/GoSymptom/internal/logger"
	"github.com/Skufu/GoSymptom/internal/recommend"
)

type HealthChecker interface {
	Ping(ctx context.Context) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zl := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer func() { _ = zl.Sync() }()

	gin.SetMode(cfg.Server.GinMode)

	ctx := context.Background()
	rows, store, err := loadDataset(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("dataset load failed", zap.Error(err))
	}
	var db HealthChecker
	if store != nil {
		defer store.Close()
		db = store
	}

	api, err := buildHandler(cfg, rows, zl)
	if err != nil {
		zl.Fatal("startup failed", zap.Error(err))
	}

	staticRoot := cfg.Server.StaticRoot
	if staticRoot == "" {
		staticRoot = detectStaticRoot()
	}
	router := setupRouter(db, api, zl, cfg.Server.MaxBodyBytes, staticRoot)
	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      time.Duration(cfg.LLM.Timeout+15) * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zl.Fatal("server error", zap.Error(err))
		}
	}()

	zl.Info("server listening",
		zap.String("port", cfg.Server.Port),
		zap.Bool("db", db != nil),
		zap.Bool("llm", cfg.LLM.APIKey != ""),
	)
	waitForShutdown(server, zl)
}

// datasetStore is the database-backed dataset source.
type datasetStore interface {
	dataset.Store
	HealthChecker
	Seed(ctx context.Context, rows []dataset.Row) error
	Close()
}

var connectStore = func(ctx context.Context, url string) (datasetStore, error) {
	store, err := dataset.Connect(ctx, url)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// loadDataset returns the embedded rows, or the Postgres copy when the
// database is enabled. The store is nil when the database is disabled. An
// unreadable or empty table falls back to the embedded rows.
func loadDataset(ctx context.Context, cfg *config.Config, zl *zap.Logger) ([]dataset.Row, datasetStore, error) {
	seed, err := dataset.Seed()
	if err != nil {
		return nil, nil, err
	}
	if !cfg.Database.Enabled {
		rows, err := dataset.NewMemoryStore(seed).Rows(ctx)
		return rows, nil, err
	}

	store, err := connectStore(ctx, cfg.Database.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}
	if cfg.Database.Seed {
		if err := store.Seed(ctx, seed); err != nil {
			store.Close()
			return nil, nil, err
		}
		zl.Info("dataset seeded", zap.Int("rows", len(seed)))
	}

	rows, err := store.Rows(ctx)
	switch {
	case err != nil:
		zl.Warn("dataset table unreadable, using embedded rows", zap.Error(err))
		rows = seed
	case len(rows) == 0:
		zl.Warn("dataset table is empty, using embedded rows")
		rows = seed
	}
	return rows, store, nil
}

func buildHandler(cfg *config.Config, rows []dataset.Row, zl *zap.Logger) (*httpapi.Handler, error) {
	lex := lexicon.Default()
	if err := cfg.Risk.ValidateConditions(lex); err != nil {
		return nil, err
	}
	if err := dataset.Validate(rows, lex); err != nil {
		return nil, err
	}

	var gen llm.Generator
	if cfg.LLM.APIKey != "" {
		client, err := llm.NewGeminiClient(llm.Config{
			APIKey:   cfg.LLM.APIKey,
			Endpoint: cfg.LLM.Endpoint,
			Model:    cfg.LLM.Model,
			Timeout:  time.Duration(cfg.LLM.Timeout) * time.Second,
		})
		if err != nil {
			return nil, err
		}
		gen = client
	} else {
		zl.Info("GEMINI_API_KEY not set, chat replies use templates")
	}

	return httpapi.NewHandler(httpapi.Deps{
		Pipeline:        analysis.NewDefault(lex, cfg.Risk),
		Checker:         dataset.NewChecker(rows),
		Recommendations: recommend.NewGenerator(nil),
		Responder:       llm.NewResponder(gen, zl),
		Logger:          zl,
		ReplyTimeout:    time.Duration(cfg.LLM.Timeout+5) * time.Second,
	}), nil
}

func setupRouter(db HealthChecker, api *httpapi.Handler, zl *zap.Logger, maxBody int64, staticRoot string) *gin.Engine {
	router := gin.New()
	router.Use(
		httpapi.RequestID(),
		httpapi.RequestLogger(zl),
		gin.Recovery(),
		httpapi.LimitBodySize(maxBody),
		cors.New(cors.Config{
			AllowOrigins:  []string{"*"},
			AllowMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", httpapi.RequestIDHeader},
			ExposeHeaders: []string{httpapi.RequestIDHeader},
			MaxAge:        12 * time.Hour,
		}),
	)

	// Serve the static frontend when one ships next to the binary.
	if fileExists(filepath.Join(staticRoot, "index.html")) {
		router.Static("/static", staticRoot)
		router.StaticFile("/", filepath.Join(staticRoot, "index.html"))
		router.StaticFile("/styles.css", filepath.Join(staticRoot, "styles.css"))
		router.StaticFile("/app.js", filepath.Join(staticRoot, "app.js"))
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/readyz", func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "disabled"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "degraded",
				"db":     fmt.Sprintf("unhealthy: %v", err),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "ok"})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api.Register(router)
	return router
}

func waitForShutdown(server *http.Server, zl *zap.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zl.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
}

func detectStaticRoot() string {
	startDir, err := os.Getwd()
	if err != nil {
		return "."
	}

	candidates := []string{
		startDir,
		filepath.Join(startDir, "web"),
		filepath.Dir(startDir),
		filepath.Dir(filepath.Dir(startDir)),
	}

	for _, dir := range candidates {
		if fileExists(filepath.Join(dir, "index.html")) {
			return dir
		}
	}

	return startDir
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
