package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	apihttp "solarcalc/internal/api/http"
	"solarcalc/internal/auth"
	"solarcalc/internal/eventing"
	"solarcalc/internal/history"
	historymemory "solarcalc/internal/history/infrastructure/memory"
	historypostgres "solarcalc/internal/history/infrastructure/postgres"
	"solarcalc/internal/observability/metrics"
	"solarcalc/internal/sizing/application"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	settings, err := loadSettings(cfg.SettingsPath)
	if err != nil {
		logger.Fatalf("settings error: %v", err)
	}

	var records history.Repository
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			logger.Fatalf("db open error: %v", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			logger.Fatalf("db ping error: %v", err)
		}
		records = historypostgres.NewRepository(db)
		logger.Printf("history store: postgres")
	} else {
		records = historymemory.NewRepository()
		logger.Printf("history store: in-memory")
	}

	metrics.Init()

	bus := eventing.NewInMemoryBus()
	bus.Subscribe(eventing.EventTypeOf[application.CalculationCompleted](), func(ctx context.Context, event any) error {
		evt, ok := event.(application.CalculationCompleted)
		if !ok {
			return eventing.ErrInvalidEventType
		}
		logger.Printf("calculation completed: record=%s modules=%d inverter=%.0fW range_exhausted=%t",
			evt.RecordID, evt.RecommendedModuleCount, evt.InverterPowerW, evt.RangeExhausted)
		return nil
	})
	bus.Subscribe(eventing.EventTypeOf[application.CalculationCompleted](), func(ctx context.Context, event any) error {
		evt, ok := event.(application.CalculationCompleted)
		if !ok {
			return eventing.ErrInvalidEventType
		}
		metrics.IncCompleted(evt.RangeExhausted)
		return nil
	})

	service, err := application.NewCalculationService(settings, records, bus, application.SystemClock{})
	if err != nil {
		logger.Fatalf("calculation service error: %v", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/api/v1/sizing/calculate", apihttp.NewCalculateHandler(service))
	mux.Handle("/api/v1/sizing/import", apihttp.NewImportHandler())
	mux.Handle("/api/v1/sizing/report.pdf", apihttp.NewReportHandler(service, "pdf"))
	mux.Handle("/api/v1/sizing/report.xlsx", apihttp.NewReportHandler(service, "xlsx"))
	mux.Handle("/api/v1/sizing/history", apihttp.NewHistoryHandler(records))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var handler http.Handler = mux
	if cfg.JWTSecret != "" {
		authMiddleware := auth.NewMiddleware([]byte(cfg.JWTSecret), auth.NewDefaultPolicy())
		handler = authMiddleware.Wrap(handler)
	} else {
		logger.Printf("auth disabled: AUTH_JWT_SECRET not set")
	}

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: loggingMiddleware(handler, logger)}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
}

type config struct {
	HTTPAddr     string
	DatabaseURL  string
	JWTSecret    string
	SettingsPath string
}

func loadConfig() config {
	return config{
		HTTPAddr:     getenvDefault("HTTP_ADDR", ":8080"),
		DatabaseURL:  getenvDefault("DATABASE_URL", getenvDefault("PG_DSN", "")),
		JWTSecret:    getenvDefault("AUTH_JWT_SECRET", getenvDefault("JWT_SECRET", "")),
		SettingsPath: getenvDefault("SIZING_CONFIG", ""),
	}
}

// loadSettings starts from the stock defaults and overlays the optional yaml
// config file on top.
func loadSettings(path string) (application.Settings, error) {
	settings := application.DefaultSettings()
	if path == "" {
		return settings, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return settings, err
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return settings, err
	}
	return settings, nil
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
