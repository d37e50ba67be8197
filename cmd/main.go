package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/andresfv/word2pdf/internal/delivery"
	"github.com/andresfv/word2pdf/internal/office"
	"github.com/andresfv/word2pdf/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {

	// =========================================================================
	// ENV INIT
	// =========================================================================

	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}

	maxUploadMB := envInt("MAX_UPLOAD_MB", 20)
	convertTimeout := envDuration("CONVERT_TIMEOUT", 90*time.Second)
	tempTTL := envDuration("TEMP_TTL", 30*time.Minute)

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	// =========================================================================
	// INFRASTRUCTURE
	// =========================================================================

	store, err := storage.NewStore(dataDir, tempTTL)
	if err != nil {
		log.Fatalf("failed to init storage: %v", err)
	}

	var converter office.Converter
	if url := os.Getenv("REMOTE_CONVERTER_URL"); url != "" {
		converter = office.NewRemoteConverter(url)
	} else {
		loConverter, err := office.NewLibreOfficeConverter(os.Getenv("SOFFICE_BIN"), convertTimeout)
		if err != nil {
			log.Fatalf("failed to init libreoffice: %v", err)
		}
		converter = loConverter
	}

	// =========================================================================
	// DOMAIN SERVICES
	// =========================================================================

	docService := office.NewService(converter)

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	// HANDLERS
	convertHandler := delivery.NewConvertHandler(docService, store, int64(maxUploadMB)<<20, zl)
	infoHandler := delivery.NewInfoHandler(version)

	// ROUTES
	delivery.RegisterRoutes(r, convertHandler, infoHandler)

	// =========================================================================
	// BACKGROUND JOBS
	// =========================================================================

	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			if n := store.Sweep(); n > 0 {
				log.Printf("[sweep] removed %d stale temp files", n)
			}
		}
	}()

	// =========================================================================
	// START SERVER
	// =========================================================================

	addr := ":" + port
	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "listening at " + addr,
		Service: "word2pdf",
	})

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid %s: %v", key, err)
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("invalid %s: %v", key, err)
	}
	return d
}
