package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"hometheater/api"
	"hometheater/config"
	"hometheater/handlers"
	"hometheater/services/catalog"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	portOverride := flag.Int("port", 0, "override server port from config")
	rootOverride := flag.String("root", "", "override media root directory from config")
	flag.Parse()

	fmt.Println("🎬 Home Theater Starting...")

	// Optional .env for local development; real env vars take precedence.
	_ = godotenv.Load()

	// Determine config path (env or default)
	configPath := os.Getenv("HOMETHEATER_CONFIG")
	if configPath == "" {
		configPath = filepath.Join("cache", "settings.json")
	}

	// Init config manager and load settings (creates defaults if missing)
	cfgManager := config.NewManager(configPath)
	settings, err := cfgManager.Load()
	if err != nil {
		log.Fatalf("failed to load settings: %v", err)
	}

	// Set up file logging with rotation
	if settings.Log.File != "" {
		logDir := filepath.Dir(settings.Log.File)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			log.Printf("Warning: could not create log directory %s: %v", logDir, err)
		} else {
			fileWriter := &lumberjack.Logger{
				Filename:   settings.Log.File,
				MaxSize:    settings.Log.MaxSize,
				MaxBackups: settings.Log.MaxBackups,
				MaxAge:     settings.Log.MaxAge,
				Compress:   settings.Log.Compress,
			}
			// Redirect standard log to both console and file
			multiWriter := io.MultiWriter(os.Stdout, fileWriter)
			log.SetOutput(multiWriter)
			log.SetFlags(log.LstdFlags | log.Lshortfile)
			log.Printf("Logging to file: %s", settings.Log.File)
		}
	}

	// Apply overrides: flags beat env, env beats the settings file
	if *portOverride > 0 {
		settings.Server.Port = *portOverride
	}
	if env := os.Getenv("HOMETHEATER_MEDIA_ROOT"); env != "" {
		settings.Library.MediaRoot = env
	}
	if *rootOverride != "" {
		settings.Library.MediaRoot = *rootOverride
	}

	fsys := afero.NewOsFs()
	catalogService := catalog.NewService(fsys, settings.Library.MediaRoot, settings.Library.MediaPrefix)
	moviesHandler := handlers.NewMoviesHandler(catalogService)

	r := mux.NewRouter()
	api.Register(r, moviesHandler)

	// Serve the media files themselves under the same prefix the catalog
	// locators point at.
	if settings.Library.MediaRoot != "" {
		mediaFs := afero.NewHttpFs(afero.NewBasePathFs(fsys, settings.Library.MediaRoot))
		r.PathPrefix(settings.Library.MediaPrefix + "/").Handler(
			http.StripPrefix(settings.Library.MediaPrefix+"/", http.FileServer(mediaFs.Dir("/"))))
		log.Printf("Serving media from %s at %s", settings.Library.MediaRoot, settings.Library.MediaPrefix)
	} else {
		log.Printf("Warning: media root not configured; set library.mediaRoot, HOMETHEATER_MEDIA_ROOT, or -root")
	}

	addr := fmt.Sprintf("%s:%d", settings.Server.Host, settings.Server.Port)
	fmt.Printf("Server starting on %s\n", addr)

	// Create HTTP server with timeouts
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // No write timeout for streaming
		IdleTimeout:  120 * time.Second,
	}

	// Setup graceful shutdown
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-shutdownChan
	log.Println("🛑 Shutdown signal received, cleaning up...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("✅ Shutdown complete")
}
