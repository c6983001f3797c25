package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fridgeplan/internal/api"
	"fridgeplan/internal/config"
	"fridgeplan/internal/gateway"
	"fridgeplan/internal/monitoring"
	"fridgeplan/internal/session"
	"fridgeplan/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	port        = flag.Int("port", 0, "API server port (overrides config)")
	metricsPort = flag.Int("metrics-port", 0, "Metrics server port (overrides config)")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	// A .env file is optional; real environment variables win either way.
	_ = godotenv.Load()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port > 0 {
		cfg.Port = *port
	}
	if *metricsPort > 0 {
		cfg.MetricsPort = *metricsPort
	}

	sess, err := session.New(store.New(cfg.DataPath))
	if err != nil {
		log.Fatalf("Failed to load inventory from %s: %v", cfg.DataPath, err)
	}

	var generator api.Generator
	key, err := cfg.ResolveAPIKey(config.TerminalPrompt(os.Stdin, os.Stderr))
	if err != nil {
		log.Printf("No OpenAI credentials resolved: %v — plan generation is disabled", err)
	} else {
		gw, err := gateway.New(key, cfg.Model, cfg.MaxTokens)
		if err != nil {
			log.Fatalf("Failed to initialize generation gateway: %v", err)
		}
		generator = gw
	}

	monitor := monitoring.NewMonitor()
	monitor.SetInventorySize(sess.Len())

	planner := api.NewPlannerAPI(sess, generator, monitor)
	planner.Model = cfg.Model
	planner.Timeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second

	go startMetricsServer(cfg.MetricsPort)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: planner.Router,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down servers...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("API server shutdown error: %v", err)
		}
	}()

	log.Printf("Starting API server on port %d (inventory: %s)", cfg.Port, cfg.DataPath)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("API server error: %v", err)
	}
}

func startMetricsServer(port int) {
	metricsRouter := gin.Default()
	metricsRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	log.Printf("Starting metrics server on port %d", port)
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Printf("Metrics server error: %v", err)
	}
}
