package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nathanyu/lob-engine/internal/clock"
	"github.com/nathanyu/lob-engine/internal/engine"
	"github.com/nathanyu/lob-engine/internal/httpapi"
	"github.com/nathanyu/lob-engine/internal/metrics"
	"github.com/nathanyu/lob-engine/internal/output"
	"github.com/nathanyu/lob-engine/internal/transport"
)

func main() {
	log.Println("Starting matching engine service...")

	// --- Core components ---
	//
	// One Engine, shared by every connection's Worker (spec.md §5). The
	// output sink is wrapped with metrics instrumentation before being
	// handed to the engine, so every Added/Executed/Deleted event is both
	// written out and counted.

	rawSink := output.NewWriterSink(os.Stdout)
	sink := &metrics.Sink{Next: rawSink}
	eng := engine.New(clock.NewAtomicClock(), sink)

	// --- Wire listener ---

	wirePort := os.Getenv("WIRE_PORT")
	if wirePort == "" {
		wirePort = "12345"
	}

	listener, err := net.Listen("tcp", ":"+wirePort)
	if err != nil {
		log.Fatalf("wire listener error: %v", err)
	}

	var wg sync.WaitGroup
	acceptDone := make(chan struct{})
	go acceptLoop(listener, eng, &wg, acceptDone)

	// --- Admin HTTP server ---

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpapi.PrometheusMiddleware())

	h := httpapi.NewHandler(eng)
	h.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// --- Metrics server ---

	metricsPort := os.Getenv("METRICS_PORT")
	if metricsPort == "" {
		metricsPort = "9090"
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsSrv := &http.Server{
		Addr:    ":" + metricsPort,
		Handler: metricsMux,
	}

	go func() {
		log.Printf("Wire protocol listening on :%s", wirePort)
	}()

	go func() {
		log.Printf("Metrics server listening on :%s", metricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("metrics server error: %v", err)
		}
	}()

	go func() {
		log.Printf("Admin HTTP server listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	// --- Graceful shutdown ---

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")

	if err := listener.Close(); err != nil {
		log.Printf("wire listener close error: %v", err)
	}
	<-acceptDone
	wg.Wait()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
	if err := metricsSrv.Shutdown(ctx); err != nil {
		log.Printf("Metrics server shutdown error: %v", err)
	}

	log.Println("Matching engine service stopped.")
}

// acceptLoop accepts connections until listener is closed, spawning one
// goroutine per connection (spec.md §5). It signals done once Accept
// starts failing, which happens exactly when listener.Close is called
// from the shutdown path above.
func acceptLoop(listener net.Listener, eng *engine.Engine, wg *sync.WaitGroup, done chan struct{}) {
	defer close(done)
	for {
		conn, err := listener.Accept()
		if err != nil {
			log.Printf("accept loop stopping: %v", err)
			return
		}

		connID := uuid.NewString()
		metrics.ConnectionsActive.Inc()
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer metrics.ConnectionsActive.Dec()
			defer conn.Close()

			worker := transport.NewWorker(eng, conn, connID)
			worker.Run()
		}()
	}
}
