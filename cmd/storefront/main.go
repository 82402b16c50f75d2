package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"net/http/pprof"

	"github.com/matst80/slask-facets/pkg/catalog"
	"github.com/matst80/slask-facets/pkg/common"
	"github.com/matst80/slask-facets/pkg/config"
	"github.com/matst80/slask-facets/pkg/messaging"
	"github.com/matst80/slask-facets/pkg/server"
	"github.com/matst80/slask-facets/pkg/tracking"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
)

var configFile = flag.String("config", "storefront.yaml", "path to the yaml config file")
var enableProfiling = flag.Bool("profiling", false, "enable profiling endpoints on the debug address")

type app struct {
	cfg     config.Config
	catalog *catalog.FileCatalog
	tracker *tracking.RabbitTracking
	conn    *amqp.Connection
}

func (a *app) connectAmqp() {
	conn, err := amqp.DialConfig(a.cfg.RabbitUrl, amqp.Config{
		Properties: amqp.NewConnectionProperties(),
	})
	if err != nil {
		log.Printf("Failed to connect to RabbitMQ, catalog reloads disabled: %v", err)
		return
	}
	a.conn = conn
	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("Failed to open a channel: %v", err)
	}
	if err = messaging.DefineTopic(ch, a.cfg.Country, messaging.CatalogChanged); err != nil {
		log.Fatalf("Failed to declare %s topic: %v", messaging.CatalogChanged, err)
	}
	err = messaging.ListenToChanges(ch, a.cfg.Country, messaging.CatalogChanged, func(change messaging.CatalogChange) error {
		log.Printf("Catalog changed, %d handles", len(change.Handles))
		if err := a.catalog.Load(); err != nil {
			log.Printf("Failed to reload catalog: %v", err)
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to listen to %s topic: %v", messaging.CatalogChanged, err)
	}
	log.Printf("Listening for catalog changes")

	a.tracker, err = tracking.NewRabbitTracking(a.cfg.RabbitUrl, a.cfg.Country)
	if err != nil {
		log.Printf("Failed to connect to rabbitmq for tracking: %v", err)
		a.tracker = nil
	}
}

func (a *app) close(ctx context.Context) error {
	if a.tracker != nil {
		if err := a.tracker.Close(); err != nil {
			log.Printf("Failed to close tracker: %v", err)
		}
	}
	if a.conn != nil {
		return a.conn.Close()
	}
	return nil
}

func debugHandler() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if *enableProfiling {
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}
	return mux
}

func main() {
	flag.Parse()
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	a := &app{
		cfg:     cfg,
		catalog: catalog.NewFileCatalog(cfg.Country, cfg.DataDir),
	}
	if err := a.catalog.Load(); err != nil {
		log.Printf("Could not load catalog from disk: %v", err)
	}
	if cfg.RabbitUrl != "" {
		a.connectAmqp()
	}

	srv := &server.WebServer{
		Backend:        a.catalog,
		ProductCount:   cfg.ProductCount,
		VisibleFilters: cfg.VisibleFilters,
	}
	if a.tracker != nil {
		srv.Tracking = a.tracker
	}

	timeouts := common.LoadTimeoutConfig(common.DefaultTimeouts())
	servers := []*http.Server{
		common.NewServerWithTimeouts(cfg.ListenAddress, srv.ClientHandler(), timeouts),
	}
	if cfg.DebugAddress != "" {
		servers = append(servers, common.NewServerWithTimeouts(cfg.DebugAddress, debugHandler(), timeouts))
	}
	common.RunServersWithShutdown(servers, timeouts.Shutdown, timeouts.Hook, a.close)
}
