package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gorilla/mux"

	"restaurant-orders/internal/config"
	"restaurant-orders/internal/connections/database"
	"restaurant-orders/internal/connections/rabbitmq"
	"restaurant-orders/internal/domain"
	"restaurant-orders/internal/httpx"
	"restaurant-orders/internal/logger"
	menuhandlers "restaurant-orders/internal/menu/handlers"
	menurepo "restaurant-orders/internal/menu/repository"
	menuservice "restaurant-orders/internal/menu/service"
	"restaurant-orders/internal/notify"
	orderhandlers "restaurant-orders/internal/order/handlers"
	orderrepo "restaurant-orders/internal/order/repository"
	orderservice "restaurant-orders/internal/order/service"
	sessionhandlers "restaurant-orders/internal/session/handlers"
	sessionrepo "restaurant-orders/internal/session/repository"
	sessionservice "restaurant-orders/internal/session/service"
	statshandlers "restaurant-orders/internal/stats/handlers"
	statsrepo "restaurant-orders/internal/stats/repository"
	statsservice "restaurant-orders/internal/stats/service"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config")
	flag.Parse()

	lg := logger.New("restaurant-orders")

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		lg.Error("config_load_failed", err, nil)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	db, err := database.Connect(ctx, cfg)
	if err != nil {
		lg.Error("db_connect_failed", err, nil)
		os.Exit(1)
	}
	defer db.Close()
	lg.Info("db_connected", map[string]any{"host": cfg.Database.Host, "database": cfg.Database.Database})

	if err := db.RunMigrations(ctx, cfg.Database.Migrations, lg); err != nil {
		lg.Error("migrations_failed", err, nil)
		os.Exit(1)
	}

	var publisher notify.Publisher = notify.Noop{}
	if cfg.RabbitMQ.Enabled {
		rmq, err := rabbitmq.Dial(cfg.RabbitMQ)
		if err != nil {
			lg.Error("rabbitmq_connect_failed", err, nil)
			os.Exit(1)
		}
		defer rmq.Close()

		publisher, err = notify.NewRabbitPublisher(rmq)
		if err != nil {
			lg.Error("rabbitmq_setup_failed", err, nil)
			os.Exit(1)
		}
		lg.Info("rabbitmq_connected", map[string]any{"host": cfg.RabbitMQ.Host})
	}

	policy := domain.EmptyResultPolicy(cfg.Service.EmptyResults)
	tables := domain.NewTableRegistry(cfg.Tables.Numbers)

	menuRepo := menurepo.NewMenuPG(db)
	sessionRepo := sessionrepo.NewSessionPG(db)
	orderRepo := orderrepo.NewOrderPG(db)
	statsRepo := statsrepo.NewStatsPG(db)

	sessionSvc := sessionservice.NewSessionService(sessionRepo, orderRepo, policy, lg)
	orderSvc := orderservice.NewOrderService(orderRepo, sessionRepo, menuRepo, publisher, policy, lg)
	statsSvc := statsservice.NewStatsService(statsRepo, menuRepo)
	menuSvc := menuservice.NewMenuService(menuRepo)

	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()
	sessionhandlers.NewSessionHandler(sessionSvc, tables, lg).Register(api)
	orderhandlers.NewOrderHandler(orderSvc, lg).Register(api)
	statshandlers.NewStatsHandler(statsSvc).Register(api)
	menuhandlers.NewMenuHandler(menuSvc).Register(api)

	addr := ":" + strconv.Itoa(cfg.Server.Port)
	lg.Info("service_started", map[string]any{"addr": addr, "empty_results": cfg.Service.EmptyResults})

	srv := httpx.New(addr, router)
	if err := srv.Run(ctx); err != nil {
		lg.Error("server_failed", err, nil)
		os.Exit(1)
	}
	lg.Info("service_stopped", nil)
}
