package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	getRevenueHandler "github.com/m04kA/SMC-GarageService/internal/api/handlers/get_revenue"
	plateStatusHandler "github.com/m04kA/SMC-GarageService/internal/api/handlers/post_plate_status"
	spotStatusHandler "github.com/m04kA/SMC-GarageService/internal/api/handlers/post_spot_status"
	webhookHandler "github.com/m04kA/SMC-GarageService/internal/api/handlers/post_webhook"
	"github.com/m04kA/SMC-GarageService/internal/api/middleware"
	"github.com/m04kA/SMC-GarageService/internal/config"
	sectorRepo "github.com/m04kA/SMC-GarageService/internal/infra/storage/sector"
	sessionRepo "github.com/m04kA/SMC-GarageService/internal/infra/storage/session"
	spotRepo "github.com/m04kA/SMC-GarageService/internal/infra/storage/spot"
	garageServiceClient "github.com/m04kA/SMC-GarageService/internal/integrations/garageservice"
	revenueService "github.com/m04kA/SMC-GarageService/internal/service/revenue"
	statusService "github.com/m04kA/SMC-GarageService/internal/service/status"
	loadGarageUC "github.com/m04kA/SMC-GarageService/internal/usecase/load_garage"
	processEventUC "github.com/m04kA/SMC-GarageService/internal/usecase/process_event"
	"github.com/m04kA/SMC-GarageService/pkg/dbmetrics"
	"github.com/m04kA/SMC-GarageService/pkg/logger"
	"github.com/m04kA/SMC-GarageService/pkg/metrics"
	"github.com/m04kA/SMC-GarageService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-GarageService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-GarageService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем клиент провайдера топологии гаража
	garageClient := garageServiceClient.NewClient(
		cfg.GarageService.URL,
		time.Duration(cfg.GarageService.Timeout)*time.Second,
		log,
	)
	log.Info("GarageService client initialized (url=%s, timeout=%ds)",
		cfg.GarageService.URL, cfg.GarageService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		sectorRepository  *sectorRepo.Repository
		spotRepository    *spotRepo.Repository
		sessionRepository *sessionRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		sectorRepository = sectorRepo.NewRepository(wrappedDB)
		spotRepository = spotRepo.NewRepository(wrappedDB)
		sessionRepository = sessionRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		sectorRepository = sectorRepo.NewRepository(db)
		spotRepository = spotRepo.NewRepository(db)
		sessionRepository = sessionRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Загружаем топологию гаража - без неё сервис не принимает события
	loadGarage := loadGarageUC.NewUseCase(garageClient, sectorRepository, spotRepository, txMgr, log)

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), time.Duration(cfg.GarageService.Timeout)*time.Second)
	if err := loadGarage.Execute(loadCtx); err != nil {
		cancelLoad()
		log.Fatal("Failed to load garage layout: %v", err)
	}
	cancelLoad()

	// Инициализируем use cases и сервисы
	processEvent := processEventUC.NewUseCase(
		sessionRepository,
		spotRepository,
		sectorRepository,
		txMgr,
		log,
	)

	revenueSvc := revenueService.NewService(sessionRepository, log)
	statusSvc := statusService.NewService(sessionRepository, spotRepository, log)

	// Инициализируем handlers
	webhook := webhookHandler.NewHandler(processEvent, log)
	getRevenue := getRevenueHandler.NewHandler(revenueSvc, log)
	plateStatus := plateStatusHandler.NewHandler(statusSvc, log)
	spotStatus := spotStatusHandler.NewHandler(statusSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Webhook симулятора - вне API префикса, путь зафиксирован контрактом
	r.HandleFunc("/webhook", webhook.Handle).Methods(http.MethodPost)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Выручка сектора за день
	api.HandleFunc("/revenue", getRevenue.Handle).Methods(http.MethodGet)

	// Статус сессии по госномеру
	api.HandleFunc("/plate-status", plateStatus.Handle).Methods(http.MethodPost)

	// Статус места по координатам
	api.HandleFunc("/spot-status", spotStatus.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
