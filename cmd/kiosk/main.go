package main

import (
	// Go Internal Packages
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	// Local Packages
	config "cash-kiosk/config"
	gateway "cash-kiosk/gateway"
	kafka "cash-kiosk/kafka"
	models "cash-kiosk/models"
	mongodb "cash-kiosk/repositories/mongodb"
	kiosk "cash-kiosk/services/kiosk"
	receipt "cash-kiosk/services/receipt"
	validator "cash-kiosk/services/validator"
	workflow "cash-kiosk/services/workflow"

	// External Packages
	"github.com/alecthomas/kingpin/v2"
	_ "github.com/jsternberg/zap-logfmt"
	"github.com/twmb/franz-go/plugin/kprom"
	"go.uber.org/zap"
)

func main() {
	configPathMsg := "Path to the application config file"
	configPath := kingpin.Flag("config", configPathMsg).Short('c').Default("").String()
	provider := kingpin.Flag("provider", "Wallet provider served by this kiosk (GCash or Maya)").String()
	logPath := kingpin.Flag("log", "File the kiosk logs to; the terminal is kept for the operator").Default("kiosk.log").String()
	kingpin.Parse()

	appKonf, k, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if *provider != "" {
		appKonf.Provider = *provider
		if err = appKonf.Validate(); err != nil {
			log.Fatalf("Invalid configuration: %v", err)
		}
	}

	if !appKonf.IsProdMode {
		k.Print()
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "logfmt"
	_ = cfg.Level.UnmarshalText([]byte(appKonf.Logger.Level))
	cfg.InitialFields = make(map[string]any)
	cfg.InitialFields["host"], _ = os.Hostname()
	cfg.InitialFields["service"] = appKonf.Application
	cfg.InitialFields["provider"] = appKonf.Provider
	cfg.OutputPaths = []string{*logPath}
	logger, err := cfg.Build()
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A nil gateway makes every finalized transaction Skipped
	var gw workflow.SubmissionGateway
	if appKonf.Gateway.Enabled {
		gw = gateway.NewHTTPGateway(gateway.Config{
			Endpoint:            appKonf.Gateway.Endpoint(),
			Timeout:             appKonf.Gateway.Timeout,
			ConsecutiveFailures: appKonf.Gateway.Breaker.ConsecutiveFailures,
			OpenTimeout:         appKonf.Gateway.Breaker.OpenTimeout,
		}, logger)
	} else {
		logger.Warn("record-keeping gateway disabled, transactions will not be submitted")
	}

	var opts []kiosk.Option

	// Mongo Connection
	if appKonf.Mongo.Enabled {
		mongoClient, err := mongodb.Connect(ctx, appKonf.Mongo.URI, appKonf.Application)
		if err != nil {
			logger.Fatal("cannot create mongo client", zap.Error(err))
		}
		defer func() {
			_ = mongoClient.Disconnect(context.Background())
		}()
		opts = append(opts, kiosk.WithJournal(mongodb.NewJournalRepository(mongoClient, appKonf.Mongo.Database)))
	}

	// Kafka Producer
	if appKonf.Kafka.Enabled {
		metrics := kprom.NewMetrics("kiosk")
		producer, err := kafka.NewTxProducer(&kafka.ProducerConfig{
			Brokers: appKonf.Kafka.Brokers,
			Topic:   appKonf.Kafka.Topic,
		}, metrics, logger)
		if err != nil {
			logger.Fatal("cannot create transactions producer", zap.Error(err))
		}
		defer producer.Close()
		opts = append(opts, kiosk.WithEventPublisher(producer))
	}

	location, _ := appKonf.Location()
	projector := receipt.NewProjector(receipt.Config{
		Location:       location,
		CurrencySymbol: appKonf.Receipt.CurrencySymbol,
	})

	machine := workflow.New(gw)
	v := validator.New(models.Provider(appKonf.Provider))
	session := kiosk.NewSession(logger, v, machine, projector, opts...)

	logger.Info("kiosk started")
	if err = kiosk.RunTerminal(ctx, session, os.Stdin, os.Stdout); err != nil {
		logger.Error("terminal stopped", zap.Error(err))
	}
	logger.Info("kiosk stopped")
}
