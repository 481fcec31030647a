package main

import (
	// Go Internal Packages
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	// Local Packages
	config "cash-kiosk/config"
	gateway "cash-kiosk/gateway"
	helpers "cash-kiosk/helpers"
	kafka "cash-kiosk/kafka"
	mongodb "cash-kiosk/repositories/mongodb"
	redis "cash-kiosk/repositories/redis"
	txpsr "cash-kiosk/services/processors"

	// External Packages
	"github.com/alecthomas/kingpin/v2"
	_ "github.com/jsternberg/zap-logfmt"
	"github.com/knadh/koanf"
	"github.com/twmb/franz-go/plugin/kprom"
	"go.uber.org/zap"
)

var (
	configPath = kingpin.Flag("config", "Path to the application config file").Short('c').Default("").String()

	_          = kingpin.Command("run", "Resubmit unsynced transactions from the topic").Default()
	pendingCmd = kingpin.Command("pending", "Print the transactions waiting in the dead-letter queue")
)

// LoadConfig loads and validates the configuration the reconciler needs
func LoadConfig() (config.Config, *koanf.Koanf) {
	appKonf, k, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if err = appKonf.ValidateReconciler(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return appKonf, k
}

func main() {
	command := kingpin.Parse()
	appKonf, k := LoadConfig()

	if !appKonf.IsProdMode {
		k.Print()
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "logfmt"
	_ = cfg.Level.UnmarshalText([]byte(appKonf.Logger.Level))
	cfg.InitialFields = make(map[string]any)
	cfg.InitialFields["host"], _ = os.Hostname()
	cfg.InitialFields["service"] = appKonf.Application + "-reconciler"
	cfg.OutputPaths = []string{"stdout"}
	logger, _ := cfg.Build()
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis Connection
	redisClient, err := redis.Connect(ctx, appKonf.Redis.URI, appKonf.Redis.Password)
	if err != nil {
		logger.Fatal("cannot create redis client", zap.Error(err))
	}
	defer func() {
		_ = redisClient.Close()
	}()
	dlQueue := redis.NewDeadLetterQueue(redisClient, logger)

	if command == pendingCmd.FullCommand() {
		pending, err := dlQueue.Pending(ctx)
		if err != nil {
			logger.Fatal("cannot read dead-letter queue", zap.Error(err))
		}
		if err = helpers.PrintJSON(os.Stdout, pending); err != nil {
			logger.Fatal("cannot print dead-letter queue", zap.Error(err))
		}
		return
	}

	// Mongo Connection
	mongoClient, err := mongodb.Connect(ctx, appKonf.Mongo.URI, appKonf.Application+"-reconciler")
	if err != nil {
		logger.Fatal("cannot create mongo client", zap.Error(err))
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	journal := mongodb.NewJournalRepository(mongoClient, appKonf.Mongo.Database)
	gw := gateway.NewHTTPGateway(gateway.Config{
		Endpoint:            appKonf.Gateway.Endpoint(),
		Timeout:             appKonf.Gateway.Timeout,
		ConsecutiveFailures: appKonf.Gateway.Breaker.ConsecutiveFailures,
		OpenTimeout:         appKonf.Gateway.Breaker.OpenTimeout,
	}, logger)
	processor := txpsr.NewReconcileProcessor(logger, gw, journal, dlQueue)

	metrics := kprom.NewMetrics("kiosk_reconciler")
	conf := &kafka.ConsumerConfig{
		Brokers:        appKonf.Kafka.Brokers,
		Name:           appKonf.Kafka.ConsumerName,
		Topic:          appKonf.Kafka.Topic,
		RecordsPerPoll: appKonf.Kafka.RecordsPerPoll,
	}

	txConsumer, err := kafka.NewTxConsumer(conf, processor, metrics, logger)
	if err != nil {
		logger.Fatal("cannot create transactions consumer", zap.Error(err))
	}

	logger.Info("reconciler started", zap.String("command", command))
	if err = txConsumer.Poll(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("cannot poll records from topic", zap.Error(err))
	}
}
