package kafka

import (
	// Go Internal Packages
	"context"
	"encoding/json"

	// Local Packages
	models "cash-kiosk/models"

	// External Packages
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kprom"
	"go.uber.org/zap"
)

type ProducerConfig struct {
	Brokers []string
	Topic   string
}

// Producer publishes every completed kiosk transaction, keyed by its id.
type Producer struct {
	Client *kgo.Client
	Topic  string
	Logger *zap.Logger
}

func NewTxProducer(conf *ProducerConfig, metrics *kprom.Metrics, logger *zap.Logger) (*Producer, error) {
	opts := []kgo.Opt{
		kgo.SeedBrokers(conf.Brokers...),
		kgo.DefaultProduceTopic(conf.Topic),
		kgo.WithHooks(metrics),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, err
	}
	return &Producer{Client: client, Topic: conf.Topic, Logger: logger}, nil
}

// PublishCompleted writes tx to the topic and waits for the broker ack.
func (p *Producer) PublishCompleted(ctx context.Context, tx models.FinalizedTransaction) error {
	value, err := json.Marshal(tx)
	if err != nil {
		return err
	}

	record := &kgo.Record{Topic: p.Topic, Key: []byte(tx.ID), Value: value}
	if err := p.Client.ProduceSync(ctx, record).FirstErr(); err != nil {
		p.Logger.Error("failed to publish transaction", zap.String("transaction_id", tx.ID), zap.Error(err))
		return err
	}
	return nil
}

func (p *Producer) Close() {
	p.Client.Close()
}
