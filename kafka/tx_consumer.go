package kafka

import (
	// Go Internal Packages
	"context"
	"errors"

	// Local Packages
	models "cash-kiosk/models"

	// External Packages
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kprom"
	"go.uber.org/zap"
)

type ConsumerConfig struct {
	Brokers        []string
	Name           string
	Topic          string
	RecordsPerPoll int
}

type Consumer struct {
	Client    *kgo.Client
	Config    *ConsumerConfig
	Processor TxProcessor
	Logger    *zap.Logger
}

type TxProcessor interface {
	ProcessRecords(ctx context.Context, records []models.Record) error
}

// NewTxConsumer creates a consumer of completed kiosk transactions
// (PS: Must call Poll to start consuming the records)
func NewTxConsumer(conf *ConsumerConfig, processor TxProcessor, metrics *kprom.Metrics, logger *zap.Logger) (*Consumer, error) {
	c := &Consumer{Config: conf, Processor: processor, Logger: logger}

	opts := []kgo.Opt{
		kgo.SeedBrokers(conf.Brokers...),
		kgo.ConsumerGroup(conf.Name),
		kgo.ConsumeTopics(conf.Topic),
		kgo.WithHooks(metrics),
		kgo.DisableAutoCommit(),
		kgo.BlockRebalanceOnPoll(),
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, err
	}

	c.Client = client
	return c, nil
}

// Poll polls for records until ctx is done. A batch is committed only after
// the processor accepted it.
func (c *Consumer) Poll(ctx context.Context) error {
	defer c.Client.Close()

	for {
		if ctx.Err() != nil {
			c.Logger.Warn("polling stopped: context canceled")
			return ctx.Err()
		}

		fetches := c.Client.PollRecords(ctx, c.Config.RecordsPerPoll)
		if fetches.IsClientClosed() {
			return errors.New("kafka client closed")
		}
		if errors.Is(fetches.Err0(), context.Canceled) {
			return context.Canceled
		}
		fetches.EachError(func(topic string, partition int32, err error) {
			c.Logger.Error("fetch failed", zap.String("topic", topic), zap.Int32("partition", partition), zap.Error(err))
		})

		records := make([]models.Record, 0, fetches.NumRecords())
		fetches.EachRecord(func(record *kgo.Record) {
			records = append(records, models.Record{
				Key:   record.Key,
				Value: record.Value,
				Topic: record.Topic,
			})
		})

		if err := c.Processor.ProcessRecords(ctx, records); err != nil {
			c.Logger.Error("failed to process records", zap.Error(err))
			c.Client.AllowRebalance()
			continue
		}

		if err := c.Client.CommitRecords(ctx, fetches.Records()...); err != nil {
			c.Logger.Error("failed to commit records", zap.Error(err))
		}
		c.Client.AllowRebalance()
	}
}
