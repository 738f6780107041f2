//go:build integration

package kafka_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/muyuda/khaya/internal/domain/event"
	"github.com/muyuda/khaya/internal/infrastructure/kafka"
	pkgkafka "github.com/muyuda/khaya/pkg/kafka"
	"github.com/muyuda/khaya/pkg/testutil"
)

type atomicInvalidator struct{ calls atomic.Int32 }

func (a *atomicInvalidator) Invalidate(context.Context) { a.calls.Add(1) }

func TestCatalogUpdate_RoundTrip_Integration(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	kc := testutil.NewKafkaContainer(ctx, t)
	cfg := pkgkafka.Config{Brokers: kc.Brokers, ConsumerGroup: "kprd-catalog-test", ClientID: "kprd-test"}
	const topic = "kpr.events.test"

	producer, err := pkgkafka.NewProducer(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = producer.Close() })

	inv := &atomicInvalidator{}
	consumer, err := pkgkafka.NewConsumer(cfg, topic,
		kafka.NewCatalogUpdateHandler(inv, discardLogger()), discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = consumer.Close() })
	go func() { _ = consumer.Start(ctx) }()

	pub := kafka.NewEventPublisher(producer, topic, discardLogger())

	// The consumer starts at the latest offset, so keep announcing until it
	// has joined the group and seen one.
	require.Eventually(t, func() bool {
		_ = pub.Publish(ctx, event.NewBankCatalogUpdated("bca", "BCA", 2, "admin", time.Now()))
		return inv.calls.Load() > 0
	}, 60*time.Second, time.Second)
}
