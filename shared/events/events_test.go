package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eaglebank/poa-service/shared/redis/redistest"
)

func TestPublishAndConsume(t *testing.T) {
	ctx := context.Background()
	fake := redistest.New()
	pub := NewPublisher(fake, 1000)

	err := pub.Publish(ctx, AccountEventsStream, AccountCreated, AccountCreatedEvent{
		AccountNumber:     "NL123456",
		AccountHolderName: "John Doe",
		AccountType:       "PAYMENT",
		Balance:           1000,
	})
	require.NoError(t, err)
	require.Len(t, fake.Messages(AccountEventsStream), 1)

	var received []AccountCreatedEvent
	sub := NewSubscriber(fake, SubscriberConfig{
		Group:    "projector",
		Consumer: "c1",
		Stream:   AccountEventsStream,
		Handler: func(ctx context.Context, e Event) error {
			assert.Equal(t, AccountCreated, e.Type)
			var data AccountCreatedEvent
			if err := e.DecodeData(&data); err != nil {
				return err
			}
			received = append(received, data)
			return nil
		},
	})
	require.NoError(t, fake.XGroupCreateMkStream(ctx, AccountEventsStream, "projector", "0").Err())
	require.NoError(t, sub.readMessages(ctx))

	require.Len(t, received, 1)
	assert.Equal(t, "NL123456", received[0].AccountNumber)
	assert.Equal(t, 1000.0, received[0].Balance)
	assert.Len(t, fake.Acked(AccountEventsStream, "projector"), 1)

	// nothing new: redis.Nil is swallowed
	require.NoError(t, sub.readMessages(ctx))
}

func TestFailedMessagesAreNotAcked(t *testing.T) {
	ctx := context.Background()
	fake := redistest.New()
	require.NoError(t, NewPublisher(fake, 0).Publish(ctx, GrantEventsStream, PowerGranted, PowerGrantedEvent{GrantID: "poa-1"}))

	sub := NewSubscriber(fake, SubscriberConfig{
		Group:    "g",
		Consumer: "c",
		Stream:   GrantEventsStream,
		Handler:  func(context.Context, Event) error { return errors.New("boom") },
	})
	require.NoError(t, sub.readMessages(ctx))
	assert.Empty(t, fake.Acked(GrantEventsStream, "g"))
}

func TestStartStopsOnCancel(t *testing.T) {
	fake := redistest.New()
	sub := NewSubscriber(fake, SubscriberConfig{
		Group:    "g",
		Consumer: "c",
		Stream:   AccountEventsStream,
		Handler:  func(context.Context, Event) error { return nil },
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sub.Start(ctx), context.Canceled)
}

func TestPublishFailure(t *testing.T) {
	fake := redistest.New()
	fake.Fail = true
	err := NewPublisher(fake, 0).Publish(context.Background(), AccountEventsStream, AccountCreated, nil)
	assert.ErrorIs(t, err, redistest.ErrUnavailable)
}
