package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TourBookingService/pkg/logger"
)

type fakeChannel struct {
	declared   []string
	published  []amqp.Publishing
	publishErr error
	closed     bool
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	f.declared = append(f.declared, name+":"+kind)
	return nil
}

func (f *fakeChannel) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p, err := NewPublisher(ch, "booking_events", logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"booking_events:fanout"}, ch.declared)

	bookingID := int64(41)
	err = p.Publish(context.Background(), Event{
		Type:          EventBookingCompleted,
		SessionID:     "tab-1",
		TourID:        7,
		Provider:      "paypal",
		TransactionID: "CAP-9",
		Amount:        200,
		Currency:      "EUR",
		BookingID:     &bookingID,
		OccurredAt:    time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, ch.published, 1)

	msg := ch.published[0]
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, uint8(amqp.Persistent), msg.DeliveryMode)
	assert.Equal(t, EventBookingCompleted, msg.Type)
	assert.NotEmpty(t, msg.MessageId)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, "CAP-9", decoded["transactionId"])
	assert.Equal(t, float64(41), decoded["bookingId"])
	assert.NotContains(t, decoded, "reconciliationId")

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestPublisher_PublishError(t *testing.T) {
	ch := &fakeChannel{publishErr: errors.New("channel closed")}
	p, err := NewPublisher(ch, "booking_events", logger.NewNop())
	require.NoError(t, err)

	err = p.Publish(context.Background(), Event{Type: EventBookingReconciliationRequired})
	assert.ErrorIs(t, err, ErrPublish)
}

func TestNopPublisher(t *testing.T) {
	var p NopPublisher
	assert.NoError(t, p.Publish(context.Background(), Event{}))
	assert.NoError(t, p.Close())
}
