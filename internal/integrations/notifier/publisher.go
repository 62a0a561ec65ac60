package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Channel часть amqp.Channel, которой пользуется издатель
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher публикует события в fanout exchange RabbitMQ
type Publisher struct {
	conn     *amqp.Connection
	exchange string
	log      Logger

	mu sync.Mutex
	ch Channel
}

// Dial подключается к брокеру и объявляет exchange
func Dial(url, exchange string, log Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: failed to open channel: %v", ErrConnect, err)
	}

	p, err := NewPublisher(ch, exchange, log)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn

	return p, nil
}

// NewPublisher создает издателя поверх открытого канала
func NewPublisher(ch Channel, exchange string, log Logger) (*Publisher, error) {
	if err := ch.ExchangeDeclare(exchange, "fanout", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("%w: failed to declare exchange %q: %v", ErrConnect, exchange, err)
	}

	return &Publisher{
		exchange: exchange,
		log:      log,
		ch:       ch,
	}, nil
}

// Publish отправляет событие; ID и тип проставляются, если пусты
func (p *Publisher) Publish(ctx context.Context, event Event) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal event: %v", ErrPublish, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.Publish(p.exchange, "", false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		MessageId:    event.ID,
		Type:         event.Type,
		Timestamp:    event.OccurredAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPublish, event.Type, err)
	}

	p.log.Info("Event published: type=%s, id=%s, session_id=%s", event.Type, event.ID, event.SessionID)
	return nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.Close(); err != nil {
		return err
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NopPublisher используется, когда брокер выключен в конфигурации
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event Event) error {
	return nil
}

func (NopPublisher) Close() error {
	return nil
}
