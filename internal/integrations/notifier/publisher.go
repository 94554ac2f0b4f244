// Package notifier публикует события жизненного цикла бронирований в RabbitMQ
// (topic exchange, ключ маршрутизации "booking.<kind>").
package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-HallBooking/internal/lifecycle"
)

const routingPrefix = "booking."

// published события, о которых узнают подписчики. Правки текста и заметок не публикуются
var published = map[lifecycle.EventKind]bool{
	lifecycle.EventSubmitted:  true,
	lifecycle.EventApproved:   true,
	lifecycle.EventRejected:   true,
	lifecycle.EventCancelled:  true,
	lifecycle.EventReassigned: true,
}

// Publisher публикатор событий
type Publisher struct {
	conn     *amqp.Connection
	ch       Channel
	exchange string
	newID    func() string
	logger   Logger
}

// Dial подключается к брокеру и объявляет topic exchange
func Dial(url, exchange string, logger Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial: %v", ErrConnect, err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%w: declare exchange %s: %v", ErrConnect, exchange, err)
	}

	p := NewPublisher(ch, exchange, logger)
	p.conn = conn
	return p, nil
}

// NewPublisher создает публикатор поверх открытого канала
func NewPublisher(ch Channel, exchange string, logger Logger) *Publisher {
	return &Publisher{
		ch:       ch,
		exchange: exchange,
		newID:    uuid.NewString,
		logger:   logger,
	}
}

// Publish отправляет событие. Неподписанные виды событий пропускаются без ошибки
func (p *Publisher) Publish(ctx context.Context, event lifecycle.Event) error {
	if !published[event.Kind] {
		return nil
	}

	msg := fromEvent(p.newID(), event)
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: Publish - booking id=%d: %v", ErrMarshal, event.After.ID, err)
	}

	key := RoutingKey(event.Kind)
	err = p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.ID,
		Timestamp:    event.At,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("%w: Publish - %s booking id=%d: %v", ErrPublish, key, event.After.ID, err)
	}

	p.logger.Info("Publish: %s booking id=%d message=%s", key, event.After.ID, msg.ID)
	return nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// RoutingKey ключ маршрутизации для вида события
func RoutingKey(kind lifecycle.EventKind) string {
	return routingPrefix + string(kind)
}

// Nop notifier для запуска без брокера
type Nop struct{}

// Publish ничего не делает
func (Nop) Publish(ctx context.Context, event lifecycle.Event) error {
	return nil
}
