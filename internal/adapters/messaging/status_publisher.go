package messaging

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hemolink/donation-service/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

var _ ports.StatusEventPublisher = (*RabbitMQBroker)(nil)

func (rmq *RabbitMQBroker) PublishStatusChanged(ctx context.Context, evt ports.RequestStatusEvent) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	// Respect context deadline
	if deadline, ok := ctx.Deadline(); ok {
		if time.Until(deadline) <= 0 {
			return ctx.Err()
		}
	}

	// Circuit breaker protects the publish path
	_, err = rmq.cb.Execute(func() (interface{}, error) {
		err := rmq.ch.PublishWithContext(
			ctx,
			"",            // exchange (default)
			rmq.queueName, // routing key == queue name
			false,         // mandatory
			false,         // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Body:         body,
			},
		)
		return nil, err
	})
	return err
}
