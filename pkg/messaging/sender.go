package messaging

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/matst80/slask-facets/pkg/common/jsoncompat"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher is the part of an AMQP connection needed to send changes.
type Publisher interface {
	Channel() (*amqp.Channel, error)
}

// DefineTopic declares the durable topic exchange for prefix and topic.
// Consumers bind their own exclusive queues to it.
func DefineTopic(ch *amqp.Channel, prefix string, topic ChangeTopic) error {
	return ch.ExchangeDeclare(getName(prefix, topic), "topic", true, false, false, false, nil)
}

func getName(prefix string, topic ChangeTopic) string {
	return fmt.Sprintf("%s_%s", prefix, topic)
}

// Encode wraps data as a persistent JSON message.
func Encode[V any](data V) (amqp.Publishing, error) {
	body, err := jsoncompat.Marshal(data)
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now(),
		Body:         body,
	}, nil
}

// SendChange publishes data on the exchange of prefix and topic, using the
// exchange name as routing key.
func SendChange[V any](ctx context.Context, c Publisher, prefix string, topic ChangeTopic, data V) error {
	msg, err := Encode(data)
	if err != nil {
		return err
	}
	ch, err := c.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	name := getName(prefix, topic)
	return ch.PublishWithContext(ctx, name, name, false, false, msg)
}
