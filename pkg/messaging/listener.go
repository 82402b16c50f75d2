package messaging

import (
	"fmt"
	"log"

	"github.com/matst80/slask-facets/pkg/common/jsoncompat"
	amqp "github.com/rabbitmq/amqp091-go"
)

// declareBindAndConsume binds a server named, exclusive queue to the topic
// exchange so every listening process gets its own copy of each message.
func declareBindAndConsume(ch *amqp.Channel, prefix string, topic ChangeTopic) (<-chan amqp.Delivery, error) {
	name := getName(prefix, topic)
	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return nil, fmt.Errorf("declare queue for %s: %w", name, err)
	}
	if err = ch.QueueBind(q.Name, name, name, false, nil); err != nil {
		return nil, fmt.Errorf("bind queue to %s: %w", name, err)
	}
	return ch.Consume(q.Name, "", false, true, false, false, nil)
}

// ListenToChanges decodes every message on topic into V and hands it to fn.
// Messages that do not decode are logged and dropped; fn errors stop the
// listener without acking.
func ListenToChanges[V any](ch *amqp.Channel, prefix string, topic ChangeTopic, fn func(V) error) error {
	msgs, err := declareBindAndConsume(ch, prefix, topic)
	if err != nil {
		return err
	}
	go func() {
		defer ch.Close()
		for d := range msgs {
			var change V
			if err := jsoncompat.Unmarshal(d.Body, &change); err != nil {
				log.Printf("Failed to decode %s message: %v", topic, err)
				d.Nack(false, false)
				continue
			}
			if err := fn(change); err != nil {
				log.Printf("Error processing %s message: %v", topic, err)
				return
			}
			d.Ack(false)
		}
	}()
	return nil
}
