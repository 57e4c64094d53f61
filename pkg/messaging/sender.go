package messaging

import (
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

func DefineTopic(ch *amqp.Channel, prefix string, topic ChangeTopic) error {
	name := getName(prefix, topic)
	return ch.ExchangeDeclare(
		name,    // name
		"topic", // type
		true,    // durable
		false,   // auto-delete
		false,   // internal
		false,   // noWait
		nil,     // arguments
	)
}

func getName(prefix string, topic ChangeTopic) string {
	return fmt.Sprintf("%s_%s", prefix, topic)
}

func SendChange[V any](c *amqp.Connection, prefix string, topic ChangeTopic, data V) error {
	bytes, err := json.Marshal(data)
	if err != nil {
		return err
	}
	ch, err := c.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	name := getName(prefix, topic)
	return ch.Publish(
		name,
		name,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        bytes,
		},
	)
}

// RabbitPublisher publishes to topic exchanges named <prefix>_<topic>.
type RabbitPublisher struct {
	prefix     string
	connection *amqp.Connection
}

func NewRabbitPublisher(url, prefix string, topics ...ChangeTopic) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	defer ch.Close()
	for _, topic := range topics {
		if err := DefineTopic(ch, prefix, topic); err != nil {
			conn.Close()
			return nil, err
		}
	}
	return &RabbitPublisher{prefix: prefix, connection: conn}, nil
}

func (p *RabbitPublisher) Publish(topic ChangeTopic, data any) error {
	return SendChange(p.connection, p.prefix, topic, data)
}

func (p *RabbitPublisher) Connection() *amqp.Connection {
	return p.connection
}

func (p *RabbitPublisher) Close() error {
	return p.connection.Close()
}
