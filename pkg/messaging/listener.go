package messaging

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

func DeclareBindAndConsume(ch *amqp.Channel, prefix string, topic ChangeTopic) (<-chan amqp.Delivery, error) {
	name := getName(prefix, topic)
	if err := DefineTopic(ch, prefix, topic); err != nil {
		return nil, err
	}
	q, err := ch.QueueDeclare(
		"",    // name
		false, // durable
		false, // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return nil, err
	}
	err = ch.QueueBind(q.Name, name, name, false, nil)
	if err != nil {
		return nil, err
	}
	return ch.Consume(
		q.Name,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
}

// ListenToTopic consumes a topic until the channel closes. Messages that fail
// to process are rejected without requeue and consumption continues.
func ListenToTopic(ch *amqp.Channel, prefix string, topic ChangeTopic, handle func(amqp.Delivery) error) error {
	msgs, err := DeclareBindAndConsume(ch, prefix, topic)
	if err != nil {
		return err
	}
	go func() {
		defer ch.Close()
		for d := range msgs {
			if err := handle(d); err != nil {
				log.Printf("Error processing %s message: %v", topic, err)
				d.Nack(false, false)
				continue
			}
			d.Ack(false)
		}
	}()
	return nil
}

// DecodeFilterBroadcast unmarshals a filters_changed message body.
func DecodeFilterBroadcast(body []byte) (FilterBroadcast, error) {
	var msg FilterBroadcast
	err := json.Unmarshal(body, &msg)
	return msg, err
}

// ListenForFilters calls fn for every filter broadcast of the given session.
// An empty sessionId follows every session.
func ListenForFilters(conn *amqp.Connection, prefix, sessionId string, fn func(FilterBroadcast) error) error {
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	return ListenToTopic(ch, prefix, FiltersChanged, func(d amqp.Delivery) error {
		msg, err := DecodeFilterBroadcast(d.Body)
		if err != nil {
			return err
		}
		if sessionId != "" && msg.SessionId != sessionId {
			return nil
		}
		return fn(msg)
	})
}
