// Package broker wraps the MQTT client used to republish decoded ECU
// fields. Every publish is QoS 1, not retained.
package broker

import (
	"fmt"
	"os"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"EcuLink/internal/model"
	"EcuLink/internal/util"
)

const connectTimeout = 10 * time.Second

// Publisher publishes decoded fields one at a time to a single broker.
// It is used by exactly one caller at a time.
type Publisher struct {
	client mqtt.Client
}

// Connect builds an MQTT client for host:port and connects synchronously.
// Reconnect policy stays with the session controller, so the client's own
// auto-reconnect is off.
func Connect(host string, port int) (*Publisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(fmt.Sprintf("tcp://%s:%d", host, port)).
		SetClientID(fmt.Sprintf("ecu-link-%d", os.Getpid())).
		SetAutoReconnect(false).
		SetConnectTimeout(connectTimeout)

	c := mqtt.NewClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect mqtt %s:%d: %w", host, port, token.Error())
	}
	util.Info("connected to MQTT broker %s:%d", host, port)
	return &Publisher{client: c}, nil
}

// NewPublisher wraps an already constructed client. Used by tests.
func NewPublisher(c mqtt.Client) *Publisher {
	return &Publisher{client: c}
}

// PublishAll publishes every item to baseTopic + item suffix and waits for
// each acknowledgement. A failed item is logged and the remaining items
// are still attempted; the number of failures is returned.
func (p *Publisher) PublishAll(baseTopic string, items []model.PublishItem) int {
	failed := 0
	for _, it := range items {
		topic := baseTopic + it.Suffix
		token := p.client.Publish(topic, 1, false, []byte(it.Value))
		if token.Wait() && token.Error() != nil {
			util.Error("publish %s: %v", topic, token.Error())
			failed++
		}
	}
	return failed
}

// Close disconnects from the broker, allowing in-flight work to finish.
func (p *Publisher) Close() {
	p.client.Disconnect(250)
}
