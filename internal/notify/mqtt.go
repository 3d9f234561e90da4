package notify

import (
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const topicPrefix = "minaret/notifications/"

// MQTTPublisher delivers fired notifications to subscriber devices over
// the community MQTT broker, one topic per notification identifier.
type MQTTPublisher struct {
	client mqtt.Client
}

var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("connected to MQTT broker")
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Warn().Err(err).Msg("MQTT connection lost")
}

// NewMQTTPublisher connects to the broker at brokerURL
// (e.g. "tcp://broker:1883").
func NewMQTTPublisher(brokerURL string) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID("minaret-" + uuid.NewString()[:8])
	opts.SetAutoReconnect(true)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect to MQTT broker: %w", token.Error())
	}

	return &MQTTPublisher{client: client}, nil
}

func (p *MQTTPublisher) Publish(req Request) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	token := p.client.Publish(topicPrefix+req.ID, 1, false, payload)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("publish notification %q: %w", req.ID, token.Error())
	}
	return nil
}

// Close disconnects from the broker, allowing in-flight work to finish.
func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}
