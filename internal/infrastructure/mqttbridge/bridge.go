// Package mqttbridge escucha la telemetría publicada por los nodos en MQTT y la
// reenvía al endpoint HTTP de ingesta.
package mqttbridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/reefet/reefet-api/pkg/logger"
)

// Forwarder lo implementa *Relay.
type Forwarder interface {
	Forward(ctx context.Context, payload []byte) error
}

// ErrIncomplete payload sin idReefer o sin ninguna clave de nodo.
var ErrIncomplete = errors.New("payload incompleto")

// Bridge filtra y reenvía mensajes.
type Bridge struct {
	fwd Forwarder
	log *logger.Logger
}

func NewBridge(fwd Forwarder, log *logger.Logger) *Bridge {
	return &Bridge{fwd: fwd, log: log.Component("mqttbridge")}
}

// keys son los campos mínimos que se revisan antes de reenviar; el resto lo valida la API.
type keys struct {
	NodeCode string `json:"idNodo"`
	DepotTag string `json:"identificadorNodo"`
	ReeferID string `json:"idReefer"`
}

// check descarta lo que la API rechazaría seguro: JSON inválido o sin claves.
func check(payload []byte) error {
	var k keys
	if err := json.Unmarshal(payload, &k); err != nil {
		return fmt.Errorf("json inválido: %w", err)
	}
	if strings.TrimSpace(k.ReeferID) == "" {
		return fmt.Errorf("%w: falta idReefer", ErrIncomplete)
	}
	if strings.TrimSpace(k.NodeCode) == "" && strings.TrimSpace(k.DepotTag) == "" {
		return fmt.Errorf("%w: falta idNodo o identificadorNodo", ErrIncomplete)
	}
	return nil
}

// Handle procesa un mensaje. Los descartes y fallos se registran y se devuelven.
func (b *Bridge) Handle(ctx context.Context, topic string, payload []byte) error {
	if err := check(payload); err != nil {
		b.log.Warn().Err(err).Str("topic", topic).Msg("mensaje descartado")
		return err
	}
	if err := b.fwd.Forward(ctx, payload); err != nil {
		b.log.Error().Err(err).Str("topic", topic).Msg("error al registrar despacho")
		return err
	}
	b.log.Debug().Str("topic", topic).Msg("despacho registrado")
	return nil
}

// SubscriberConfig conexión al broker.
type SubscriberConfig struct {
	BrokerURL string
	ClientID  string
	Username  string
	Password  string
	Topic     string
	QoS       byte
}

// Run conecta al broker, se suscribe a Topic (también tras cada reconexión)
// y pasa cada mensaje a Handle hasta que ctx se cancela.
func (b *Bridge) Run(ctx context.Context, cfg SubscriberConfig) error {
	onMessage := func(_ mqtt.Client, msg mqtt.Message) {
		_ = b.Handle(ctx, msg.Topic(), msg.Payload())
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.BrokerURL).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetCleanSession(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	opts.SetOnConnectHandler(func(c mqtt.Client) {
		b.log.Info().Str("broker", cfg.BrokerURL).Msg("conectado al broker")
		if token := c.Subscribe(cfg.Topic, cfg.QoS, onMessage); token.Wait() && token.Error() != nil {
			b.log.Error().Err(token.Error()).Str("topic", cfg.Topic).Msg("error al suscribirse")
			return
		}
		b.log.Info().Str("topic", cfg.Topic).Msg("suscrito")
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		b.log.Warn().Err(err).Msg("conexión MQTT perdida")
	})

	client := mqtt.NewClient(opts)
	token := client.Connect()
	select {
	case <-ctx.Done():
		client.Disconnect(250)
		return ctx.Err()
	case <-token.Done():
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("conectar a %s: %w", cfg.BrokerURL, err)
	}

	<-ctx.Done()
	client.Disconnect(250)
	return nil
}
