// bridge se suscribe al topic MQTT de los nodos y reenvía cada mensaje a la API de ingesta.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/reefet/reefet-api/internal/infrastructure/mqttbridge"
	"github.com/reefet/reefet-api/pkg/config"
	"github.com/reefet/reefet-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	relay := mqttbridge.NewRelay(mqttbridge.RelayConfig{URL: cfg.MQTT.APIURL, RetryCount: 3})
	bridge := mqttbridge.NewBridge(relay, log)

	log.Info().
		Str("broker", cfg.MQTT.BrokerURL).
		Str("topic", cfg.MQTT.Topic).
		Str("api", cfg.MQTT.APIURL).
		Msg("iniciando puente MQTT")

	err = bridge.Run(ctx, mqttbridge.SubscriberConfig{
		BrokerURL: cfg.MQTT.BrokerURL,
		ClientID:  cfg.MQTT.ClientID,
		Username:  cfg.MQTT.Username,
		Password:  cfg.MQTT.Password,
		Topic:     cfg.MQTT.Topic,
		QoS:       1,
	})
	if err != nil && ctx.Err() == nil {
		log.Fatal().Err(err).Msg("puente MQTT")
	}
	log.Info().Msg("puente detenido")
}
