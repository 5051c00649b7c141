package config

import "github.com/spf13/viper"

// RelayConfig is the minimal configuration the outbox relay binary needs.
type RelayConfig struct {
	DatabaseURL    string `mapstructure:"DB_CONNECTION_STRING"`
	RabbitMQURL    string `mapstructure:"RABBITMQ_URL"`
	EventQueueName string `mapstructure:"EVENT_QUEUE_NAME"`
}

func LoadRelayConfig(path string) (RelayConfig, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	viper.SetDefault("EVENT_QUEUE_NAME", "request-status-events")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return RelayConfig{}, err
		}
	}

	var cfg RelayConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return RelayConfig{}, err
	}
	return cfg, nil
}
