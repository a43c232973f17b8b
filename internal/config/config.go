// Package config provides configuration types and loading for skillfence.
package config

// Config is the root configuration struct.
// Top-level groups: Trust, Classifier, Notify, History.
type Config struct {
	Trust      TrustConfig      `json:"trust"`
	Classifier ClassifierConfig `json:"classifier"`
	Notify     NotifyConfig     `json:"notify"`
	History    HistoryConfig    `json:"history"`
}

// TrustConfig extends the fixed trusted source set. The builtin trusted
// prefixes are compiled in and cannot be removed here.
type TrustConfig struct {
	ExtraTrustedPrefixes []string `json:"extraTrustedPrefixes"`
}

// ClassifierConfig configures the optional LLM audit pass.
type ClassifierConfig struct {
	Enabled        bool   `json:"enabled" envconfig:"ENABLED"`
	APIKey         string `json:"apiKey" envconfig:"API_KEY"`
	APIBase        string `json:"apiBase" envconfig:"API_BASE"`
	Model          string `json:"model" envconfig:"MODEL"`
	TimeoutSeconds int    `json:"timeoutSeconds" envconfig:"TIMEOUT_SECONDS"`
}

// NotifyConfig groups the best-effort security event sinks.
type NotifyConfig struct {
	Slack SlackNotifyConfig `json:"slack"`
	Kafka KafkaNotifyConfig `json:"kafka"`
}

// SlackNotifyConfig configures the Slack sink.
type SlackNotifyConfig struct {
	Enabled bool   `json:"enabled" envconfig:"ENABLED"`
	Token   string `json:"token" envconfig:"TOKEN"`
	Channel string `json:"channel" envconfig:"CHANNEL"`
}

// KafkaNotifyConfig configures the Kafka sink.
type KafkaNotifyConfig struct {
	Enabled bool     `json:"enabled" envconfig:"ENABLED"`
	Brokers []string `json:"brokers" envconfig:"BROKERS"`
	Topic   string   `json:"topic" envconfig:"TOPIC"`
}

// HistoryConfig configures the local scan-history store.
type HistoryConfig struct {
	Enabled bool `json:"enabled" envconfig:"ENABLED"`
}

// DefaultConfig returns the baseline configuration.
func DefaultConfig() *Config {
	return &Config{
		Classifier: ClassifierConfig{
			APIBase:        "https://openrouter.ai/api/v1",
			TimeoutSeconds: 60,
		},
		Notify: NotifyConfig{
			Kafka: KafkaNotifyConfig{
				Topic: "skillfence.decisions",
			},
		},
		History: HistoryConfig{
			Enabled: true,
		},
	}
}
