package config

import "errors"

type Configuration struct {
	App       App             `mapstructure:"APP" json:"app" yaml:"app"`
	Log       Log             `mapstructure:"LOG" json:"log" yaml:"log"`
	OpenAI    OpenAI          `mapstructure:"OPENAI" json:"openai" yaml:"openai"`
	Telemetry TelemetryConfig `mapstructure:"TELEMETRY" yaml:"telemetry"`
	Fluentd   Fluentd         `mapstructure:"FLUENTD" yaml:"fluentd"`
}

// Validate 啟動時檢查必要設定，缺少憑證直接中止服務
func (c *Configuration) Validate() error {
	if c.OpenAI.APIKey == "" {
		return errors.New("config: OPENAI__API_KEY is required")
	}
	if c.OpenAI.TimeoutSeconds < 0 {
		return errors.New("config: OPENAI__TIMEOUT_SECONDS must not be negative")
	}
	return nil
}
