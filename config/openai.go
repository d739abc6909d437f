package config

const (
	DefaultOpenAIModel          = "gpt-4o-mini"
	DefaultOpenAIBaseURL        = "https://api.openai.com"
	DefaultOpenAITimeoutSeconds = 8
)

type OpenAI struct {
	// 上游 API 憑證，僅在服務啟動時讀取一次
	APIKey string `mapstructure:"API_KEY" json:"api_key" yaml:"api_key"`
	// 分類使用的模型
	Model string `mapstructure:"MODEL" json:"model" yaml:"model"`
	// 上游位址，測試或自建閘道時覆寫
	BaseURL string `mapstructure:"BASE_URL" json:"base_url" yaml:"base_url"`
	// 單次請求逾時（秒）
	TimeoutSeconds int `mapstructure:"TIMEOUT_SECONDS" json:"timeout_seconds" yaml:"timeout_seconds"`
}

// ApplyDefaults 補齊未指定的欄位，讓環境變數只需要提供 API Key
func (o *OpenAI) ApplyDefaults() {
	if o.Model == "" {
		o.Model = DefaultOpenAIModel
	}
	if o.BaseURL == "" {
		o.BaseURL = DefaultOpenAIBaseURL
	}
	if o.TimeoutSeconds == 0 {
		o.TimeoutSeconds = DefaultOpenAITimeoutSeconds
	}
}
