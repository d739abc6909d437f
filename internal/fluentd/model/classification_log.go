package model

// 一筆分類結果的歸檔紀錄
type ClassificationLog struct {
	RequestID      string  `json:"request_id"`
	ProjectName    string  `json:"project_name,omitempty"`
	Ingredient     string  `json:"ingredient"`
	Classification string  `json:"classification"`
	Model          string  `json:"model,omitempty"`
	DurationMs     float64 `json:"duration_ms,omitempty"`
	Version        string  `json:"version,omitempty"`
	LoggedAt       string  `json:"logged_at"`
}
