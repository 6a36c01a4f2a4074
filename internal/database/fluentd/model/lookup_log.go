package model

// LookupLog 每次 shorten / clicks 查詢送到 Fluentd 的稽核紀錄
type LookupLog struct {
	Input     string `json:"input"`
	Operation string `json:"operation"`
	Bitlink   string `json:"bitlink,omitempty"`
	LongURL   string `json:"long_url,omitempty"`
	Clicks    *int   `json:"clicks,omitempty"`
	Error     string `json:"error,omitempty"`
	ErrorCode int    `json:"error_code,omitempty"`
	Status    int    `json:"status,omitempty"`
	Version   string `json:"version,omitempty"`
	LoggedAt  string `json:"logged_at"`
}
