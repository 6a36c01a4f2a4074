package bitly

import "context"

type UserInfo struct {
	Login            string  `json:"login"`
	Name             string  `json:"name"`
	DefaultGroupGUID *string `json:"default_group_guid"`
}

type ShortenPayload struct {
	LongURL   string `json:"long_url"`
	Domain    string `json:"domain"`
	GroupGUID string `json:"group_guid"`
}

type ShortenResult struct {
	ID      string  `json:"id"`
	Link    *string `json:"link"`
	LongURL string  `json:"long_url"`
}

type ClickSummary struct {
	TotalClicks *int   `json:"total_clicks"`
	Units       int    `json:"units"`
	Unit        string `json:"unit"`
}

// Bitly 錯誤回應，例如 {"message":"NOT_FOUND","description":"..."}
type apiError struct {
	Message     string `json:"message"`
	Description string `json:"description"`
}

type Service interface {
	// UserInfo 取得 token 所屬使用者；回應必須帶 default_group_guid
	UserInfo(ctx context.Context) (*UserInfo, error)
	// Shorten 建立 bitlink 並回傳短網址
	Shorten(ctx context.Context, longURL, groupGUID string) (string, error)
	// ClickSummary 回傳 bitlink（host+path，例如 bit.ly/abc）的總點擊數
	ClickSummary(ctx context.Context, bitlinkID string) (int, error)
}
