package service

import (
	"net/url"
	"strings"
)

// IsBitlink 輸入的 host 等於短網址網域才算 bitlink；無法解析或沒有 host 的都不是
func IsBitlink(raw, domain string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return false
	}
	return strings.EqualFold(u.Host, domain)
}

// BitlinkID 轉成 Bitly API 用的 id：host + path，例如 https://bit.ly/3xYz → bit.ly/3xYz。
// path 保持原本的 escape（%3F 不會變成 ?），id 直接拼進請求路徑。
func BitlinkID(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	return strings.ToLower(u.Host) + strings.TrimRight(u.EscapedPath(), "/"), nil
}
