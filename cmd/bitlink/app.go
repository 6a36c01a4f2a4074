package main

import (
	"net/http"
	"time"

	"bitlink/config"
)

// newHttpClient Bitly 與長網址檢查共用的 client；BITLY__TIMEOUT 為毫秒
func newHttpClient(conf *config.Configuration) *http.Client {
	return &http.Client{
		Timeout: time.Duration(conf.Bitly.Timeout) * time.Millisecond,
	}
}

// newConfiguration 啟動當下的設定快照，給不需要熱更新的元件使用
func newConfiguration(store *config.Store) *config.Configuration {
	return store.Load()
}
