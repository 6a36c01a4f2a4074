package database

import (
	client "bitlink/internal/database/client"
	fluentdRepo "bitlink/internal/database/fluentd/repository"

	"github.com/google/wire"
)

// ProviderSet 定義 audit log 相關依賴
var ProviderSet = wire.NewSet(
	client.NewFluentdClient,
	fluentdRepo.ProviderSet,
)
