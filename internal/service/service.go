package service

import (
	"bitlink/internal/service/bitly"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	bitly.NewBitlyService,
	NewLinkService,
)
