package core

const (
	BitlyAPIBaseURL   = "https://api-ssl.bitly.com/v4"
	BitlyDefaultHost  = "bit.ly"
	BitlyAllTimeUnits = -1
)

type BitlyEndpoint string

const (
	BitlyUserEndpoint          BitlyEndpoint = "/user"
	BitlyShortenEndpoint       BitlyEndpoint = "/shorten"
	BitlyClicksSummaryEndpoint BitlyEndpoint = "/bitlinks/{bitlink}/clicks/summary"
	// 縮網址前對長網址本身的檢查請求，僅用於 metric / trace 標籤
	LongURLProbe BitlyEndpoint = "long_url_probe"
)

// Operation 一次輸入被分派到的動作
type Operation string

const (
	OperationShorten Operation = "shorten"
	OperationClicks  Operation = "clicks"
)
