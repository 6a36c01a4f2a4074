package error

const (
	// 40000 ~ 49999: 使用者輸入錯誤
	BAD_REQUEST_PARAMS = 40001 // 無效的參數（例如不是 http(s) 網址）
	BAD_REQUEST_CONFIG = 40002 // 設定檔驗證失敗

	// 40100 ~ 40399: 驗證與權限錯誤
	UNAUTHORIZED = 40100 // 401 - token 無效或未設定
	FORBIDDEN    = 40301 // 403 - token 權限不足

	// 40400 ~ 40499: 資源錯誤
	NOT_FOUND = 40400 // 404 - bitlink 不存在

	// 42900 ~ 42999: 流量限制錯誤
	RATE_LIMIT_EXCEEDED = 42900 // 429 - 對方限流

	// 50000 ~ 50199: 程式內部錯誤
	INTERNAL_ERROR      = 50000
	SERVICE_UNAVAILABLE = 50002

	// 50200 ~ 50499: 外部請求錯誤
	EXTERNAL_REQUEST_ERROR         = 50200 // 請求送不出去（DNS、連線、逾時）
	EXTERNAL_RESPONSE_FORMAT_ERROR = 50201 // 回應格式錯誤或缺欄位
	EXTERNAL_STATUS_ERROR          = 50202 // 對方回非 2xx
	GATEWAY_TIMEOUT                = 50400
)
