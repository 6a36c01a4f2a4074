package config

type Bitly struct {
	// Generic Access Token，對應 Authorization: Bearer <token>
	AccessToken string `mapstructure:"ACCESS_TOKEN" json:"-" yaml:"access_token" validate:"required"`
	// API base url，不含最後的 /
	APIURL string `mapstructure:"API_URL" json:"api_url" yaml:"api_url" validate:"required,url"`
	// 短網址網域，用來判斷輸入是否為 bitlink
	Domain string `mapstructure:"DOMAIN" json:"domain" yaml:"domain" validate:"required,hostname"`
	// 有設定就不呼叫 /user 取得 default_group_guid
	GroupGUID string `mapstructure:"GROUP_GUID" json:"group_guid" yaml:"group_guid"`
	// clicks summary 的 units，-1 代表全部期間
	ClickUnits int `mapstructure:"CLICK_UNITS" json:"click_units" yaml:"click_units" validate:"min=-1"`
	// 縮網址前先 GET 一次長網址確認可連線
	VerifyLongURL bool `mapstructure:"VERIFY_LONG_URL" json:"verify_long_url" yaml:"verify_long_url"`
	// HTTP client timeout（毫秒），0 代表沿用 client 預設（不逾時）
	Timeout int64 `mapstructure:"TIMEOUT" json:"timeout" yaml:"timeout" validate:"min=0"`
}
