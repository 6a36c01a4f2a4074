package config

import "bitlink/utils/validate"

// Validate 檢查載入後的設定，token 為空時直接失敗
func (c *Configuration) Validate() error {
	return validate.Struct(c)
}
