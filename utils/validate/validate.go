package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	cErr "bitlink/internal/pkg/error"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator 回傳共用的 validator，錯誤訊息的欄位名稱優先使用 mapstructure / json tag
func Validator() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		instance.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, key := range []string{"mapstructure", "json"} {
				name := strings.Split(f.Tag.Get(key), ",")[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})
	})
	return instance
}

// Struct 驗證 struct，失敗時回傳 ValidateErr（描述含所有失敗欄位）
func Struct(obj any) error {
	if err := Validator().Struct(obj); err != nil {
		return cErr.ValidateErr(ValidationErrorResponse(err)).WithCause(err)
	}
	return nil
}

// 輸出格式化的 validator error（欄位路徑/型別/規則）
func ValidationErrorResponse(err error) string {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		var b strings.Builder
		b.WriteString("validation error:")
		for _, fe := range errs {
			rule := fe.Tag()
			if fe.Param() != "" {
				rule += "=" + fe.Param()
			}
			b.WriteString(fmt.Sprintf(" field %q (type: %s) failed the '%s' rule;",
				fieldPath(fe.Namespace()), fe.Kind(), rule))
		}
		return strings.TrimSuffix(b.String(), ";")
	}
	return fmt.Sprintf("validation error: %s", err.Error())
}

// Configuration.BITLY.ACCESS_TOKEN → BITLY__ACCESS_TOKEN，與環境變數名稱一致
func fieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	return strings.Join(parts, "__")
}

// HTTPURL 檢查是否為含 host 的絕對 http/https 網址
func HTTPURL(raw string) error {
	if err := Validator().Var(raw, "required,http_url"); err != nil {
		return cErr.BadRequestParams(fmt.Sprintf("%q is not an absolute http(s) url", raw)).WithCause(err)
	}
	return nil
}
