package error

import (
	"errors"
	"net/http"
)

type Error struct {
	httpCode  int
	errorCode int
	errorMsg  string
	errorDesc string
	cause     error
}

func New(httpCode, errorCode int, errorMsg string, errorDesc string) *Error {
	return &Error{
		httpCode:  httpCode,
		errorCode: errorCode,
		errorMsg:  errorMsg,
		errorDesc: errorDesc,
	}
}

// From 把任意 error 轉成 *Error；已是 *Error（含被 wrap）就直接取出
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return InternalServer(err.Error()).WithCause(err)
}

// WithCause 記錄底層錯誤，errors.Is / errors.As 可穿透
func (e *Error) WithCause(cause error) *Error {
	e.cause = cause
	return e
}

// ✅ 使用者輸入錯誤
func ValidateErr(errorDesc string) *Error {
	return New(http.StatusBadRequest, BAD_REQUEST_CONFIG, "invalid-config", errorDesc)
}

func BadRequestParams(errorDesc string) *Error {
	return New(http.StatusBadRequest, BAD_REQUEST_PARAMS, "invalid-link", errorDesc)
}

// ✅ 程式內部錯誤
func InternalServer(errorDesc string) *Error {
	return New(http.StatusInternalServerError, INTERNAL_ERROR, "internal-error", errorDesc)
}

func ServiceUnavailable(errorDesc string) *Error {
	return New(http.StatusServiceUnavailable, SERVICE_UNAVAILABLE, "service-unavailable", errorDesc)
}

// ✅ 外部 API 錯誤
func ExternalRequestError(errorDesc string) *Error {
	return New(http.StatusBadGateway, EXTERNAL_REQUEST_ERROR, "external-request-failed", errorDesc)
}

func ExternalResponseFormatError(errorDesc string) *Error {
	return New(http.StatusBadGateway, EXTERNAL_RESPONSE_FORMAT_ERROR, "external-response-invalid", errorDesc)
}

// ExternalStatusError 對方回非 2xx；httpCode 保留對方的狀態碼
func ExternalStatusError(status int, errorDesc string) *Error {
	return New(status, EXTERNAL_STATUS_ERROR, http.StatusText(status), errorDesc)
}

func GatewayTimeout(errorDesc string) *Error {
	return New(http.StatusGatewayTimeout, GATEWAY_TIMEOUT, "gateway-timeout", errorDesc)
}

// ✅ 權限錯誤
func Unauthorized(errorDesc string, errorCode ...int) *Error {
	errCode := UNAUTHORIZED
	if len(errorCode) > 0 {
		errCode = errorCode[0]
	}
	return New(http.StatusUnauthorized, errCode, "unauthorized", errorDesc)
}

func Forbidden(errorDesc string, errorCode ...int) *Error {
	errCode := FORBIDDEN
	if len(errorCode) > 0 {
		errCode = errorCode[0]
	}
	return New(http.StatusForbidden, errCode, "forbidden", errorDesc)
}

func RateLimitExceeded(errorDesc string) *Error {
	return New(http.StatusTooManyRequests, RATE_LIMIT_EXCEEDED, "rate-limit-exceeded", errorDesc)
}

// ✅ 資源找不到
func NotFound(errorDesc string, errorCode ...int) *Error {
	errCode := NOT_FOUND
	if len(errorCode) > 0 {
		errCode = errorCode[0]
	}
	return New(http.StatusNotFound, errCode, "not-found", errorDesc)
}

func (e *Error) HttpCode() int {
	return e.httpCode
}

func (e *Error) ErrorCode() int {
	return e.errorCode
}

func (e *Error) Error() string {
	if e.errorDesc == "" {
		return e.errorMsg
	}
	return e.errorMsg + ": " + e.errorDesc
}

func (e *Error) Unwrap() error {
	return e.cause
}

// MapHttpStatusToError 依對方回傳的狀態碼分類；未列出的一律視為 ExternalStatusError
func MapHttpStatusToError(status int, desc string) *Error {
	var err *Error
	switch status {
	case http.StatusUnauthorized:
		err = Unauthorized(desc)
	case http.StatusForbidden:
		err = Forbidden(desc)
	case http.StatusNotFound:
		err = NotFound(desc)
	case http.StatusTooManyRequests:
		err = RateLimitExceeded(desc)
	case http.StatusServiceUnavailable:
		err = ServiceUnavailable(desc)
	case http.StatusGatewayTimeout:
		err = GatewayTimeout(desc)
	default:
		return ExternalStatusError(status, desc)
	}
	err.httpCode = status
	return err
}

// IsHTTP 網路或 HTTP 層失敗：請求送不出去，或對方回非 2xx
func IsHTTP(err error) bool {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return false
	}
	switch appErr.errorCode {
	case EXTERNAL_REQUEST_ERROR, EXTERNAL_STATUS_ERROR, GATEWAY_TIMEOUT, SERVICE_UNAVAILABLE,
		UNAUTHORIZED, FORBIDDEN, NOT_FOUND, RATE_LIMIT_EXCEEDED:
		return true
	}
	return false
}

// IsInvalidInput 使用者輸入的連結本身就不合法，沒有發出任何請求
func IsInvalidInput(err error) bool {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.errorCode == BAD_REQUEST_PARAMS
}
