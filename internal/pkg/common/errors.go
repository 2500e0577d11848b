package common

import (
	"errors"
)

// 管線哨兵錯誤
// 各階段失敗時以 fmt.Errorf("...: %w", Err...) 包裝後向上傳遞，
// 由呼叫端以 errors.Is 判斷
var (
	ErrClassificationFailed = errors.New("intent classification failed")
	ErrEmptyExtraction      = errors.New("no ingredients extracted")
	ErrNoRecipesFound       = errors.New("no recipes found")
	ErrTimeout              = errors.New("external call timed out")
	ErrAuthenticationFailed = errors.New("grocery authentication failed")
	ErrEmptyAIResponse      = errors.New("empty AI response")
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrCacheDisabled        = errors.New("cache disabled")
	ErrCacheFull            = errors.New("cache full")
	ErrCacheMiss            = errors.New("cache miss")
)

// 預定義錯誤代碼
const (
	// 客戶端錯誤 (4xx)
	ErrCodeInvalidRequest  = "INVALID_REQUEST"   // 400
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE" // 413
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS" // 429

	// 服務器錯誤 (5xx)
	ErrCodeInternalError  = "INTERNAL_ERROR"  // 500
	ErrCodeGatewayTimeout = "GATEWAY_TIMEOUT" // 504
)
