/*
 * @Description: 调用失败的分类错误
 * @Author: 安知鱼
 * @Date: 2026-09-04 15:02:33
 * @LastEditTime: 2026-09-16 10:12:05
 * @LastEditors: 安知鱼
 */
package apiclient

import (
	"errors"
	"fmt"
	"strings"

	"github.com/anzhiyu-c/mysite/pkg/constant"
)

// Kind 标识错误属于哪一类失败
type Kind int

const (
	KindValidation Kind = iota + 1 // 参数校验失败，未发出请求
	KindBusiness                   // 信封 code 不是 200
	KindTransport                  // 网络错误或非 2xx 状态
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindBusiness:
		return "business"
	case KindTransport:
		return "transport"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error 是本层返回给调用方的唯一错误类型。
// Error() 只返回 Message，保证调用方拿到的就是可直接展示的文案。
type Error struct {
	Kind    Kind
	Message string
	// StatusCode 为 HTTP 状态码，仅传输类错误且收到响应时非零
	StatusCode int
	// Code 为信封中的业务码，仅业务类错误有意义
	Code int
	Err  error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is 让 errors.Is(err, constant.ErrBusiness) 之类的判断成立
func (e *Error) Is(target error) bool {
	switch target {
	case constant.ErrValidation:
		return e.Kind == KindValidation
	case constant.ErrBusiness:
		return e.Kind == KindBusiness
	case constant.ErrTransport:
		return e.Kind == KindTransport
	}
	return false
}

// Validation 构造参数校验错误
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func businessError(code int, message string, cause error) *Error {
	return &Error{
		Kind:    KindBusiness,
		Message: firstNonEmpty(message, constant.MsgBusinessFallback),
		Code:    code,
		Err:     cause,
	}
}

// transportError 按 响应体message -> 传输错误自身文案 -> 通用文案 的顺序取提示
func transportError(status int, bodyMessage string, cause error) *Error {
	causeMessage := ""
	if cause != nil {
		causeMessage = cause.Error()
	} else if status != 0 {
		causeMessage = fmt.Sprintf("Request failed with status code %d", status)
	}
	return &Error{
		Kind:       KindTransport,
		Message:    firstNonEmpty(bodyMessage, causeMessage, constant.MsgNetworkFallback),
		StatusCode: status,
		Err:        cause,
	}
}

// AsError 从错误链中取出 *Error
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// KindOf 返回错误的分类，非本包错误返回 0
func KindOf(err error) Kind {
	if apiErr, ok := AsError(err); ok {
		return apiErr.Kind
	}
	return 0
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
