package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code 划分错误类别，决定 HTTP 状态码与是否可重试。
type Code int

const (
	CodeBadRequest Code = iota + 1
	CodeNotFound
	CodeInvalidFormat // 数量字符串无法解析，按数据质量问题处理
	CodeServerError
)

// Error 是对外暴露的业务错误：错误消息必须指明具体字段 / ID / 食材名。
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Cause }

// HTTPStatus 将错误类别映射为响应状态码。
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeBadRequest, CodeInvalidFormat:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func BadRequest(format string, args ...any) *Error {
	return &Error{Code: CodeBadRequest, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func InvalidFormat(format string, args ...any) *Error {
	return &Error{Code: CodeInvalidFormat, Message: fmt.Sprintf(format, args...)}
}

// ServerError 包装底层持久化错误，消息保留原因便于排查。
func ServerError(cause error, format string, args ...any) *Error {
	return &Error{Code: CodeServerError, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// From 取出链上的 *Error；不是业务错误则按 ServerError 兜底。
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Code: CodeServerError, Message: err.Error(), Cause: err}
}

// Is 判断错误是否属于某一类别。
func Is(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
