package errcode

import (
	"fmt"
	"net/http"
)

// Err 业务错误
// Code 用于前端识别错误类型, HTTPStatus 控制响应状态码
type Err struct {
	code       int
	msg        string
	httpStatus int
}

func NewErr(code int, msg string, httpStatus int) *Err {
	return &Err{code: code, msg: msg, httpStatus: httpStatus}
}

// NewCustomErr 创建自定义错误, 使用通用业务错误码
func NewCustomErr(msg string) *Err {
	return NewErr(CodeCustom, msg, http.StatusOK)
}

func (e *Err) Error() string {
	return fmt.Sprintf("code: %d, msg: %s", e.code, e.msg)
}

func (e *Err) Code() int       { return e.code }
func (e *Err) Msg() string     { return e.msg }
func (e *Err) HTTPStatus() int { return e.httpStatus }

// 错误码定义
// 2xxxx 为通用错误, 3xxxx 为拍卖业务错误
const (
	CodeOK            = 20000
	CodeCustom        = 20001
	CodeInvalidParams = 20002
	CodeUnauthorized  = 20003
	CodeNotFound      = 20004
	CodeUnexpected    = 20500
)

var (
	ErrInvalidParams = NewErr(CodeInvalidParams, "invalid params", http.StatusOK)
	ErrUnauthorized  = NewErr(CodeUnauthorized, "unauthorized operation", http.StatusOK)
	ErrNotFound      = NewErr(CodeNotFound, "record not found", http.StatusOK)
	ErrUnexpected    = NewErr(CodeUnexpected, "server unexpected error", http.StatusInternalServerError)
)
