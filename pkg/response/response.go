/*
 * @Description: 后端统一返回结构（信封）
 * @Author: 安知鱼
 * @Date: 2025-06-15 12:16:18
 * @LastEditTime: 2026-09-14 16:20:37
 * @LastEditors: 安知鱼
 */
package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CodeSuccess 是信封中表示业务成功的状态码，与 HTTP 状态无关
const CodeSuccess = http.StatusOK

// CodeUnknown 用于响应体缺失时构造的兜底信封
const CodeUnknown = -1

// ApiResponse 是统一的API返回结构体
type ApiResponse[T any] struct {
	Data      T      `json:"data"`
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

// Succeeded 判断信封是否表示业务成功
func (r ApiResponse[T]) Succeeded() bool {
	return r.Code == CodeSuccess
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// Success 成功响应
func Success(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, ApiResponse[interface{}]{
		Code:      CodeSuccess,
		Message:   message,
		Data:      data,
		Timestamp: nowMillis(),
	})
}

// Fail 失败响应，HTTP 状态码与信封 code 一致
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, ApiResponse[interface{}]{
		Code:      code,
		Message:   message,
		Timestamp: nowMillis(),
	})
}

// BusinessFail 以 HTTP 200 返回业务失败，只在信封 code 中体现错误
func BusinessFail(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, ApiResponse[interface{}]{
		Code:      code,
		Message:   message,
		Timestamp: nowMillis(),
	})
}
