/*
 * @Description: 数据访问层的错误分类
 * @Author: 安知鱼
 * @Date: 2026-09-02 10:12:40
 * @LastEditTime: 2026-09-14 16:03:11
 * @LastEditors: 安知鱼
 */
package constant

import "errors"

// 定义三类调用失败的标准错误，具体错误通过 errors.Is 与之匹配
var (
	// ErrValidation 表示请求参数校验失败，此时尚未发出任何网络请求
	ErrValidation = errors.New("请求参数校验失败")

	// ErrBusiness 表示传输成功，但后端信封中的 code 不是 200
	ErrBusiness = errors.New("业务处理失败")

	// ErrTransport 表示网络错误或非 2xx 的 HTTP 状态
	ErrTransport = errors.New("网络或HTTP请求失败")
)

// 各类失败的兜底提示文案，与前端原有文案保持一致
const (
	MsgSlugRequired     = "slug 不能为空"
	MsgBusinessFallback = "Business Error"
	MsgUnknownResponse  = "未知响应数据"
	MsgNetworkFallback  = "Network/HTTP Error"
)
