/*
 * @Description: 固定令牌
 * @Author: 安知鱼
 * @Date: 2026-09-06 10:02:11
 * @LastEditTime: 2026-09-06 10:02:11
 * @LastEditors: 安知鱼
 */
package tokenstore

import "context"

// Static 始终返回同一个令牌，空字符串表示游客
type Static string

func (s Static) Token(context.Context) (string, error) {
	return string(s), nil
}
