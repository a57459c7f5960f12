/*
 * @Description: 共享令牌所在的 Redis 连接
 * @Author: 安知鱼
 * @Date: 2025-06-15 11:30:55
 * @LastEditTime: 2026-09-17 15:02:48
 * @LastEditors: 安知鱼
 */
package database

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/anzhiyu-c/mysite/internal/pkg/logger"
	"github.com/anzhiyu-c/mysite/pkg/config"
)

// NewRedisClient 根据配置创建 Redis 客户端并检查连通性。
// 与后端不同，这里没有内存降级：令牌存储选了 redis 就必须能连上。
func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	redisAddr := cfg.GetString(config.KeyRedisAddr)
	if redisAddr == "" {
		return nil, fmt.Errorf("Redis 地址未配置")
	}

	redisDB := 0
	if s := cfg.GetString(config.KeyRedisDB); s != "" {
		var err error
		redisDB, err = strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("无效的 Redis.DB 值 '%s': %w", s, err)
		}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: cfg.GetString(config.KeyRedisPassword),
		DB:       redisDB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("连接 Redis (%s, DB %d) 失败: %w", redisAddr, redisDB, err)
	}

	logger.Component("database").Infof("成功连接到 Redis (%s, DB %d)", redisAddr, redisDB)
	return rdb, nil
}
