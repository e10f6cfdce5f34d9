package constants

import "time"

const (
	AuthTokenDuration = 8 * time.Hour // 令牌有效期
)

const ContextKeyToken = "token" // echo-jwt 存放解析结果使用的键
