package jwt

import (
	"context"
	"errors"
	"fmt"
	"github.com/golang-jwt/jwt/v5"
	"strconv"
	"time"
)

var ErrInvalidToken = errors.New("invalid token")

type JWT struct {
	key      []byte
	duration time.Duration
	now      func() time.Time
}

// User 是令牌中携带的身份信息
type User struct {
	ID       uint
	Username string
	IsAdmin  bool
	IssuedAt time.Time
	Expires  time.Time
}

type claims struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

func New(key string, duration time.Duration) (*JWT, error) {
	if len(key) == 0 {
		return nil, errors.New("key is empty")
	}
	if duration <= 0 {
		return nil, errors.New("duration must be positive")
	}

	return &JWT{key: []byte(key), duration: duration, now: time.Now}, nil
}

// SetClock 替换时间来源，测试用
func (j *JWT) SetClock(now func() time.Time) {
	j.now = now
}

func (j *JWT) SignToken(id uint, username string, isAdmin bool) (string, *User, error) {
	now := j.now()
	user := &User{
		ID:       id,
		Username: username,
		IsAdmin:  isAdmin,
		IssuedAt: now,
		Expires:  ceilSecond(now.Add(j.duration)),
	}

	// 创建声明
	c := &claims{
		Username: username,
		IsAdmin:  isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(id), 10),
			IssuedAt:  jwt.NewNumericDate(user.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(user.Expires),
		},
	}

	// 签名并返回
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(j.key)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	return token, user, nil
}

func (j *JWT) ParseUser(tokenString string) (*User, error) {
	// 检查是否有效
	if len(tokenString) == 0 {
		return nil, fmt.Errorf("%w: token string is empty", ErrInvalidToken)
	}

	c := &claims{}
	token, err := jwt.ParseWithClaims(tokenString, c, func(token *jwt.Token) (interface{}, error) {
		return j.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	// 到达过期时间的那一刻就失效
	expires := c.ExpiresAt.Time
	if !j.now().Before(expires) {
		return nil, fmt.Errorf("%w: token expired", ErrInvalidToken)
	}

	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}

	user := &User{
		ID:       uint(id),
		Username: c.Username,
		IsAdmin:  c.IsAdmin,
		Expires:  expires,
	}
	if c.IssuedAt != nil {
		user.IssuedAt = c.IssuedAt.Time
	}

	return user, nil
}

// ceilSecond 向上取整到秒：exp 只有秒级精度，截断会让令牌提前失效
func ceilSecond(t time.Time) time.Time {
	if truncated := t.Truncate(time.Second); !truncated.Equal(t) {
		return truncated.Add(time.Second)
	}
	return t
}

type contextKey struct{}

// NewContext 把已验证的身份放进 context ，供后续处理使用
func NewContext(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

func FromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(contextKey{}).(*User)
	return user, ok && user != nil
}
