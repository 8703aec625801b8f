package security

import (
	"github.com/golang-jwt/jwt/v5"
)

const (
	JWTSecret string = "Tipside"
)

// UserClaims 身份服务签发的 Token 中包含的业务信息
type UserClaims struct {
	UserID uint64 `json:"user_id"`
	jwt.RegisteredClaims
}
