package utils

import (
	"time"

	"github.com/golang-jwt/jwt"
)

var (
	jwtSecret   = []byte("your_jwt_secret")
	jwtLifetime = 240 * time.Hour
)

// InitJWT 以配置中的密鑰與有效期初始化 token 簽發
func InitJWT(secret string, expireHours int) {
	if secret != "" {
		jwtSecret = []byte(secret)
	}
	if expireHours > 0 {
		jwtLifetime = time.Duration(expireHours) * time.Hour
	}
}

type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

// GenerateToken 生成一個新的 JWT token
func GenerateToken(userID uint, role string) (string, error) {
	nowTime := time.Now()
	expireTime := nowTime.Add(jwtLifetime)

	claims := Claims{
		UserID: userID,
		Role:   role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expireTime.Unix(),
			IssuedAt:  nowTime.Unix(),
		},
	}

	tokenClaims := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenClaims.SignedString(jwtSecret)
}

// ParseToken 解析和驗證 JWT token
func ParseToken(token string) (*Claims, error) {
	tokenClaims, err := jwt.ParseWithClaims(token, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})

	if tokenClaims != nil {
		if claims, ok := tokenClaims.Claims.(*Claims); ok && tokenClaims.Valid {
			return claims, nil
		}
	}

	return nil, err
}
