package security

import (
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword 使用 bcrypt 对口令做单向哈希
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("口令不能为空")
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "口令哈希失败")
	}

	return string(hashedBytes), nil
}

// CheckPasswordHash 校验口令与哈希是否匹配
func CheckPasswordHash(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
