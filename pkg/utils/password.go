package utils

import "golang.org/x/crypto/bcrypt"

// PasswordCost bcrypt 工作因子
const PasswordCost = 10

// HashPassword 每次调用随机盐，同一明文得到不同哈希
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword 不匹配或哈希损坏都返回 false
func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}
