package utils

import "golang.org/x/crypto/bcrypt"

func HashSecretCode(code string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(code), 12)
	return string(bytes), err
}

func CheckSecretCode(hash, code string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(code))
	return err == nil
}
