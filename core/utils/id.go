package utils

import (
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// GenerateRequestID returns a short id for request correlation in logs.
func GenerateRequestID() string {
	id, err := gonanoid.Generate(idAlphabet, 12)
	if err != nil {
		return uuid.NewString()
	}
	return id
}
