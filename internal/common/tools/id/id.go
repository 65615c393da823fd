package id

import (
	"fmt"

	"github.com/google/uuid"
)

// GenerateRequestID - в качестве идентификатора запроса используется случайный UUID.
func GenerateRequestID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate request id, %w", err)
	}
	return id.String(), nil
}
