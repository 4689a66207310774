package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GenerateID generates a unique ID with the given prefix
func GenerateID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}

// ValidateGrantID validates the grant ID format
func ValidateGrantID(id string) bool {
	rest, ok := strings.CutPrefix(id, "poa-")
	if !ok {
		return false
	}
	return uuid.Validate(rest) == nil
}
