package utils

import (
	"fmt"
	rndm "math/rand"
	"strconv"
	"strings"
	"time"
)

// --- Random String and ID Generators ---

var letterRunes = []rune("abcdefghijklmnopqrstuvwxyz0123456789_ABCDEFGHIJKLMNOPQRSTUVWXYZ")

// GenerateRandomString creates a random alphanumeric string of length n.
func GenerateRandomString(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letterRunes[rndm.Intn(len(letterRunes))]
	}
	return string(b)
}

// GenerateID returns a unique id: prefix, time-based suffix, random tail.
// IDs are opaque to callers and never reused.
func GenerateID(prefix string) string {
	return fmt.Sprintf("%s-%s-%s", prefix, strconv.FormatInt(time.Now().UnixNano(), 36), GenerateRandomString(4))
}

// --- String Helpers ---

func ContainsIgnoreCase(str, substr string) bool {
	return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
}
