package document

import (
	"strings"

	"github.com/google/uuid"
)

const keyLen = 5

// generateKey returns a short random block key for which taken reports
// false.
func generateKey(taken func(string) bool) string {
	for {
		k := strings.ReplaceAll(uuid.NewString(), "-", "")[:keyLen]
		if taken == nil || !taken(k) {
			return k
		}
	}
}
