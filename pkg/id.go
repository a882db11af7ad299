package pkg

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewID produces a short prefixed identifier for mock entities,
// e.g. "a_1f3b9c2d" for a new aluno row.
func NewID(prefix string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s_%s", prefix, suffix)
}
