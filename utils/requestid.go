package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewRequestID builds a correlation id like "calc_1724900000000_a1b2c3d4e".
// The prefix names the operation; the suffix makes collisions implausible.
func NewRequestID(prefix string) string {
	frag := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), frag)
}
