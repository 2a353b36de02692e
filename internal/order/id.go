package order

import (
	"math/rand/v2"
	"strings"
	"time"
)

const base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateID produces the human-readable ticket number in the
// restaurant's timezone: YYMMDD-HHMM-XXXX with a random base36 suffix.
// Collisions inside one minute are accepted as negligible; this is a
// ticket reference, not a credential.
func GenerateID(loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return FormatID(time.Now().In(loc), randomSuffix(4))
}

func FormatID(t time.Time, suffix string) string {
	return t.Format("060102-1504") + "-" + suffix
}

func randomSuffix(length int) string {
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		b.WriteByte(base36[rand.IntN(len(base36))])
	}
	return b.String()
}
