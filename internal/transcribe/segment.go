package transcribe

import (
	"strconv"
	"strings"
)

// Segment is one timed unit from the speech-to-text engine.
type Segment struct {
	Start  string `json:"start"`
	Speech string `json:"speech"`
}

// StartSeconds converts the segment start time (hh:mm:ss with an optional
// fractional part after "." or ",") to whole seconds, truncating fractions.
func (s Segment) StartSeconds() int {
	total := 0
	for _, part := range strings.Split(s.Start, ":") {
		if i := strings.IndexAny(part, ".,"); i >= 0 {
			part = part[:i]
		}
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			n = 0
		}
		total = total*60 + n
	}
	return total
}
