package playbook

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var codePattern = regexp.MustCompile(`^P-(\d+)$`)

// NextCode returns the code after the highest P-<n> in codes, zero padded to
// three digits. Codes that don't parse are ignored.
func NextCode(codes []string) string {
	highest := 0
	for _, c := range codes {
		m := codePattern.FindStringSubmatch(strings.TrimSpace(c))
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("P-%03d", highest+1)
}

// IsPlayCode reports whether s has the P-<digits> shape.
func IsPlayCode(s string) bool {
	return codePattern.MatchString(s)
}
