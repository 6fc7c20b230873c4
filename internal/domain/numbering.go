package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatDocumentNumber renders a document number such as EST-0001. The
// numeric suffix is zero-padded to at least 4 digits.
func FormatDocumentNumber(prefix string, n int) string {
	return fmt.Sprintf("%s-%04d", prefix, n)
}

// NextDocumentNumber scans existing numbers carrying the given prefix,
// takes the highest numeric suffix and returns prefix-(max+1). Numbers with
// a different prefix or a non-numeric suffix are ignored. Gaps left by
// deleted documents are not backfilled.
func NextDocumentNumber(prefix string, existing []string) string {
	max := 0
	for _, num := range existing {
		suffix, ok := strings.CutPrefix(num, prefix+"-")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil || n <= 0 {
			continue
		}
		if n > max {
			max = n
		}
	}
	return FormatDocumentNumber(prefix, max+1)
}
