package guard

import (
	"fmt"
	"sort"
	"strings"
)

// DetermineVerdict reduces a finding set to a single verdict. Any
// non-empty finding set without a critical severity yields caution, even
// when every finding is low severity.
func DetermineVerdict(findings []Finding) Verdict {
	if len(findings) == 0 {
		return VerdictSafe
	}
	for _, f := range findings {
		if f.Severity == SeverityCritical {
			return VerdictDangerous
		}
	}
	return VerdictCaution
}

func buildSummary(name string, verdict Verdict, findings []Finding) string {
	if len(findings) == 0 {
		return fmt.Sprintf("%s: clean scan, no threats detected", name)
	}
	seen := map[string]struct{}{}
	var categories []string
	for _, f := range findings {
		if _, ok := seen[f.Category]; ok {
			continue
		}
		seen[f.Category] = struct{}{}
		categories = append(categories, f.Category)
	}
	sort.Strings(categories)
	return fmt.Sprintf("%s: %s, %d finding(s) in %s", name, verdict, len(findings), strings.Join(categories, ", "))
}
