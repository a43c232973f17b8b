package guard

import (
	"fmt"
	"strings"
)

// trustedSourcePrefixes is the fixed set of fully trusted source
// identifiers. Immutable package data; config may only extend it.
var trustedSourcePrefixes = []string{
	"openai/skills",
	"anthropics/skills",
}

type installDecision string

const (
	decisionAllow installDecision = "allow"
	decisionBlock installDecision = "block"
)

// installPolicy maps trust level to the decision per verdict, indexed by
// Verdict.Rank() (safe, caution, dangerous).
var installPolicy = map[TrustLevel][3]installDecision{
	TrustBuiltin:      {decisionAllow, decisionAllow, decisionAllow},
	TrustTrusted:      {decisionAllow, decisionAllow, decisionBlock},
	TrustCommunity:    {decisionAllow, decisionBlock, decisionBlock},
	TrustAgentCreated: {decisionAllow, decisionBlock, decisionBlock},
}

// ResolveTrustLevel maps a source identifier to a trust tier. Builtin and
// agent-created levels are assigned by the caller, never derived here.
func ResolveTrustLevel(source string, extraPrefixes []string) TrustLevel {
	s := strings.TrimSpace(source)
	for _, trusted := range trustedSourcePrefixes {
		if s == trusted || strings.HasPrefix(s, trusted) {
			return TrustTrusted
		}
	}
	for _, trusted := range extraPrefixes {
		trusted = strings.TrimSpace(trusted)
		if trusted != "" && (s == trusted || strings.HasPrefix(s, trusted)) {
			return TrustTrusted
		}
	}
	return TrustCommunity
}

// ShouldAllowInstall decides whether a scanned skill may be installed.
// It is total: every (trust, verdict, force) combination yields a
// decision and a reason. Without force, a dangerous verdict blocks
// before the policy table is consulted.
func ShouldAllowInstall(result *ScanResult, force bool) (bool, string) {
	if result.Verdict == VerdictDangerous && !force {
		return false, fmt.Sprintf("Scan verdict is DANGEROUS (%d findings). Blocked.", len(result.Findings))
	}

	policy, ok := installPolicy[result.TrustLevel]
	if !ok {
		policy = installPolicy[TrustCommunity]
	}
	if policy[result.Verdict.Rank()] == decisionAllow {
		return true, fmt.Sprintf("Allowed (%s source, %s verdict)", result.TrustLevel, result.Verdict)
	}

	if force {
		return true, fmt.Sprintf("Force-installed despite %s verdict (%d findings)", result.Verdict, len(result.Findings))
	}
	return false, fmt.Sprintf("Blocked (%s source + %s verdict, %d findings). Use --force to override.",
		result.TrustLevel, result.Verdict, len(result.Findings))
}
