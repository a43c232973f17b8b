package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SkillFence/skillfence/internal/config"
	"github.com/SkillFence/skillfence/internal/guard"
	"github.com/SkillFence/skillfence/internal/provider"
)

var (
	scanJSON     bool
	scanLLMAudit bool
	scanForce    bool
	scanSource   string
	scanTrust    string
)

var scanCmd = &cobra.Command{
	Use:   "scan <path>",
	Short: "Scan a skill directory or file without installing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		opts := guard.ScanOptions{
			ExtraTrustedPrefixes: cfg.Trust.ExtraTrustedPrefixes,
		}
		if scanTrust != "" {
			lvl, err := parseTrustFlag(scanTrust)
			if err != nil {
				return err
			}
			opts.TrustLevel = lvl
		}
		result := guard.ScanSkill(args[0], scanSource, opts)
		if scanLLMAudit {
			auditor, err := buildAuditor(cfg)
			if err != nil {
				return err
			}
			result = guard.MergeAudit(cmd.Context(), result, args[0], auditor)
		}
		if scanJSON {
			allowed, reason := guard.ShouldAllowInstall(result, scanForce)
			payload := struct {
				*guard.ScanResult
				ContentHash string `json:"contentHash"`
				Allowed     bool   `json:"allowed"`
				Reason      string `json:"reason"`
			}{result, guard.ContentHash(args[0]), allowed, reason}
			data, err := json.MarshalIndent(payload, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), guard.FormatReport(result))
		return nil
	},
}

func parseTrustFlag(v string) (guard.TrustLevel, error) {
	switch guard.TrustLevel(v) {
	case guard.TrustBuiltin, guard.TrustTrusted, guard.TrustCommunity, guard.TrustAgentCreated:
		return guard.TrustLevel(v), nil
	}
	return "", fmt.Errorf("unknown trust level %q (builtin|trusted|community|agent-created)", v)
}

// buildAuditor wires the configured LLM provider into the guard's audit
// pass. An explicit request with no usable classifier config is an error
// rather than a silent static-only scan.
func buildAuditor(cfg *config.Config) (guard.Auditor, error) {
	if cfg.Classifier.APIKey == "" {
		return nil, fmt.Errorf("llm audit requested but no classifier API key configured (set SKILLFENCE_CLASSIFIER_API_KEY or classifier.apiKey)")
	}
	p := provider.NewOpenAIProvider(cfg.Classifier.APIKey, cfg.Classifier.APIBase, cfg.Classifier.Model)
	return &guard.ProviderAuditor{
		Provider: p,
		Model:    cfg.Classifier.Model,
		Timeout:  time.Duration(cfg.Classifier.TimeoutSeconds) * time.Second,
	}, nil
}

func init() {
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "emit the scan result as JSON")
	scanCmd.Flags().BoolVar(&scanLLMAudit, "llm-audit", false, "run the configured LLM audit pass after the static scan")
	scanCmd.Flags().BoolVar(&scanForce, "force", false, "compute the install decision as if --force were given")
	scanCmd.Flags().StringVar(&scanSource, "source", "", "source identifier, e.g. github.com/acme/skills/foo")
	scanCmd.Flags().StringVar(&scanTrust, "trust", "", "override trust level (builtin|trusted|community|agent-created)")
}
