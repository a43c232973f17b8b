package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/SkillFence/skillfence/internal/config"
	"github.com/SkillFence/skillfence/internal/guard"
	"github.com/SkillFence/skillfence/internal/notify"
	"github.com/SkillFence/skillfence/internal/skills"
)

var (
	installJSON     bool
	installForce    bool
	installLLMAudit bool
	installSource   string
	installTrust    string
)

var installCmd = &cobra.Command{
	Use:   "install <path>",
	Short: "Scan a skill directory and install it if the policy allows",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		opts := skills.InstallOptions{Force: installForce}
		if installTrust != "" {
			lvl, err := parseTrustFlag(installTrust)
			if err != nil {
				return err
			}
			opts.TrustLevel = lvl
		}
		if installLLMAudit || cfg.Classifier.Enabled {
			auditor, err := buildAuditor(cfg)
			if err != nil {
				if installLLMAudit {
					return err
				}
			} else {
				opts.Auditor = auditor
			}
		}
		res, err := skills.Install(cmd.Context(), cfg, args[0], installSource, opts)
		if err != nil {
			return err
		}

		if !res.Allowed || res.Scan.Verdict == guard.VerdictDangerous {
			notify.New(cfg.Notify).Publish(cmd.Context(), notify.Event{
				Time:        time.Now().UTC(),
				SkillName:   res.Name,
				Source:      res.Source,
				TrustLevel:  res.Scan.TrustLevel,
				Verdict:     res.Scan.Verdict,
				Findings:    len(res.Scan.Findings),
				Allowed:     res.Allowed,
				Forced:      res.Forced,
				Reason:      res.Reason,
				ContentHash: res.ContentHash,
			})
		}

		if installJSON {
			data, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			if !res.Allowed {
				return fmt.Errorf("install blocked")
			}
			return nil
		}

		fmt.Fprint(cmd.OutOrStdout(), guard.FormatReport(res.Scan))
		if res.Allowed {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s -> %s\n", color.GreenString("Installed"), res.Name, res.InstallPath)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", color.RedString("Blocked:"), res.Reason)
		return fmt.Errorf("install blocked")
	},
}

func init() {
	installCmd.Flags().BoolVar(&installJSON, "json", false, "emit the install result as JSON")
	installCmd.Flags().BoolVar(&installForce, "force", false, "override a policy block for non-dangerous verdicts")
	installCmd.Flags().BoolVar(&installLLMAudit, "llm-audit", false, "run the configured LLM audit pass before deciding")
	installCmd.Flags().StringVar(&installSource, "source", "", "source identifier, e.g. github.com/acme/skills/foo")
	installCmd.Flags().StringVar(&installTrust, "trust", "", "override trust level (builtin|trusted|community|agent-created)")
}
