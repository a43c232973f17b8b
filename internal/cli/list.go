package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/SkillFence/skillfence/internal/skills"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed skills",
	RunE: func(cmd *cobra.Command, args []string) error {
		installed, err := skills.ListInstalled()
		if err != nil {
			return err
		}
		if listJSON {
			data, err := json.MarshalIndent(installed, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}
		if len(installed) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No skills installed.")
			return nil
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tSOURCE\tTRUST\tVERDICT\tINSTALLED\tDRIFT")
		for _, s := range installed {
			drift := ""
			if s.Drifted {
				drift = "modified"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				s.Name, s.Source, s.TrustLevel, s.Verdict,
				s.InstalledAt.Format("2006-01-02 15:04"), drift)
		}
		return w.Flush()
	},
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "emit installed skills as JSON")
}
