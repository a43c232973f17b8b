package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/SkillFence/skillfence/internal/skills"
)

var (
	historyJSON  bool
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent scan decisions",
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := skills.ResolveStateDirs()
		if err != nil {
			return err
		}
		h, err := skills.OpenHistory(state.HistoryDB)
		if err != nil {
			return err
		}
		defer h.Close()
		entries, err := h.Recent(historyLimit)
		if err != nil {
			return err
		}
		if historyJSON {
			data, err := json.MarshalIndent(entries, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No scan history.")
			return nil
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
		fmt.Fprintln(w, "SCANNED\tSKILL\tVERDICT\tFINDINGS\tDECISION\tREASON")
		for _, e := range entries {
			decision := "blocked"
			if e.Allowed {
				decision = "allowed"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
				e.ScannedAt.Format("2006-01-02 15:04"), e.SkillName, e.Verdict,
				e.FindingCount, decision, e.Reason)
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "emit history as JSON")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum entries to show")
}
