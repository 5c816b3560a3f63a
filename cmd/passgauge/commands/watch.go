package commands

import (
	"fmt"

	"github.com/MEKXH/passgauge/internal/policy"
	"github.com/MEKXH/passgauge/internal/tui"
	"github.com/spf13/cobra"
)

func NewWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Type a password and see feedback on every keystroke",
		Args:  cobra.NoArgs,
		RunE:  runWatch,
	}
	addPolicyFlags(cmd)
	cmd.Flags().Bool("hide-requirements", false, "Start with the requirement checklist hidden")
	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, ev, err := resolvePolicy(cmd)
	if err != nil {
		return err
	}

	show := cfg.UI.ShowRequirements
	if hide, _ := cmd.Flags().GetBool("hide-requirements"); hide {
		show = false
	}

	m, err := tui.Run(ev, tui.Options{
		BarWidth:         cfg.UI.BarWidth,
		ShowRequirements: show,
	})
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	if !m.Submitted() {
		return nil
	}

	res := m.Result()
	verdict := "does not meet"
	if res.Valid {
		verdict = "meets"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Password %s all requirements. Strength: %s (%d/%d)\n",
		verdict, res.Tier.Label(), res.Score, policy.MaxScore)
	if !res.Valid {
		return ErrPolicyNotMet
	}
	return nil
}
