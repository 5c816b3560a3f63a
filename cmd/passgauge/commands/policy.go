package commands

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/MEKXH/passgauge/internal/audit"
	"github.com/MEKXH/passgauge/internal/config"
	"github.com/MEKXH/passgauge/internal/policy"
	"github.com/MEKXH/passgauge/internal/render"
	"github.com/spf13/cobra"
)

func NewPolicyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Show or change the password policy",
		Args:  cobra.NoArgs,
		RunE:  runPolicyShow,
	}
	cmd.Flags().Bool("raw", false, "Print markdown without terminal styling")

	cmd.AddCommand(
		newPolicySetCmd(),
		newPolicyResetCmd(),
		newPolicyHistoryCmd(),
	)

	return cmd
}

func newPolicySetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Persist policy changes to the config file",
		Args:  cobra.NoArgs,
		RunE:  runPolicySet,
	}
	addPolicyFlags(cmd)
	return cmd
}

func newPolicyResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default policy",
		Args:  cobra.NoArgs,
		RunE:  runPolicyReset,
	}
}

func newPolicyHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded policy changes",
		Args:  cobra.NoArgs,
		RunE:  runPolicyHistory,
	}
	cmd.Flags().Int("limit", 20, "Show at most this many recent changes (0 for all)")
	return cmd
}

func runPolicyShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	md := render.RequirementsMarkdown(cfg.PolicyConfig())
	if raw, _ := cmd.Flags().GetBool("raw"); raw {
		fmt.Fprint(cmd.OutOrStdout(), md)
		return nil
	}

	r, err := render.NewMarkdownRenderer(80)
	if err != nil {
		fmt.Fprint(cmd.OutOrStdout(), md)
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), render.Markdown(md, r))
	return nil
}

func runPolicySet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := applyPolicyFlags(cmd, cfg.PolicyConfig())
	if err != nil {
		return err
	}
	return savePolicy(cmd, cfg, p, "policy_set", "Policy updated.")
}

func runPolicyReset(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return savePolicy(cmd, cfg, policy.DefaultConfig(), "policy_reset", "Policy reset to defaults.")
}

func savePolicy(cmd *cobra.Command, cfg *config.Config, p policy.Config, event, msg string) error {
	cfg.SetPolicy(p)
	if err := config.SaveTo(configPath(), cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	if err := auditWriter().Append(audit.NewPolicyEvent(event, p, time.Now())); err != nil {
		slog.Warn("failed to record policy change", "error", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, msg)
	for _, req := range policy.Requirements(p) {
		fmt.Fprintf(out, "  - %s\n", req.Description)
	}
	return nil
}

func runPolicyHistory(cmd *cobra.Command, args []string) error {
	events, err := auditWriter().Read()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(events) == 0 {
		fmt.Fprintln(out, "No policy changes recorded.")
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	if limit > 0 && len(events) > limit {
		events = events[len(events)-limit:]
	}
	for _, evt := range events {
		fmt.Fprintf(out, "%s  %-12s  %s\n", evt.Time.Local().Format(time.DateTime), evt.Type, summarizePolicy(evt.Policy))
	}
	return nil
}

// auditWriter keeps the audit log beside whichever config file is in use.
func auditWriter() *audit.Writer {
	return audit.NewWriter(filepath.Dir(configPath()))
}

func summarizePolicy(p audit.PolicyRecord) string {
	s := fmt.Sprintf("min=%d upper=%t lower=%t numbers=%t special=%t",
		p.MinLength, p.RequireUppercase, p.RequireLowercase, p.RequireNumbers, p.RequireSpecialChars)
	if p.SpecialChars != "" {
		s += fmt.Sprintf(" set=%q", p.SpecialChars)
	}
	return s
}
