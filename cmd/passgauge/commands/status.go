package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show passgauge configuration status",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var (
		headerStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color("#8E4EC6")).
				Padding(0, 1)
		sectionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#8E4EC6")).
				Bold(true)
		onColor  = lipgloss.Color("#2E8B57")
		offColor = lipgloss.Color("241")
	)
	flag := func(v bool) string {
		if v {
			return lipgloss.NewStyle().Foreground(onColor).Render("required")
		}
		return lipgloss.NewStyle().Foreground(offColor).Render("off")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, headerStyle.Render("passgauge status"))
	fmt.Fprintln(out)

	path := configPath()
	fmt.Fprintln(out, sectionStyle.Render("Config"))
	fmt.Fprintf(out, "  Path: %s\n", path)
	if configCreated {
		fmt.Fprintln(out, "  Status: Created with defaults")
	} else {
		fmt.Fprintln(out, "  Status: OK")
	}

	p := cfg.PolicyConfig()
	fmt.Fprintln(out)
	fmt.Fprintln(out, sectionStyle.Render("Policy"))
	fmt.Fprintf(out, "  min_length: %d\n", p.MinLength)
	fmt.Fprintf(out, "  uppercase: %s\n", flag(p.RequireUppercase))
	fmt.Fprintf(out, "  lowercase: %s\n", flag(p.RequireLowercase))
	fmt.Fprintf(out, "  numbers: %s\n", flag(p.RequireNumbers))
	fmt.Fprintf(out, "  special: %s\n", flag(p.RequireSpecialChars))
	if p.RequireSpecialChars {
		fmt.Fprintf(out, "  special_chars: %s\n", p.SpecialChars)
	}
	if events, err := auditWriter().Read(); err == nil {
		fmt.Fprintf(out, "  changes recorded: %d\n", len(events))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, sectionStyle.Render("Gateway"))
	fmt.Fprintf(out, "  Address: http://%s:%d\n", cfg.Gateway.Host, cfg.Gateway.Port)
	auth := "disabled"
	if strings.TrimSpace(cfg.Gateway.Token) != "" {
		auth = "bearer token"
	}
	fmt.Fprintf(out, "  Auth: %s\n", auth)
	fmt.Fprintf(out, "  Rate limit: %.2f req/s (burst %d)\n", cfg.Gateway.RateLimit, cfg.Gateway.Burst)

	fmt.Fprintln(out)
	fmt.Fprintln(out, sectionStyle.Render("Log"))
	logFile := cfg.Log.File
	if logFile == "" {
		logFile = "stderr"
	}
	fmt.Fprintf(out, "  Level: %s\n", cfg.Log.Level)
	fmt.Fprintf(out, "  Output: %s\n", logFile)

	return nil
}
