package commands

import (
	"fmt"
	"os"

	"github.com/MEKXH/passgauge/internal/config"
	"github.com/spf13/cobra"
)

func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize passgauge configuration",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	path := configPath()
	out := cmd.OutOrStdout()

	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(out, "Config already exists: %s\n", path)
		return nil
	}

	if err := config.SaveTo(path, config.DefaultConfig()); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(out, "passgauge initialized!\n")
	fmt.Fprintf(out, "Config: %s\n", path)
	fmt.Fprintf(out, "\nNext steps:\n")
	fmt.Fprintf(out, "1. Edit %s or run 'passgauge policy set' to adjust the policy\n", path)
	fmt.Fprintf(out, "2. Run 'passgauge watch' to try it out\n")

	return nil
}
