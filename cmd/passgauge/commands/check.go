package commands

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MEKXH/passgauge/internal/policy"
	"github.com/MEKXH/passgauge/internal/render"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// ErrPolicyNotMet is returned by check when the password fails the policy.
var ErrPolicyNotMet = errors.New("password does not meet policy")

func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [password]",
		Short: "Evaluate a single password",
		Long: `Evaluate a single password and exit non-zero when it does not meet the policy.

Without an argument the password is read from a hidden prompt, or from stdin
when input is piped. Passing it as an argument leaves it in shell history.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCheck,
	}
	addPolicyFlags(cmd)
	cmd.Flags().Bool("json", false, "Print the evaluation as JSON")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, ev, err := resolvePolicy(cmd)
	if err != nil {
		return err
	}

	password, err := readPassword(cmd, args)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	res := ev.Evaluate(password)
	out := cmd.OutOrStdout()

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else {
		r := render.New(cfg.UI.BarWidth)
		fmt.Fprintln(out, r.Checklist(ev.Requirements(), res))
		if fb := r.Feedback(res); fb != "" {
			fmt.Fprintf(out, "\n%s\n", fb)
		}
		if bar := r.StrengthBar(res); bar != "" {
			fmt.Fprintf(out, "\n%s\n", bar)
		}
		fmt.Fprintf(out, "\nScore: %d/%d (%.1f%%)\n", res.Score, policy.MaxScore, res.Percentage())
	}

	if !res.Valid {
		return ErrPolicyNotMet
	}
	return nil
}

func readPassword(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
