package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/chris-regnier/ripgrep-mcp/internal/search"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the server can run in this environment",
	RunE:  runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	pass := color.New(color.FgGreen).Sprint("ok")
	fail := color.New(color.FgRed).Sprint("missing")
	out := cmd.OutOrStdout()

	healthy := true

	if rgPath, err := exec.LookPath(search.Executable); err != nil {
		fmt.Fprintf(out, "ripgrep:    %s (install rg and ensure it is in PATH)\n", fail)
		healthy = false
	} else {
		fmt.Fprintf(out, "ripgrep:    %s (%s, %s)\n", pass, rgPath, rgVersion(rgPath))
	}

	if info, err := os.Stat(appConfig.FilesRoot); err != nil || !info.IsDir() {
		fmt.Fprintf(out, "files root: %s (%s is not a directory)\n", fail, appConfig.FilesRoot)
		healthy = false
	} else {
		fmt.Fprintf(out, "files root: %s (%s)\n", pass, appConfig.FilesRoot)
	}

	fmt.Fprintf(out, "log level:  %s\n", appConfig.LogLevel)
	if appConfig.MetricsAddr != "" {
		fmt.Fprintf(out, "metrics:    %s\n", appConfig.MetricsAddr)
	}

	if !healthy {
		return fmt.Errorf("environment is not ready")
	}
	return nil
}

// rgVersion returns the first line of `rg --version`, e.g. "ripgrep 14.1.0".
func rgVersion(rgPath string) string {
	out, err := exec.Command(rgPath, "--version").Output()
	if err != nil {
		return "version unknown"
	}
	if line, _, ok := strings.Cut(string(out), "\n"); ok {
		return line
	}
	return strings.TrimSpace(string(out))
}
