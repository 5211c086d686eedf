package cmd

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
)

// Overridden at release time via -ldflags "-X ...".
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
	OS        = runtime.GOOS
	Arch      = runtime.GOARCH
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Display detailed version information about the Scribe API.

This includes the version number, git commit hash, build time,
and runtime information.`,
	Run: runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolP("short", "s", false, "print just the version number")
}

func runVersion(cmd *cobra.Command, args []string) {
	if short, _ := cmd.Flags().GetBool("short"); short {
		fmt.Fprintf(cmd.OutOrStdout(), "v%s\n", Version)
		return
	}

	out := cmd.OutOrStdout()
	rule := strings.Repeat("-", 40)

	fmt.Fprintln(out, "Scribe API")
	fmt.Fprintln(out, rule)
	for _, row := range [][2]string{
		{"Version", "v" + Version},
		{"Git Commit", GitCommit},
		{"Build Time", BuildTime},
		{"Go Version", GoVersion},
		{"OS/Arch", OS + "/" + Arch},
	} {
		fmt.Fprintf(out, "%-13s %s\n", row[0]+":", row[1])
	}
	fmt.Fprintln(out, rule)
}
