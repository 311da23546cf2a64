package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conneroisu/branddna/internal/version"
)

var (
	versionFormat   outputFormat
	versionShort    bool
	versionDetailed bool
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Display version information for branddna including the release version,
git commit, build time, Go version, platform and the Brand DNA schema
version written by this build.

Examples:
  branddna version               # Show version
  branddna version --detailed    # Show detailed version info
  branddna version --format json # Output as JSON`,
	Args: cobra.NoArgs,
	RunE: runVersionCommand,
}

func init() {
	rootCmd.AddCommand(versionCmd)

	addFormatFlag(versionCmd.Flags(), &versionFormat)
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Show short version only")
	versionCmd.Flags().BoolVar(&versionDetailed, "detailed", false, "Show detailed version information")
}

func runVersionCommand(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	if versionFormat != outputText {
		return writeStructured(out, versionFormat, struct {
			version.BuildInfo `yaml:",inline"`
			IsRelease         bool `json:"is_release" yaml:"is_release"`
		}{*version.GetBuildInfo(), version.IsRelease()})
	}

	switch {
	case versionShort:
		fmt.Fprintln(out, version.GetShortVersion())
	case versionDetailed:
		fmt.Fprintln(out, version.GetDetailedVersion())
		if version.IsRelease() {
			fmt.Fprintln(out, "Build type: release")
		} else {
			fmt.Fprintln(out, "Build type: development")
		}
	default:
		info := version.GetBuildInfo()
		fmt.Fprintf(out, "branddna %s", info.Version)
		if info.GitCommit != "unknown" && len(info.GitCommit) >= 7 {
			fmt.Fprintf(out, " (%s)", info.GitCommit[:7])
		}
		if info.Dirty {
			fmt.Fprint(out, " (dirty)")
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Schema: %s\n", info.SchemaVersion)
		fmt.Fprintf(out, "Go: %s\n", info.GoVersion)
		fmt.Fprintf(out, "Platform: %s\n", info.Platform)
	}

	return nil
}
