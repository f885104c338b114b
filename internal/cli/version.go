package cli

import (
	"fmt"
	"runtime"

	"github.com/ariel-frischer/chlog/internal/build"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		name := "chlog"
		if !plainFlag {
			name = color.New(color.Bold).Sprint(name)
		}
		if build.IsDevBuild() {
			fmt.Fprintf(w, "%s %s (development build)\n", name, build.Version)
		} else {
			fmt.Fprintf(w, "%s %s\n", name, build.Version)
		}
		fmt.Fprintf(w, "commit: %s\n", build.Commit)
		fmt.Fprintf(w, "built: %s\n", build.BuildDate)
		fmt.Fprintf(w, "go: %s\n", runtime.Version())
		fmt.Fprintf(w, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	versionCmd.GroupID = GroupSetup
	rootCmd.AddCommand(versionCmd)
}
