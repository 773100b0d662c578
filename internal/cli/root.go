// Package cli provides the command-line interface for streamplay.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"streamplay/internal/player"
)

// Exit codes.
const (
	exitOK       = 0
	exitUsage    = 1
	exitPipeline = 2
)

// BuildInfo carries version metadata set via ldflags.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildDate string
}

var buildInfo = BuildInfo{Version: "dev", Commit: "unknown", BuildDate: "unknown"}

// SetBuildInfo stores build metadata for the version command.
func SetBuildInfo(info BuildInfo) {
	buildInfo = info
}

// NewRootCmd creates the root command for streamplay.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "streamplay [url]",
		Short: "Play an HLS/DASH stream from the terminal",
		Long: `streamplay plays an adaptive-bitrate stream URL through a GStreamer
playbin pipeline and reports the discovered audio and subtitle tracks.

While playing, type commands followed by Enter:
  a0, a1, ...  switch audio track
  s0, s1, ...  switch subtitle track
  q            quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("missing stream URL")
			}
			return play(args[0], playFlags{})
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("streamplay %s\n", buildInfo.Version)
			fmt.Printf("commit: %s\n", buildInfo.Commit)
			fmt.Printf("built: %s\n", buildInfo.BuildDate)
		},
	}

	rootCmd.AddCommand(NewPlayCmd())
	rootCmd.AddCommand(NewHistoryCmd())
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

// Execute runs the CLI and returns the process exit code: 1 for usage
// errors, 2 for pipeline construction failures, 0 otherwise.
func Execute() int {
	return execute(os.Args[1:])
}

func execute(args []string) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, player.ErrPipelineCreate) {
			return exitPipeline
		}
		return exitUsage
	}
	return exitOK
}
