package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pluqqy/textpad/cmd/commands"
	"github.com/pluqqy/textpad/internal/cli"
	"github.com/pluqqy/textpad/pkg/editor"
	"github.com/pluqqy/textpad/pkg/tui"
)

// Version is set during build with -ldflags
var version = "dev"

var errNotTerminal = errors.New("textpad needs an interactive terminal")

var opts cli.Options

var rootCmd = &cobra.Command{
	Use:   "textpad [file]",
	Short: "Terminal text file viewer and editor",
	Long: `Textpad opens a plain text file, shows it read-only or lets you edit
it, and saves it to the documents directory before handing it to the
configured share method.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cli.SetGlobalFlags(opts.Quiet, opts.NoColor)
		cli.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
	RunE: runTUI,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Textpad",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Textpad version %s\n", version)
	},
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !isTerminal(os.Stdout) || !isTerminal(os.Stdin) {
		return fmt.Errorf("%w; use 'textpad show <file>' to print a file", errNotTerminal)
	}

	cctx, err := cli.NewCommandContext(afero.NewOsFs(), &opts)
	if err != nil {
		return err
	}
	defer cctx.Close()

	sheet, err := cctx.ShareSheet()
	if err != nil {
		return err
	}

	bridge := tui.NewPickerBridge()
	var picker editor.FilePicker = bridge
	openOnStart := false
	if len(args) == 1 {
		path, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path %s: %w", args[0], err)
		}
		if err := cli.ValidateFilePath(cctx.Fs, path); err != nil {
			return err
		}
		picker = tui.NewOncePicker(path, bridge)
		openOnStart = true
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	ctrl := editor.NewController(picker, cctx.Store, sheet, cctx.Logger)
	app := tui.NewApp(tui.Config{
		Controller:  ctrl,
		Bridge:      bridge,
		Fs:          cctx.Fs,
		Settings:    cctx.Settings,
		Logger:      cctx.Logger,
		OpenOnStart: openOnStart,
		WatchDirs:   true,
		Context:     ctx,
	})

	cctx.Logger.Info().Str("docs", cctx.DocsDir).Str("share", cctx.Settings.Share.Method).Msg("starting")

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to start the terminal user interface: %w", err)
	}
	return nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.LogOutputFile, "log-output-file", "l", "", "specify a log output file (otherwise logs dropped)")
	flags.BoolVarP(&opts.LogPretty, "log-pretty", "p", false, "prettify logs to file")
	flags.StringVar(&opts.DocsDir, "docs-dir", "", "directory saved files are written to")
	flags.StringVar(&opts.Share, "share", "", "share method: clipboard, open, or none")
	flags.BoolVarP(&opts.Quiet, "quiet", "q", false, "suppress informational output")
	flags.BoolVar(&opts.NoColor, "no-color", false, "disable symbols in output")

	rootCmd.AddCommand(commands.NewInitCommand(&opts))
	rootCmd.AddCommand(commands.NewShowCommand(&opts))
	rootCmd.AddCommand(commands.NewShareCommand(&opts))
	rootCmd.AddCommand(commands.NewListCommand(&opts))
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		cli.PrintError("%v", err)
		os.Exit(1)
	}
}
