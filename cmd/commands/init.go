package commands

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pluqqy/textpad/internal/cli"
	"github.com/pluqqy/textpad/pkg/files"
)

// NewInitCommand creates the init command
func NewInitCommand(opts *cli.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the documents directory and default settings",
		Long: `Creates the documents directory saved files go to, and writes a
settings file with the defaults unless one already exists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cctx, err := cli.NewCommandContext(afero.NewOsFs(), opts)
			if err != nil {
				return err
			}
			defer cctx.Close()

			if err := files.InitDocuments(cctx.Fs, cctx.SettingsPath, cctx.DocsDir); err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}

			cli.PrintSuccess("Documents directory: %s", cctx.DocsDir)
			cli.PrintSuccess("Settings: %s", cctx.SettingsPath)
			cli.PrintInfo("Run 'textpad' to start editing.")
			return nil
		},
	}
}
