package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pluqqy/textpad/internal/cli"
	"github.com/pluqqy/textpad/pkg/share"
)

// NewShareCommand creates the share command
func NewShareCommand(opts *cli.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share <name>",
		Short: "Share a saved document",
		Long: `Hand a document saved in the documents directory to the
configured share method.

Methods:
  clipboard  - copy the document text to the system clipboard (default)
  open       - open the document with the default application
  none       - sharing disabled

Examples:
  # Share with the configured method
  textpad share notes.txt

  # Open in the default application instead
  textpad share notes.txt --share open`,
		Args:    cobra.ExactArgs(1),
		Aliases: []string{"clip", "copy"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShare(cmd, opts, args[0])
		},
	}

	return cmd
}

func runShare(cmd *cobra.Command, opts *cli.Options, name string) error {
	cctx, err := cli.NewCommandContext(afero.NewOsFs(), opts)
	if err != nil {
		return err
	}
	defer cctx.Close()

	path, err := cctx.ResolveDocument(name)
	if err != nil {
		return err
	}

	sheet, err := cctx.ShareSheet()
	if err != nil {
		return err
	}

	method := cctx.Settings.Share.Method
	if !sheet.IsAvailable(cmd.Context()) {
		return fmt.Errorf("share method '%s' is not available here: %w", method, share.ErrUnavailable)
	}

	if err := sheet.Share(cmd.Context(), path); err != nil {
		if errors.Is(err, share.ErrUnavailable) {
			return fmt.Errorf("share method '%s' is not available here: %w", method, err)
		}
		return fmt.Errorf("failed to share %s: %w", name, err)
	}
	cctx.Logger.Debug().Str("path", path).Str("method", method).Msg("share")

	cli.PrintSuccess("Shared '%s' via %s", name, method)

	content, err := cctx.Store.Read(cmd.Context(), path)
	if err == nil && content != "" {
		cli.PrintInfo("Preview: %s", cli.Preview(content, 80))
	}

	return nil
}
