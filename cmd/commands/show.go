package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pluqqy/textpad/internal/cli"
)

// ShowResult is the structured output of the show command
type ShowResult struct {
	Name    string `json:"name" yaml:"name"`
	Path    string `json:"path" yaml:"path"`
	Size    int    `json:"size" yaml:"size"`
	Lines   int    `json:"lines" yaml:"lines"`
	Content string `json:"content" yaml:"content"`
}

var (
	showMetadata bool
	showOutput   string
)

// NewShowCommand creates the show command
func NewShowCommand(opts *cli.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Print a text file",
		Long: `Print the content of a text file exactly as stored.

The file can be a path or the name of a document saved in the
documents directory.

Examples:
  # Show a file by path
  textpad show ~/notes/todo.txt

  # Show a saved document
  textpad show new_file.txt

  # Show with metadata
  textpad show todo.txt --metadata

  # Output as JSON
  textpad show todo.txt -o json`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.ValidateOutputFormat(showOutput)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, opts, args[0])
		},
	}

	cmd.Flags().BoolVarP(&showMetadata, "metadata", "m", false, "Show file metadata")
	cmd.Flags().StringVarP(&showOutput, "output", "o", "text", "Output format (text, json, yaml)")

	return cmd
}

func runShow(cmd *cobra.Command, opts *cli.Options, ref string) error {
	cctx, err := cli.NewCommandContext(afero.NewOsFs(), opts)
	if err != nil {
		return err
	}
	defer cctx.Close()

	path, err := cctx.ResolveFile(ref)
	if err != nil {
		return fmt.Errorf("file '%s' not found", ref)
	}

	content, err := cctx.Store.Read(cmd.Context(), path)
	if err != nil {
		return err
	}
	cctx.Logger.Debug().Str("path", path).Msg("show")

	result := ShowResult{
		Name:    filepath.Base(path),
		Path:    path,
		Size:    len(content),
		Lines:   countLines(content),
		Content: content,
	}

	out := cmd.OutOrStdout()
	switch showOutput {
	case "json", "yaml":
		return cli.OutputResults(out, showOutput, result)

	default:
		if showMetadata {
			fmt.Fprintf(out, "Name: %s\n", result.Name)
			fmt.Fprintf(out, "Path: %s\n", result.Path)
			fmt.Fprintf(out, "Size: %d bytes\n", result.Size)
			fmt.Fprintf(out, "Lines: %d\n", result.Lines)
			fmt.Fprintln(out, strings.Repeat("-", 80))
		}

		// Content is printed verbatim, without an added newline
		fmt.Fprint(out, content)
	}

	return nil
}

func countLines(content string) int {
	if content == "" {
		return 0
	}
	lines := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		lines++
	}
	return lines
}
