package commands

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pluqqy/textpad/internal/cli"
	"github.com/pluqqy/textpad/pkg/files"
)

// ListResult represents the output structure for list command
type ListResult struct {
	Dir   string     `json:"dir" yaml:"dir"`
	Items []ListItem `json:"items" yaml:"items"`
	Count int        `json:"count" yaml:"count"`
}

// ListItem represents a single saved document
type ListItem struct {
	Name     string `json:"name" yaml:"name"`
	Path     string `json:"path,omitempty" yaml:"path,omitempty"`
	Size     int64  `json:"size" yaml:"size"`
	Modified string `json:"modified" yaml:"modified"`
}

var (
	listShowPaths bool
	listOutput    string
)

// NewListCommand creates the list command
func NewListCommand(opts *cli.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved documents",
		Long: `List the documents saved in the documents directory.

Examples:
  # List documents
  textpad list

  # Show file paths
  textpad list --paths

  # Output as YAML
  textpad list -o yaml`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.ValidateOutputFormat(listOutput)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&listShowPaths, "paths", false, "Show file paths")
	cmd.Flags().StringVarP(&listOutput, "output", "o", "text", "Output format (text, json, yaml)")

	return cmd
}

func runList(cmd *cobra.Command, opts *cli.Options) error {
	cctx, err := cli.NewCommandContext(afero.NewOsFs(), opts)
	if err != nil {
		return err
	}
	defer cctx.Close()

	result := ListResult{Dir: cctx.DocsDir, Items: []ListItem{}}

	exists, err := afero.DirExists(cctx.Fs, cctx.DocsDir)
	if err != nil {
		return fmt.Errorf("failed to check documents directory: %w", err)
	}
	if exists {
		entries, err := files.LoadDirectory(cctx.Fs, cctx.DocsDir)
		if err != nil {
			return fmt.Errorf("failed to list documents: %w", err)
		}
		for _, entry := range files.FilterEntries(entries, "", false, false) {
			if entry.IsDir {
				continue
			}
			item := ListItem{Name: entry.Name, Size: entry.Size, Modified: entry.ModTime}
			if listShowPaths {
				item.Path = entry.Path
			}
			result.Items = append(result.Items, item)
		}
	}
	result.Count = len(result.Items)

	out := cmd.OutOrStdout()
	if listOutput != "text" {
		return cli.OutputResults(out, listOutput, result)
	}

	if result.Count == 0 {
		fmt.Fprintf(out, "No documents in %s\n", result.Dir)
		return nil
	}

	table := cli.NewTableFormatter(out)
	if listShowPaths {
		table.Header("NAME", "SIZE", "MODIFIED", "PATH")
	} else {
		table.Header("NAME", "SIZE", "MODIFIED")
	}
	for _, item := range result.Items {
		size := files.FormatFileSize(item.Size)
		if listShowPaths {
			table.Row(item.Name, size, item.Modified, item.Path)
		} else {
			table.Row(item.Name, size, item.Modified)
		}
	}
	table.Flush()

	fmt.Fprintf(out, "\n%d document(s) in %s\n", result.Count, result.Dir)
	return nil
}
