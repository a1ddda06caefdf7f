package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	m "rustmut.dev/pkg/rustmut/internal/model"
)

const (
	listFormatTable = "table"
	listFormatYAML  = "yaml"
)

var listFormatFlag string

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [dir]",
		Short: "List mutation-eligible source files",
		Long:  listLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			root, files, err := workflow.Discover(ctx, dirFromArgs(args))
			if err != nil {
				return err
			}

			if listFormatFlag == listFormatYAML {
				return printSourcesYAML(cmd, root, files)
			}

			return ui.DisplaySources(ctx, root, files)
		},
	}

	cmd.Flags().StringVarP(&listFormatFlag, "format", "f", listFormatTable, "output format: table or yaml")

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}

type sourceListDoc struct {
	Root  string            `yaml:"root"`
	Files []sourceListEntry `yaml:"files"`
}

type sourceListEntry struct {
	Path    string `yaml:"path"`
	Package string `yaml:"package"`
}

func printSourcesYAML(cmd *cobra.Command, root m.Path, files []m.SourceFile) error {
	doc := sourceListDoc{Root: string(root), Files: make([]sourceListEntry, 0, len(files))}

	for _, file := range files {
		doc.Files = append(doc.Files, sourceListEntry{Path: string(file.Rel), Package: file.Package})
	}

	encoded, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode source list: %w", err)
	}

	cmd.Print(string(encoded))

	return nil
}
