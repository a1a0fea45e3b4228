package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/pagesmith/internal/domain/page"
	"github.com/alexisbeaulieu97/pagesmith/internal/registry"
)

type blocksOptions struct {
	category   string
	jsonOutput bool
}

func newBlocksCmd() *cobra.Command {
	opts := &blocksOptions{}

	cmd := &cobra.Command{
		Use:   "blocks",
		Short: "List the component library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBlocks(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.category, "category", "", "Only show one category")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")
	return cmd
}

type blockJSON struct {
	registry.Definition
	Defaults page.Props `json:"defaults"`
}

func runBlocks(cmd *cobra.Command, opts *blocksOptions) error {
	defs := registry.All()
	if opts.category != "" {
		category, ok := registry.ParseCategory(opts.category)
		if !ok {
			names := make([]string, 0, len(registry.Categories()))
			for _, c := range registry.Categories() {
				names = append(names, c.String())
			}
			return newCommandError("list blocks", "filtering by category", fmt.Errorf("unknown category %q", opts.category),
				"Use one of: "+strings.Join(names, ", "))
		}
		defs = registry.ByCategory(category)
	}

	if opts.jsonOutput {
		payload := make([]blockJSON, len(defs))
		for i, d := range defs {
			payload[i] = blockJSON{Definition: d, Defaults: d.Defaults()}
		}
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tNAME\tCATEGORY\tDESCRIPTION")
	for _, d := range defs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Type, d.Name, d.Category, d.Description)
	}
	return w.Flush()
}
