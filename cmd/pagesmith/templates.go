package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/pagesmith/internal/templates"
)

type templatesOptions struct {
	category   string
	search     string
	jsonOutput bool
}

func newTemplatesCmd() *cobra.Command {
	opts := &templatesOptions{}

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List starter page templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			found := templates.Search(opts.category, opts.search)
			if opts.jsonOutput {
				return renderTemplatesJSON(cmd, found)
			}
			if len(found) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No templates match.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tLEVEL\tBLOCKS")
			for _, t := range found {
				types := make([]string, 0, len(t.Blocks))
				for _, typ := range t.Types() {
					types = append(types, string(typ))
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Name, t.Category, t.Difficulty, strings.Join(types, ","))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&opts.category, "category", "", "Filter by category")
	cmd.Flags().StringVarP(&opts.search, "search", "s", "", "Match name, description or tags")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")
	return cmd
}

type templateJSON struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Difficulty  string   `json:"difficulty"`
	Tags        []string `json:"tags"`
	Blocks      []string `json:"blocks"`
}

func renderTemplatesJSON(cmd *cobra.Command, found []templates.Template) error {
	payload := make([]templateJSON, len(found))
	for i, t := range found {
		blocks := make([]string, 0, len(t.Blocks))
		for _, typ := range t.Types() {
			blocks = append(blocks, string(typ))
		}
		payload[i] = templateJSON{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Category:    t.Category,
			Difficulty:  string(t.Difficulty),
			Tags:        t.Tags,
			Blocks:      blocks,
		}
	}
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
