package cmd

import (
	"io"
	"strconv"

	"github.com/gaurav-prasanna/newscast/core/prompt"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the selectable topics and regions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return printCatalog(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(topicsCmd)
}

// printCatalog writes the topic and region catalogs as one borderless table.
func printCatalog(w io.Writer) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)
	table.Header([]string{"Kind", "#", "Name"})

	var rows [][]string
	for i, t := range prompt.Topics() {
		rows = append(rows, []string{"topic", strconv.Itoa(i + 1), string(t)})
	}
	for i, r := range prompt.Regions() {
		rows = append(rows, []string{"region", strconv.Itoa(i + 1), r})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
