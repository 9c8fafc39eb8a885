package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"ai_content_studio/exporter"
	"ai_content_studio/generator"
)

var calendarOut string

var calendarCmd = &cobra.Command{
	Use:   "calendar [file]",
	Short: "Split a calendar reply into rows (reads stdin without a file)",
	Long: `calendar runs the best-effort line splitter over a saved model reply.
Lines are split on their first two colons; lines without a colon and lines
starting with "Day" are dropped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var in io.Reader = cmd.InOrStdin()
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return err
		}

		rows := generator.ExtractCalendar(string(data))
		if calendarOut != "" {
			file, err := exporter.Export(exporter.FormatCSV, exporter.Document{Calendar: rows})
			if err != nil {
				return err
			}
			return os.WriteFile(calendarOut, file.Body, 0o644)
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), exporter.CalendarMarkdown(rows))
		return err
	},
}

func init() {
	calendarCmd.Flags().StringVarP(&calendarOut, "out", "o", "", "write rows as CSV to this path")
}
