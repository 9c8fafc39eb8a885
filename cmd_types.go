package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ai_content_studio/generator"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List content types and tones",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		fmt.Fprintln(w, titleStyle.Render("Content types"))
		for _, ct := range generator.AllContentTypes() {
			fmt.Fprintf(w, "  %s\n", ct)
		}
		fmt.Fprintln(w, titleStyle.Render("Tones"))
		for _, t := range generator.AllTones() {
			fmt.Fprintf(w, "  %s\n", t)
		}
		return nil
	},
}
