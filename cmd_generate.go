package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ai_content_studio/exporter"
	"ai_content_studio/generator"
)

var (
	genNiche       string
	genType        string
	genTopic       string
	genDescription string
	genTone        string
	genOut         string
	genRaw         bool
	genShowPrompt  bool
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate content for a niche",
	Example: `  content-studio generate --niche Fitness --type "Instagram Caption" --tone casual
  content-studio generate --niche Travel --type "30-Day Content Calendar" --out plan.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := requestFromFlags()
		if err != nil {
			return err
		}
		// Checked before loading config so a blank niche never needs credentials.
		if err := req.Validate(); err != nil {
			return err
		}
		if genShowPrompt {
			fmt.Fprintln(cmd.OutOrStdout(), generator.BuildPrompt(req))
			return nil
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		ctx := cmd.Context()
		if cfg.Server.RequestTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.Server.RequestTimeout)
			defer cancel()
		}

		agent, err := buildAgent(ctx, cfg)
		if err != nil {
			return err
		}
		res, err := agent.Generate(ctx, req)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if err := printResult(out, res); err != nil {
			return err
		}
		if genOut != "" {
			if err := writeExport(genOut, res); err != nil {
				return err
			}
			logger.Info("wrote download", zap.String("path", genOut))
			fmt.Fprintln(out, mutedStyle.Render("saved "+genOut))
		}
		return nil
	},
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&genNiche, "niche", "", "subject domain, e.g. Fitness, Finance, Travel (required)")
	f.StringVarP(&genType, "type", "t", generator.InstagramCaption.String(), "content type")
	f.StringVar(&genTopic, "topic", "", "optional topic to focus on")
	f.StringVar(&genDescription, "description", "", "optional extra details")
	f.StringVar(&genTone, "tone", "", "optional tone")
	f.StringVarP(&genOut, "out", "o", "", "also write a download; format from extension (.txt, .md, .html, .csv)")
	f.BoolVar(&genRaw, "raw", false, "print the reply without Markdown rendering")
	f.BoolVar(&genShowPrompt, "show-prompt", false, "print the prompt and exit without calling the model")
}

func requestFromFlags() (generator.Request, error) {
	ct, err := generator.ParseContentType(genType)
	if err != nil {
		return generator.Request{}, err
	}
	tone, err := generator.ParseTone(genTone)
	if err != nil {
		return generator.Request{}, err
	}
	return generator.Request{
		Niche:       genNiche,
		ContentType: ct,
		Topic:       genTopic,
		Description: genDescription,
		Tone:        tone,
	}.Normalized(), nil
}

func printResult(w io.Writer, res generator.Result) error {
	fmt.Fprintln(w, titleStyle.Render(res.ContentType.String()))

	body := res.Content
	if len(res.Calendar) > 0 {
		body = exporter.CalendarMarkdown(res.Calendar)
	}
	if genRaw || !isTerminal(w) {
		_, err := fmt.Fprintln(w, body)
		return err
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return err
	}
	rendered, err := r.Render(body)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, rendered)
	return err
}

func writeExport(path string, res generator.Result) error {
	format, err := exporter.ParseFormat(filepath.Ext(path))
	if err != nil {
		return err
	}
	file, err := exporter.Export(format, exporter.Document{
		Title:    res.Title,
		Content:  res.Content,
		Calendar: res.Calendar,
	})
	if err != nil {
		return err
	}
	return os.WriteFile(path, file.Body, 0o644)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0 && !strings.EqualFold(os.Getenv("TERM"), "dumb")
}
