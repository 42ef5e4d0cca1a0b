// Package cmd: generate command.
// Runs one briefing request: validate → prompt → generate → normalize →
// render → synthesize → write.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/gaurav-prasanna/newscast/core"
	"github.com/gaurav-prasanna/newscast/core/prompt"
	"github.com/gaurav-prasanna/newscast/core/render"
	"github.com/spf13/cobra"
)

// Flag variables.
var (
	flagTopics   []string
	flagRegions  []string
	flagMarkdown bool
	flagJSON     bool
	flagHTML     bool
	flagPrint    bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate today's briefing as PDF and MP3",
	Long: `Generate asks the configured model for the last 24 hours of news on the
selected topics and regions, then writes news_<YYYY-MM-DD>.pdf and
news_<YYYY-MM-DD>.mp3 (plus optional Markdown, JSON and HTML exports).

Examples:
  newscast generate
  newscast generate --topic India --topic Sports --region Kerala --region Goa
  newscast generate --provider openai --speech openai --output_dir ./out
  newscast generate --provider mock --markdown --json --html`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	defaults := prompt.Defaults()
	defaultTopics := make([]string, 0, len(defaults.Topics))
	for _, t := range defaults.Topics {
		defaultTopics = append(defaultTopics, string(t))
	}

	// Filters.
	generateCmd.Flags().StringSliceVar(&flagTopics, "topic", defaultTopics, "Topic to include (repeatable; see `newscast topics`)")
	generateCmd.Flags().StringSliceVar(&flagRegions, "region", defaults.Regions, "Region to focus on (repeatable)")

	// Pipeline overrides.
	generateCmd.Flags().String("provider", "", "Generation provider: gemini, openai or mock (overrides NEWSCAST_PROVIDER)")
	generateCmd.Flags().String("model", "", "Model id (overrides NEWSCAST_MODEL)")
	generateCmd.Flags().String("speech", "", "Speech engine: gtts or openai (overrides NEWSCAST_SPEECH)")
	generateCmd.Flags().String("language", "", "Narration language (overrides NEWSCAST_LANGUAGE)")
	generateCmd.Flags().Bool("slow", false, "Slow narration")
	generateCmd.Flags().String("output_dir", "", "Output directory (default: system temp dir)")

	// Extra exports.
	generateCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Also write a Markdown export")
	generateCmd.Flags().BoolVar(&flagJSON, "json", false, "Also write a structured JSON export")
	generateCmd.Flags().BoolVar(&flagHTML, "html", false, "Also write a standalone HTML page")
	generateCmd.Flags().BoolVar(&flagPrint, "print", false, "Print the cleaned briefing to stdout")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var exports []core.Renderer
	if flagMarkdown {
		exports = append(exports, render.NewMarkdownRenderer())
	}
	if flagJSON {
		exports = append(exports, render.NewJSONRenderer())
	}
	if flagHTML {
		exports = append(exports, render.NewHTMLRenderer())
	}

	ctx := cmd.Context()
	svc, err := newService(ctx, cfg, logger, exports...)
	if err != nil {
		return err
	}

	res, err := svc.Run(ctx, selection(flagTopics, flagRegions))
	if err != nil {
		return err
	}

	if flagPrint {
		fmt.Fprintln(os.Stdout, res.Summary.Clean)
		fmt.Fprintln(os.Stdout)
	}
	check := color.New(color.FgGreen).SprintFunc()
	for _, a := range res.Artifacts {
		fmt.Fprintf(os.Stdout, "%s Written: %s\n", check("✓"), a.Path)
	}
	return nil
}

// selection builds a FilterSelection from flag values, dropping blanks so
// that `--topic ""` reaches validation as an empty selection.
func selection(topics, regions []string) core.FilterSelection {
	var sel core.FilterSelection
	for _, t := range topics {
		if t = strings.TrimSpace(t); t != "" {
			sel.Topics = append(sel.Topics, core.Topic(t))
		}
	}
	for _, r := range regions {
		if r = strings.TrimSpace(r); r != "" {
			sel.Regions = append(sel.Regions, r)
		}
	}
	return sel
}
