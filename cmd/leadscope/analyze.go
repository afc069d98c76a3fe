package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/leadscope/internal/config"
	"github.com/kailas-cloud/leadscope/internal/domain/search/analysis"
	logpkg "github.com/kailas-cloud/leadscope/internal/logger"
	openaiTransport "github.com/kailas-cloud/leadscope/internal/transport/openai"
	analyzeuc "github.com/kailas-cloud/leadscope/internal/usecase/analyze"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		useAssistant bool
		asJSON       bool
		env          string
	)
	cmd := &cobra.Command{
		Use:   "analyze <query>",
		Short: "Show how a free-text query is read into filters",
		Long: `analyze runs the query analyzer without touching the contact store and
prints the detected intent, filters and confidence. With --assistant the
configured language model refines general searches.`,
		Example: `  leadscope analyze "CEOs at Acme in Texas"
  leadscope analyze --json "engineers with over 500 employees"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var assistant analyzeuc.Assistant
			if useAssistant {
				if env == "" {
					env = config.GetEnv()
				}
				a, err := loadAssistant(env)
				if err != nil {
					return err
				}
				assistant = a
			}

			a := analyzeuc.New(assistant).Analyze(analysisContext(cmd.Context()), strings.Join(args, " "))
			if asJSON {
				return writeAnalysisJSON(cmd.OutOrStdout(), a)
			}
			return printAnalysis(cmd.OutOrStdout(), a)
		},
	}
	cmd.Flags().BoolVar(&useAssistant, "assistant", false, "refine general searches with the configured assistant")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the analysis as JSON")
	cmd.Flags().StringVar(&env, "env", "", "config environment used with --assistant; defaults to $ENV")
	return cmd
}

func loadAssistant(env string) (analyzeuc.Assistant, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if !cfg.Assistant.Enabled {
		return nil, fmt.Errorf("assistant is disabled in %s config", env)
	}
	return openaiTransport.NewAssistant(&openaiTransport.Config{
		APIKey:  cfg.Assistant.APIKey,
		BaseURL: cfg.Assistant.BaseURL,
		Model:   cfg.Assistant.Model,
	}), nil
}

// analysisContext attaches a quiet logger so assistant warnings reach stderr.
func analysisContext(ctx context.Context) context.Context {
	l, err := logpkg.NewLogger("test")
	if err != nil {
		return ctx
	}
	return logpkg.ContextWithLogger(ctx, l.With(zap.String("cmd", "analyze")))
}

func writeAnalysisJSON(w io.Writer, a analysis.Analysis) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(a)
}

func printAnalysis(w io.Writer, a analysis.Analysis) error {
	label := color.New(color.FgCyan, color.Bold)
	value := color.New(color.FgGreen)
	dim := color.New(color.Faint)

	label.Fprint(w, "intent:     ")
	value.Fprintln(w, a.Intent)
	label.Fprint(w, "confidence: ")
	value.Fprintf(w, "%d\n", a.Confidence)
	if len(a.SearchTerms) > 0 {
		label.Fprint(w, "terms:      ")
		value.Fprintln(w, strings.Join(a.SearchTerms, ", "))
	}

	label.Fprintln(w, "filters:")
	if a.Filters.IsEmpty() {
		dim.Fprintln(w, "  (none)")
		return nil
	}
	raw, err := json.MarshalIndent(a.Filters, "  ", "  ")
	if err != nil {
		return fmt.Errorf("encode filters: %w", err)
	}
	_, err = fmt.Fprintf(w, "  %s\n", raw)
	return err
}
