package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nglebm19/debias-llm/internal/cases"
	"github.com/nglebm19/debias-llm/internal/generate"
	"github.com/nglebm19/debias-llm/internal/overlap"
	"github.com/nglebm19/debias-llm/internal/pipeline"
	"github.com/nglebm19/debias-llm/internal/secrets"
	"github.com/nglebm19/debias-llm/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the three-stage debiasing pipeline on a case",
	Long: `Analyze runs a case through all three stages: diagnostician (full record),
devil's advocate (past history withheld), and synthesizer. The advocate's
independent diagnosis is scored for lexical overlap against the withheld
history, and the synthesizer weighs both assessments with that score.

The case comes from the built-in library (--case) or a YAML file
(--case-file). Output is a readable report by default, or the full result
structure with --json.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		caseID, _ := cmd.Flags().GetString("case")
		caseFile, _ := cmd.Flags().GetString("case-file")
		asJSON, _ := cmd.Flags().GetBool("json")

		if (caseID == "") == (caseFile == "") {
			return fmt.Errorf("exactly one of --case or --case-file is required")
		}

		var entry cases.Case
		var err error
		if caseID != "" {
			entry, err = cases.Get(caseID)
		} else {
			entry, err = cases.LoadFile(caseFile)
		}
		if err != nil {
			return err
		}

		cfg := generationConfig(cmd)

		backend := &generate.ClaudeBackend{
			APIKey: cfg.APIKey,
			Model:  cfg.Model,
		}
		runner := pipeline.New(generate.NewAdapter(cfg, backend), overlap.LexicalScorer{}, cfg)

		result, err := runner.Run(cmd.Context(), entry.Case)
		if err != nil {
			return err
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}
		renderReport(os.Stdout, entry, result)
		return nil
	},
}

// generationConfig assembles the adapter configuration from flags, config
// file, and secrets, in that precedence order. Flags left at their zero
// value defer to viper; viper zeros defer to the package defaults.
func generationConfig(cmd *cobra.Command) types.GenerationConfig {
	cfg := types.GenerationConfig{
		Model:           viper.GetString("model"),
		APIKey:          secretDefault(secrets.AnthropicAPIKey, viper.GetString("api_key")),
		MaxTokens:       viper.GetInt("max_tokens"),
		MaxTokenCeiling: viper.GetInt("max_token_ceiling"),
		Temperature:     viper.GetFloat64("temperature"),
		Timeout:         viper.GetDuration("timeout"),
		MaxConcurrent:   viper.GetInt("max_concurrent"),
	}

	if v, _ := cmd.Flags().GetString("model"); v != "" {
		cfg.Model = v
	}
	if v, _ := cmd.Flags().GetInt("max-tokens"); v > 0 {
		cfg.MaxTokens = v
	}
	if cmd.Flags().Changed("temperature") {
		v, _ := cmd.Flags().GetFloat64("temperature")
		cfg.Temperature = v
	}
	if v, _ := cmd.Flags().GetDuration("timeout"); v > 0 {
		cfg.Timeout = v
	}
	if v, _ := cmd.Flags().GetBool("strict"); v {
		cfg.Strict = true
	}
	return cfg.WithDefaults()
}

// renderReport writes the human-readable run report.
func renderReport(w io.Writer, entry cases.Case, result *types.PipelineResult) {
	rule := strings.Repeat("=", 72)

	fmt.Fprintf(w, "%s\nCase: %s", rule, entry.Title)
	if entry.ID != "" {
		fmt.Fprintf(w, " (%s)", entry.ID)
	}
	fmt.Fprintf(w, "\n%s\n", rule)
	if entry.BiasType != "" {
		fmt.Fprintf(w, "Bias under demonstration: %s\n", entry.BiasType)
	}

	renderStage(w, "Stage 1 -- Diagnostician (full record)", result.Diagnostician,
		types.FieldDiagnosis, types.FieldReasoning)
	renderStage(w, "Stage 2 -- Devil's Advocate (history withheld)", result.Advocate,
		types.FieldDiagnosis, types.FieldReasoning)

	fmt.Fprintf(w, "\nOverlap with withheld history: %s\n", result.Overlap.Score)
	fmt.Fprintf(w, "  %s\n", result.Overlap.Rationale)
	if len(result.Overlap.MatchedTerms) > 0 {
		fmt.Fprintf(w, "  Matched terms: %s\n", strings.Join(result.Overlap.MatchedTerms, ", "))
	}

	renderStage(w, "Stage 3 -- Synthesis", result.Synthesis,
		types.FieldFinalDiagnosis, types.FieldDifferential, types.FieldHistoryImpact, types.FieldNextSteps)
}

// renderStage prints one stage's parsed fields with a degraded-output marker.
func renderStage(w io.Writer, heading string, out types.StageOutput, fields ...string) {
	fmt.Fprintf(w, "\n%s\n%s\n", heading, strings.Repeat("-", len(heading)))
	if out.UsedFallback {
		fmt.Fprintln(w, "[degraded: backend unavailable, fallback output]")
	}
	for _, key := range fields {
		label := strings.ReplaceAll(key, "_", " ")
		fmt.Fprintf(w, "%s: %s\n", strings.ToUpper(label[:1])+label[1:], out.Field(key))
	}
}

func init() {
	analyzeCmd.Flags().String("case", "", "built-in case ID (see: debias-llm cases list)")
	analyzeCmd.Flags().String("case-file", "", "path to a YAML case file")
	analyzeCmd.Flags().String("model", "", "model identifier for generation")
	analyzeCmd.Flags().Int("max-tokens", 0, "per-stage token budget")
	analyzeCmd.Flags().Float64("temperature", 0, "sampling temperature")
	analyzeCmd.Flags().Duration("timeout", 0, "per-call generation timeout")
	analyzeCmd.Flags().Bool("strict", false, "propagate backend failures instead of falling back")
	analyzeCmd.Flags().Bool("json", false, "output the full result as JSON")

	rootCmd.AddCommand(analyzeCmd)
}
