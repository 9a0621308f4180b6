package main

import (
	"encoding/json"
	"io"
	"thinking_styles_backend/internal/config"
	"thinking_styles_backend/internal/scoring"
	"thinking_styles_backend/internal/service"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var version = "dev"

// 全局参数
type rootOptions struct {
	bankPath string
	strict   bool
	asYAML   bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "thinkctl",
		Short: "Offline scoring for thinking-style assessments",
		Long: `thinkctl scores Kolb, Sternberg and dual-process questionnaires without
the API server. It uses the same question bank and scoring rules as the backend,
so counselors can check a paper questionnaire or validate a custom bank file.`,
		Version:      version,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.bankPath, "bank", "", "Question bank YAML file (built-in bank when empty)")
	cmd.PersistentFlags().BoolVar(&opts.strict, "strict", false, "Reject unknown question IDs and out-of-range scores")
	cmd.PersistentFlags().BoolVar(&opts.asYAML, "yaml", false, "Print YAML instead of JSON")

	cmd.AddCommand(newQuestionsCommand(opts))
	cmd.AddCommand(newScoreCommand(opts))
	cmd.AddCommand(newProfileCommand(opts))
	cmd.AddCommand(newMapCommand(opts))

	return cmd
}

func execute() error {
	return newRootCommand().Execute()
}

func (o *rootOptions) engine() (*scoring.Engine, error) {
	return service.BuildEngine(config.AssessmentConfig{
		QuestionBankPath: o.bankPath,
		StrictQuestions:  o.strict,
	})
}

func (o *rootOptions) print(w io.Writer, v interface{}) error {
	if o.asYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
