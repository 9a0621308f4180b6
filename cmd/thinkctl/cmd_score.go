package main

import (
	"fmt"
	"io"
	"os"
	"thinking_styles_backend/internal/scoring"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newScoreCommand(opts *rootOptions) *cobra.Command {
	var (
		assessmentType string
		file           string
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score the answers of one questionnaire",
		Long: `Score a list of answers for one questionnaire and print the mean of each
category. The file holds a JSON or YAML list of {questionId, score} entries;
use "-" to read from stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := opts.engine()
			if err != nil {
				return err
			}

			var responses []scoring.Response
			if err := readInput(cmd.InOrStdin(), file, &responses); err != nil {
				return err
			}

			scores, err := engine.NormalizeAndScore(scoring.AssessmentType(assessmentType), responses)
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), scores)
		},
	}

	cmd.Flags().StringVarP(&assessmentType, "type", "t", "", "Assessment type, e.g. kolb")
	cmd.Flags().StringVarP(&file, "file", "f", "-", "Answers file")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

// readInput 读取 JSON 或 YAML 输入，path 为 "-" 时读标准输入
func readInput(stdin io.Reader, path string, v interface{}) error {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
