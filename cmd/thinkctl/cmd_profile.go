package main

import (
	"fmt"
	"thinking_styles_backend/internal/scoring"

	"github.com/spf13/cobra"
)

type profileOutput struct {
	Scores           map[scoring.AssessmentType]scoring.CategoryScores `json:"scores" yaml:"scores"`
	Profile          scoring.ThinkingStyleProfile                      `json:"profile" yaml:"profile"`
	EducationMapping scoring.EducationMapping                          `json:"educationMapping" yaml:"educationMapping"`
}

func newProfileCommand(opts *rootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Build a thinking-style profile from several questionnaires",
		Long: `Score every questionnaire in the input, combine the results into one
profile and map the primary style to SHS tracks, tertiary programmes and careers.
The file maps an assessment type to its list of answers:

  kolb:
    - {questionId: kolb_1, score: 4}
  sternberg:
    - {questionId: sternberg_1, score: 5}`,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := opts.engine()
			if err != nil {
				return err
			}

			var input map[scoring.AssessmentType][]scoring.Response
			if err := readInput(cmd.InOrStdin(), file, &input); err != nil {
				return err
			}
			if len(input) == 0 {
				return fmt.Errorf("no assessments in %s", file)
			}
			for t := range input {
				if !engine.Bank().Has(t) {
					return fmt.Errorf("%w: %s", scoring.ErrUnknownAssessmentType, t)
				}
			}

			out := profileOutput{Scores: make(map[scoring.AssessmentType]scoring.CategoryScores, len(input))}
			var all []scoring.CategoryScores
			// 按题库顺序合并，保证并列时结果稳定
			for _, t := range engine.Bank().Types() {
				responses, ok := input[t]
				if !ok {
					continue
				}
				scores, err := engine.NormalizeAndScore(t, responses)
				if err != nil {
					return fmt.Errorf("%s: %w", t, err)
				}
				out.Scores[t] = scores
				all = append(all, scores)
			}

			out.Profile = engine.SynthesizeProfile(all...)
			out.EducationMapping = engine.MapEducation(out.Profile.PrimaryStyle, out.Profile.SecondaryStyle)
			return opts.print(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "Answers file")

	return cmd
}
