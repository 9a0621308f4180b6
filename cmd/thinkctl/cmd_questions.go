package main

import (
	"thinking_styles_backend/internal/scoring"

	"github.com/spf13/cobra"
)

func newQuestionsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "questions [type]",
		Short: "Print the question bank",
		Long: `Print every question set in the bank, or only the one named by [type]
(kolb, sternberg, dual_process or a type from a custom bank).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := opts.engine()
			if err != nil {
				return err
			}
			bank := engine.Bank()

			types := bank.Types()
			if len(args) == 1 {
				types = []scoring.AssessmentType{scoring.AssessmentType(args[0])}
			}

			sets := make([]scoring.QuestionSet, 0, len(types))
			for _, t := range types {
				set, err := bank.Set(t)
				if err != nil {
					return err
				}
				sets = append(sets, set)
			}
			return opts.print(cmd.OutOrStdout(), sets)
		},
	}
}
