package main

import (
	"fmt"

	"badge-sync/internal/config"
	"badge-sync/internal/dataset"
	"badge-sync/internal/domain/recommend"
	"badge-sync/internal/usecase"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func newRecommendCmd(logger loggerFunc) *cobra.Command {
	var (
		file         string
		titleColumn  string
		skillsColumn string
		skills       []string
		include      []string
		n            int
		alpha        float64
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Train on a skills CSV and print recommendations as JSON",
		Example: `  badgectl recommend --dataset skills.csv --skill go --skill sql -n 3
  badgectl recommend --dataset skills.csv --skill python --include excel`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := logger(cmd)
			src := dataset.CSVSource{Path: file, TitleColumn: titleColumn, SkillsColumn: skillsColumn}
			records, err := src.Load(cmd.Context())
			if err != nil {
				return err
			}

			model, err := recommend.Train(cmd.Context(), records, recommend.WithAlpha(alpha), recommend.WithLogger(log))
			if err != nil {
				return err
			}

			maxN := n
			if maxN < 1 {
				maxN = 1
			}
			uc := usecase.NewRecommendationUsecase(model, nil, config.RecommendConfig{DefaultN: maxN, MaxN: maxN, Alpha: alpha}, 0, log)
			res, err := uc.Predict(cmd.Context(), usecase.PredictParams{Skills: skills, AdditionalSkills: include, N: &n})
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal recommendations: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "dataset", "d", envOr("DATASET_PATH", "skills.csv"), "Path to the skills CSV")
	cmd.Flags().StringVar(&titleColumn, "title-column", dataset.DefaultTitleColumn, "CSV column holding the job title")
	cmd.Flags().StringVar(&skillsColumn, "skills-column", dataset.DefaultSkillsColumn, "CSV column holding the comma separated skills")
	cmd.Flags().StringArrayVarP(&skills, "skill", "s", nil, "A skill the user has (repeatable)")
	cmd.Flags().StringArrayVarP(&include, "include", "i", nil, "A skill every recommendation must still be missing (repeatable)")
	cmd.Flags().IntVarP(&n, "count", "n", 5, "Number of recommendations")
	cmd.Flags().Float64Var(&alpha, "alpha", 1.0, "Additive smoothing of the classifier")
	return cmd
}
