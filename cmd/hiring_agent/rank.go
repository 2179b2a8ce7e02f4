package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/hiring-agent/internal/pipeline"
	"github.com/jonathan/hiring-agent/internal/types"
)

var rankCmd = &cobra.Command{
	Use:   "rank <result.json>...",
	Short: "Rank saved scoring results",
	Long:  "Read result files produced by 'score -o' and print candidates ordered by final score.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRank,
}

func init() {
	rootCmd.AddCommand(rankCmd)
}

func runRank(_ *cobra.Command, args []string) error {
	evals := make([]*types.Evaluation, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		var result pipeline.Result
		if err := json.Unmarshal(data, &result); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if result.Evaluation == nil {
			return fmt.Errorf("%s contains no evaluation", path)
		}
		evals = append(evals, result.Evaluation)
	}

	for i, eval := range types.RankEvaluations(evals) {
		fmt.Printf("%2d. %-30s %6.1f\n", i+1, eval.CandidateName, eval.FinalScore)
	}
	return nil
}
