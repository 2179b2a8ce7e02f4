package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagScoreOutput   string
	flagScoreCacheDir string
)

var scoreCmd = &cobra.Command{
	Use:   "score <resume-file>",
	Short: "Score a single resume file",
	Long:  "Extract, enrich, and score one resume (PDF, HTML, or plain text) and print the evaluation as JSON.",
	Args:  cobra.ExactArgs(1),
	RunE:  runScore,
}

func init() {
	scoreCmd.Flags().StringVarP(&flagScoreOutput, "output", "o", "", "Write the result JSON to a file instead of stdout")
	scoreCmd.Flags().StringVar(&flagScoreCacheDir, "cache-dir", "", "Replay GitHub API responses from this directory")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	path := args[0]
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read resume %s: %w", path, err)
	}

	p, _, _, closeAll, err := buildPipeline(false, flagScoreCacheDir)
	if err != nil {
		return err
	}
	defer closeAll()

	result, err := p.Run(cmd.Context(), path, content)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize result: %w", err)
	}
	data = append(data, '\n')

	if flagScoreOutput != "" {
		if err := os.WriteFile(flagScoreOutput, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", flagScoreOutput, err)
		}
		return nil
	}

	_, err = os.Stdout.Write(data)
	return err
}
