package cmd

import (
	"context"
	"coursegpt_backend/internal/llm"
	"coursegpt_backend/internal/service"
	"coursegpt_backend/internal/util"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a lesson draft and print it as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		count, _ := cmd.Flags().GetInt("subtopics")
		category, _ := cmd.Flags().GetString("category")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		ctx := context.Background()
		provider, err := llm.NewProvider(ctx, cfg.AI)
		if err != nil {
			return fmt.Errorf("create provider: %w", err)
		}

		svc := service.NewGenerationService(provider, service.SettingsFromConfig(cfg.AI))
		draft, err := svc.Generate(ctx, topic, count, category)
		if err != nil {
			var genErr *util.GenerationError
			if errors.As(err, &genErr) {
				return errors.New(genErr.UserMessage())
			}
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(draft)
	},
}

func init() {
	generateCmd.Flags().String("topic", "", "Lesson topic (required)")
	generateCmd.Flags().Int("subtopics", service.DefaultSubtopicCount, "Number of subtopics (1-20)")
	generateCmd.Flags().String("category", "", "Lesson category, defaults to beginner")
	_ = generateCmd.MarkFlagRequired("topic")
}
