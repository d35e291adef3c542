package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/convocoach/coach-service/internal/challenge"
	"github.com/convocoach/coach-service/internal/config"
	"github.com/convocoach/coach-service/internal/content"
	"github.com/convocoach/coach-service/internal/logging"
	"github.com/convocoach/coach-service/internal/quiz"
)

type seedQuiz struct {
	Question      string   `yaml:"question"`
	Options       []string `yaml:"options"`
	CorrectAnswer string   `yaml:"correctAnswer"`
}

type seedPage struct {
	Heading string    `yaml:"heading"`
	Content string    `yaml:"content"`
	Quiz    *seedQuiz `yaml:"quiz"`
}

type seedChallenge struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type seedData struct {
	Challenges    []seedChallenge       `yaml:"challenges"`
	TheoryContent map[string][]seedPage `yaml:"theoryContent"`
}

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load challenges and theory content into the store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&seedFile, "file", "seed/seed.yaml", "path to the YAML seed file")
	return cmd
}

func runSeed(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	logger := logging.NewLogger("coach-seeder")

	data, err := os.ReadFile(seedFile)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var seed seedData
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}
	if len(seed.Challenges) == 0 {
		return challenge.ErrNoChallenges
	}

	st, err := newStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close()

	challenges := make([]challenge.Challenge, 0, len(seed.Challenges))
	for _, c := range seed.Challenges {
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		challenges = append(challenges, challenge.Challenge{
			ID:          c.ID,
			Title:       c.Title,
			Description: c.Description,
		})
	}

	rotation := &challenge.Rotation{
		Challenges:   challenges,
		CurrentIndex: 0,
		LastUpdated:  time.Now().Format(challenge.DateLayout),
	}
	if err := st.challenges.SaveRotation(ctx, rotation); err != nil {
		return fmt.Errorf("save rotation: %w", err)
	}
	logger.Info("seeded challenge rotation", "challenges", len(challenges))

	for category, pages := range seed.TheoryContent {
		converted := make([]content.Page, 0, len(pages))
		for _, p := range pages {
			page := content.Page{Heading: p.Heading, Content: p.Content}
			if p.Quiz != nil {
				page.Quiz = &quiz.Question{
					Question:      p.Quiz.Question,
					Options:       p.Quiz.Options,
					CorrectAnswer: p.Quiz.CorrectAnswer,
				}
			}
			converted = append(converted, page)
		}
		if err := st.content.SaveCategory(ctx, category, converted); err != nil {
			return fmt.Errorf("save category %q: %w", category, err)
		}
		logger.Info("seeded category", "category", category, "pages", len(converted))
	}

	return nil
}
