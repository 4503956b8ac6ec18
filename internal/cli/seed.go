package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"mushroom-trivia/internal/config"
	"mushroom-trivia/internal/domain"
	pginfra "mushroom-trivia/internal/infra/postgres"
)

// NewSeedCmd loads the sample characters and questions into postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load sample characters and trivia questions into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), *configPath)
		},
	}
}

func runSeed(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}
	if err := runMigrationsWithConfig(ctx, cfg); err != nil {
		return err
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.URL)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	questions := pginfra.NewQuestionRepository(db)
	count, err := questions.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		slog.Info("database already seeded", "questions", count)
		return nil
	}

	characters := pginfra.NewCharacterRepository(db)
	for _, c := range sampleCharacters() {
		character := c
		if err := characters.Create(ctx, &character); err != nil {
			return err
		}
	}
	for _, q := range sampleQuestions() {
		question := q
		if err := questions.Create(ctx, &question); err != nil {
			return err
		}
	}
	scores := pginfra.NewHighScoreRepository(db)
	for _, s := range sampleHighScores() {
		score := s
		if err := scores.Create(ctx, &score); err != nil {
			return err
		}
	}
	slog.Info("sample data loaded",
		"characters", len(sampleCharacters()),
		"questions", len(sampleQuestions()),
		"high_scores", len(sampleHighScores()),
	)
	return nil
}

func sampleHighScores() []domain.HighScore {
	return []domain.HighScore{
		{PlayerName: "MarioFan64", Score: 100, TotalQuestions: 10, CorrectAnswers: 10},
		{PlayerName: "PeachyKeen", Score: 90, TotalQuestions: 10, CorrectAnswers: 9},
		{PlayerName: "LuigiTime", Score: 70, TotalQuestions: 10, CorrectAnswers: 7},
		{PlayerName: "KoopaTroopa", Score: 50, TotalQuestions: 10, CorrectAnswers: 5},
		{PlayerName: "ToadStool", Score: 30, TotalQuestions: 10, CorrectAnswers: 3},
	}
}

func sampleCharacters() []domain.Character {
	return []domain.Character{
		{Name: "Mario", Description: "The heroic plumber and protagonist of the Mushroom Kingdom, known for his red cap and incredible jumping ability."},
		{Name: "Luigi", Description: "Mario's taller, younger brother. Braver than he looks, especially when ghosts are involved."},
		{Name: "Princess Peach", Description: "The ruler of the Mushroom Kingdom, frequently kidnapped by Bowser but a formidable hero in her own right."},
		{Name: "Bowser", Description: "The King of the Koopas and Mario's arch-nemesis, forever scheming to take over the Mushroom Kingdom."},
		{Name: "Yoshi", Description: "A friendly dinosaur from Yoshi's Island who carries Mario on his back and swallows enemies whole."},
		{Name: "Toad", Description: "A loyal attendant of Princess Peach with a mushroom-shaped head, always ready to help."},
	}
}

func sampleQuestions() []domain.TriviaQuestion {
	return []domain.TriviaQuestion{
		{
			Question:           "What is Mario's original profession?",
			Options:            []string{"Plumber", "Carpenter", "Doctor", "Chef"},
			CorrectAnswerIndex: 1,
			Difficulty:         domain.DifficultyHard,
		},
		{
			Question:           "Who is Mario's younger brother?",
			Options:            []string{"Wario", "Luigi", "Waluigi", "Toad"},
			CorrectAnswerIndex: 1,
			Difficulty:         domain.DifficultyEasy,
		},
		{
			Question:           "What is the name of the kingdom Princess Peach rules?",
			Options:            []string{"Sarasaland", "Koopa Kingdom", "Mushroom Kingdom", "Star Haven"},
			CorrectAnswerIndex: 2,
			Difficulty:         domain.DifficultyEasy,
		},
		{
			Question:           "Which item makes Mario invincible for a short time?",
			Options:            []string{"Super Mushroom", "Fire Flower", "Super Star", "1-Up Mushroom"},
			CorrectAnswerIndex: 2,
			Difficulty:         domain.DifficultyEasy,
		},
		{
			Question:           "What species is Yoshi?",
			Options:            []string{"Dragon", "Dinosaur", "Lizard", "Turtle"},
			CorrectAnswerIndex: 1,
			Difficulty:         domain.DifficultyEasy,
		},
		{
			Question:           "In which game did Mario first appear?",
			Options:            []string{"Super Mario Bros.", "Mario Bros.", "Donkey Kong", "Wrecking Crew"},
			CorrectAnswerIndex: 2,
			Difficulty:         domain.DifficultyMedium,
		},
		{
			Question:           "What is the name of Bowser's son?",
			Options:            []string{"Bowser Jr.", "Koopa Kid", "Baby Bowser", "Iggy"},
			CorrectAnswerIndex: 0,
			Difficulty:         domain.DifficultyMedium,
		},
		{
			Question:           "Which princess does Mario rescue in Super Mario Land?",
			Options:            []string{"Peach", "Rosalina", "Daisy", "Toadette"},
			CorrectAnswerIndex: 2,
			Difficulty:         domain.DifficultyMedium,
		},
		{
			Question:           "What is the currency of the Mushroom Kingdom?",
			Options:            []string{"Coins", "Stars", "Rupees", "Bells"},
			CorrectAnswerIndex: 0,
			Difficulty:         domain.DifficultyEasy,
		},
		{
			Question:           "Who kidnapped Princess Peach in Super Mario Odyssey to force a wedding?",
			Options:            []string{"King Boo", "Bowser", "Wario", "Kamek"},
			CorrectAnswerIndex: 1,
			Difficulty:         domain.DifficultyMedium,
		},
	}
}
