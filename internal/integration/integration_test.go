package integration

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"mushroom-trivia/internal/app"
	"mushroom-trivia/internal/domain"
	pginfra "mushroom-trivia/internal/infra/postgres"
	pgmigrations "mushroom-trivia/internal/infra/postgres/migrations"
	redisinfra "mushroom-trivia/internal/infra/redis"
)

func TestGameFlowEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	db := openBun(t, ctx, pgURL)
	defer db.Close()

	questions := pginfra.NewQuestionRepository(db)
	seeded := seedQuestions(t, ctx, questions)

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}

	cache := redisinfra.NewQuestionCache(redisClient, pginfra.NewQuestionLoader(pool), 5*time.Minute)
	sessions := redisinfra.NewSessionStore(redisClient, 5*time.Minute)
	scores := pginfra.NewHighScoreRepository(db)
	game := app.NewGameService(cache, sessions, scores, 10)

	start, err := game.StartSession(ctx)
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	if start.NoQuestions || len(start.Questions) != len(seeded) {
		t.Fatalf("expected %d questions, got %+v", len(seeded), start)
	}

	answerKey := make(map[int64]int, len(seeded))
	for _, q := range seeded {
		answerKey[q.ID] = q.CorrectAnswerIndex
	}

	// Answer everything correctly except the last question.
	var progress app.Progress
	for i, q := range start.Questions {
		idx := answerKey[q.ID]
		if i == len(start.Questions)-1 {
			idx = (idx + 1) % len(q.Options)
		}
		verdict, p, err := game.AnswerCurrent(ctx, start.Token, q.ID, idx)
		if err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
		wantCorrect := i != len(start.Questions)-1
		if verdict.IsCorrect != wantCorrect {
			t.Fatalf("answer %d: expected correct=%v, got %+v", i, wantCorrect, verdict)
		}
		progress = p
	}
	if progress.State != app.SessionCompleted {
		t.Fatalf("expected completed session, got %s", progress.State)
	}
	wantScore := (len(seeded) - 1) * app.PointsPerCorrect
	if progress.Score != wantScore {
		t.Fatalf("expected score %d, got %d", wantScore, progress.Score)
	}

	saved, err := game.SaveScore(ctx, start.Token, "Mario")
	if err != nil {
		t.Fatalf("save score: %v", err)
	}
	if saved.ID == 0 || saved.Score != wantScore || saved.CorrectAnswers != len(seeded)-1 {
		t.Fatalf("unexpected saved score: %+v", saved)
	}

	top, err := scores.Top(ctx, 10)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(top) != 1 || top[0].PlayerName != "Mario" {
		t.Fatalf("expected Mario on the board, got %+v", top)
	}

	again, err := cache.Questions(ctx)
	if err != nil {
		t.Fatalf("cached read: %v", err)
	}
	if len(again) != len(seeded) {
		t.Fatalf("cache lost questions: %d != %d", len(again), len(seeded))
	}
}

func openBun(t *testing.T, ctx context.Context, dsn string) *bun.DB {
	t.Helper()
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedQuestions(t *testing.T, ctx context.Context, repo *pginfra.QuestionRepository) []domain.TriviaQuestion {
	t.Helper()
	bank := []domain.TriviaQuestion{
		{
			Question:           "Who is Mario's brother?",
			Options:            []string{"Wario", "Luigi", "Toad"},
			CorrectAnswerIndex: 1,
			Difficulty:         domain.DifficultyEasy,
		},
		{
			Question:           "What does Yoshi eat enemies with?",
			Options:            []string{"His tongue", "A hammer"},
			CorrectAnswerIndex: 0,
			Difficulty:         domain.DifficultyEasy,
		},
		{
			Question:           "Which power-up grants fireballs?",
			Options:            []string{"Super Star", "Fire Flower", "Super Leaf", "Ice Flower"},
			CorrectAnswerIndex: 1,
			Difficulty:         domain.DifficultyMedium,
		},
	}
	for i := range bank {
		if err := repo.Create(ctx, &bank[i]); err != nil {
			t.Fatalf("seed question %d: %v", i, err)
		}
	}
	return bank
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "trivia", "POSTGRES_PASSWORD": "triviapass", "POSTGRES_DB": "triviadb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://trivia:triviapass@%s:%s/triviadb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
