package domain

import "testing"

func TestAccuracyRoundsToTwoDecimals(t *testing.T) {
	cases := []struct {
		name    string
		correct int
		total   int
		want    float64
	}{
		{"four of five", 4, 5, 80},
		{"one of three", 1, 3, 33.33},
		{"two of three", 2, 3, 66.67},
		{"perfect", 10, 10, 100},
		{"nothing attempted", 0, 0, 0},
	}
	for _, tc := range cases {
		h := HighScore{CorrectAnswers: tc.correct, TotalQuestions: tc.total}
		if got := h.Accuracy(); got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCorrectAnswerBounds(t *testing.T) {
	q := TriviaQuestion{Options: []string{"Peach", "Daisy"}, CorrectAnswerIndex: 1}
	if got := q.CorrectAnswer(); got != "Daisy" {
		t.Fatalf("got %q, want Daisy", got)
	}
	q.CorrectAnswerIndex = 2
	if got := q.CorrectAnswer(); got != "" {
		t.Fatalf("out-of-range index should yield empty answer, got %q", got)
	}
}

func TestPublicViewOmitsAnswerKey(t *testing.T) {
	q := TriviaQuestion{
		ID:                 7,
		Question:           "Who kidnaps Princess Peach?",
		Options:            []string{"Bowser", "Wario", "Waluigi"},
		CorrectAnswerIndex: 0,
		Difficulty:         DifficultyEasy,
	}
	pub := q.Public()
	if pub.ID != q.ID || pub.Question != q.Question || pub.Difficulty != q.Difficulty {
		t.Fatalf("public view lost fields: %+v", pub)
	}
	if len(pub.Options) != 3 {
		t.Fatalf("expected 3 options, got %d", len(pub.Options))
	}
}
