package service

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/imon025/quizi-backend/internal/model"
)

func makePool(n int) []model.Question {
	pool := make([]model.Question, 0, n)
	for i := 0; i < n; i++ {
		pool = append(pool, model.Question{
			ID:            uuid.New(),
			Text:          "question",
			OptionA:       "alpha",
			OptionB:       "bravo",
			OptionC:       "charlie",
			OptionD:       "delta",
			CorrectOption: "a",
			PointValue:    1,
			QuestionType:  model.QuestionTypeMCQ,
		})
	}
	return pool
}

func TestSelectQuestionsCount(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tests := []struct {
		name          string
		poolSize      int
		attemptsCount int
		want          int
	}{
		{"zero serves full pool", 5, 0, 5},
		{"cap below pool", 5, 3, 3},
		{"cap equals pool", 5, 5, 5},
		{"cap above pool", 5, 10, 5},
		{"single question", 5, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quiz := &model.Quiz{AttemptsCount: tt.attemptsCount}
			got := SelectQuestions(quiz, makePool(tt.poolSize), rng)
			if len(got) != tt.want {
				t.Errorf("served %d questions, want %d", len(got), tt.want)
			}
		})
	}
}

func TestSelectQuestionsEmptyPool(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	got := SelectQuestions(&model.Quiz{}, nil, rng)
	if len(got) != 0 {
		t.Errorf("served %d questions from empty pool", len(got))
	}
}

func TestSelectQuestionsPreservesOrderWithoutShuffle(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pool := makePool(10)
	quiz := &model.Quiz{AttemptsCount: 4}

	served := SelectQuestions(quiz, pool, rng)

	pos := make(map[uuid.UUID]int, len(pool))
	for i, q := range pool {
		pos[q.ID] = i
	}
	for i := 1; i < len(served); i++ {
		if pos[served[i-1].ID] >= pos[served[i].ID] {
			t.Fatalf("authored order broken at %d: %d before %d",
				i, pos[served[i-1].ID], pos[served[i].ID])
		}
	}
}

func TestSelectQuestionsShuffledIsPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pool := makePool(20)
	quiz := &model.Quiz{ShuffleQuestions: true}

	served := SelectQuestions(quiz, pool, rng)
	if len(served) != len(pool) {
		t.Fatalf("served %d, want %d", len(served), len(pool))
	}
	seen := make(map[uuid.UUID]bool, len(served))
	for _, q := range served {
		if seen[q.ID] {
			t.Fatalf("question %s served twice", q.ID)
		}
		seen[q.ID] = true
	}
	for _, q := range pool {
		if !seen[q.ID] {
			t.Fatalf("question %s missing from permutation", q.ID)
		}
	}
}

func TestSelectQuestionsOptionKeysFollowText(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	pool := makePool(1)
	quiz := &model.Quiz{ShuffleOptions: true}

	wantText := map[string]string{
		"a": "alpha", "b": "bravo", "c": "charlie", "d": "delta",
	}

	// Across many draws every key must still carry its original text.
	for i := 0; i < 200; i++ {
		served := SelectQuestions(quiz, pool, rng)
		if len(served) != 1 {
			t.Fatalf("served %d questions, want 1", len(served))
		}
		opts := served[0].Options
		if len(opts) != 4 {
			t.Fatalf("served %d options, want 4", len(opts))
		}
		for _, o := range opts {
			if wantText[o.Key] != o.Text {
				t.Fatalf("key %q carries text %q, want %q", o.Key, o.Text, wantText[o.Key])
			}
		}
	}
}

func TestSelectQuestionsNeverLeaksCorrectOption(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	served := SelectQuestions(&model.Quiz{ShuffleQuestions: true, ShuffleOptions: true}, makePool(5), rng)
	for _, q := range served {
		for _, o := range q.Options {
			if o.Text == "" {
				t.Fatalf("question %s served an empty option", q.ID)
			}
		}
	}
}

func TestSelectQuestionsSubsetDrawIsUniform(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	pool := makePool(5)
	quiz := &model.Quiz{AttemptsCount: 1}

	const draws = 5000
	counts := make(map[uuid.UUID]int, len(pool))
	for i := 0; i < draws; i++ {
		served := SelectQuestions(quiz, pool, rng)
		if len(served) != 1 {
			t.Fatalf("served %d questions, want 1", len(served))
		}
		counts[served[0].ID]++
	}

	// Expected 1000 per question; allow a wide band to keep the test stable.
	for _, q := range pool {
		n := counts[q.ID]
		if n < 800 || n > 1200 {
			t.Errorf("question drawn %d times out of %d, expected near %d", n, draws, draws/len(pool))
		}
	}
}
