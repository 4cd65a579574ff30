package service

import (
	"math/rand"
	"sort"

	"github.com/imon025/quizi-backend/internal/model"
)

// SelectQuestions draws the question set one attempt is served.
//
// When attempts_count is positive the served count is
// min(len(pool), attempts_count); zero serves the full pool. The subset is
// drawn uniformly at random on every call. shuffle_questions controls only
// the presentation order: off keeps the authored order of whatever subset
// was drawn, on serves a uniform permutation. shuffle_options permutes each
// question's options while every option keeps its stable key.
func SelectQuestions(quiz *model.Quiz, pool []model.Question, rng *rand.Rand) []model.QuestionForStudent {
	count := len(pool)
	if quiz.AttemptsCount > 0 && quiz.AttemptsCount < count {
		count = quiz.AttemptsCount
	}

	idx := rng.Perm(len(pool))[:count]
	if !quiz.ShuffleQuestions {
		sort.Ints(idx)
	}

	served := make([]model.QuestionForStudent, 0, count)
	for _, i := range idx {
		q := &pool[i]
		opts := q.Options()
		if quiz.ShuffleOptions && len(opts) > 1 {
			rng.Shuffle(len(opts), func(a, b int) {
				opts[a], opts[b] = opts[b], opts[a]
			})
		}
		served = append(served, model.QuestionForStudent{
			ID:           q.ID,
			Text:         q.Text,
			Options:      opts,
			PointValue:   q.PointValue,
			QuestionType: q.QuestionType,
		})
	}
	return served
}
