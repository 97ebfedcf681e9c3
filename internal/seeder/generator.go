package seeder

import (
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/google/uuid"

	"github.com/okian/scoutboard/internal/domain/model"
)

// Rating generation settings.
const (
	maxRating       = 10
	malformedEveryN = 25 // one record in N carries an unparseable rating
	fractionalEvery = 3  // one score in N is sent as a decimal string
	maxScore        = 10_000
)

var eventNames = [...]string{"Regional", "District", "Championship", "Scrimmage"}

// ScoreSubmission is one POST /leaderboard/submit payload.
type ScoreSubmission struct {
	Username string `json:"username"`
	Score    any    `json:"score"`
}

// Generator produces deterministic payloads for a given seed.
type Generator struct {
	rng   *rand.Rand
	runID string
}

// NewGenerator creates a generator seeded with seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		runID: uuid.NewString()[:8],
	}
}

// RunID tags every record produced by this generator.
func (g *Generator) RunID() string {
	return g.runID
}

// Records returns n scouting records. Each carries a unique notes value
// so the read side can match projections back to submissions.
func (g *Generator) Records(n int) []model.Record {
	out := make([]model.Record, n)
	for i := range out {
		rec := model.Record{
			model.KeyMatchNumber: strconv.Itoa(1 + g.rng.IntN(80)),
			model.KeyEvent:       eventNames[g.rng.IntN(len(eventNames))],
			model.KeyTeamName:    fmt.Sprintf("Team %d", 100+g.rng.IntN(9000)),
			model.KeyTeamNumber:  strconv.Itoa(100 + g.rng.IntN(9000)),
			model.KeyUsername:    "scout-" + strconv.Itoa(g.rng.IntN(12)),
			model.KeyNotes:       noteFor(g.runID, i),
		}
		for _, key := range model.RatingKeys {
			// Mix JSON numbers and numeric strings the way form clients send them.
			v := g.rng.IntN(maxRating + 1)
			if g.rng.IntN(2) == 0 {
				rec[key] = strconv.Itoa(v)
			} else {
				rec[key] = v
			}
		}
		if g.rng.IntN(malformedEveryN) == 0 {
			rec[model.RatingKeys[g.rng.IntN(len(model.RatingKeys))]] = "n/a"
		}
		out[i] = rec
	}
	return out
}

// Scores returns n leaderboard submissions spread over users usernames.
func (g *Generator) Scores(n, users int) []ScoreSubmission {
	names := make([]string, users)
	for i := range names {
		names[i] = "player-" + uuid.NewString()[:12]
	}

	out := make([]ScoreSubmission, n)
	for i := range out {
		s := ScoreSubmission{Username: names[g.rng.IntN(users)]}
		if g.rng.IntN(fractionalEvery) == 0 {
			s.Score = strconv.FormatFloat(g.rng.Float64()*maxScore, 'f', 2, 64)
		} else {
			s.Score = g.rng.IntN(maxScore)
		}
		out[i] = s
	}
	return out
}

func noteFor(runID string, i int) string {
	return fmt.Sprintf("seed:%s:%d", runID, i)
}
