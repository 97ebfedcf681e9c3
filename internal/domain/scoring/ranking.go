package scoring

import (
	"math/big"
	"sort"
	"strconv"

	"github.com/okian/scoutboard/internal/domain/model"
	"github.com/okian/scoutboard/internal/domain/types"
)

// Projection defaults for absent keys.
const (
	defaultIdentifier = "N/A"
	defaultUsername   = "Unknown"
	defaultNotes      = ""
	defaultSavedAt    = "Unknown"
)

// Ratings coerces the six rating fields of rec. An absent key counts as 0.
// If any present value fails coercion, all six are zero.
func Ratings(rec model.Record) [6]int64 {
	var out [6]int64
	for i, key := range model.RatingKeys {
		v, ok := rec.Lookup(key)
		if !ok {
			continue
		}
		n, err := ToInt(v)
		if err != nil {
			return [6]int64{}
		}
		out[i] = n
	}
	return out
}

// Project builds the ranking view of a single record.
func Project(rec model.Record) types.Ranking {
	r := Ratings(rec)

	sum := new(big.Int)
	highest := r[0]
	for _, v := range r {
		sum.Add(sum, big.NewInt(v))
		if v > highest {
			highest = v
		}
	}

	return types.Ranking{
		MatchNumber:   rec.GetOr(model.KeyMatchNumber, defaultIdentifier),
		Event:         rec.GetOr(model.KeyEvent, defaultIdentifier),
		TeamName:      rec.GetOr(model.KeyTeamName, defaultIdentifier),
		TeamNumber:    rec.GetOr(model.KeyTeamNumber, defaultIdentifier),
		AvgScore:      Round2(mean(sum, len(r))),
		HighestScore:  highest,
		Username:      rec.GetOr(model.KeyUsername, defaultUsername),
		Defense:       r[0],
		Strategy:      r[1],
		Effectiveness: r[2],
		DriveSkill:    r[3],
		Scoring:       r[4],
		Consistency:   r[5],
		Notes:         rec.GetOr(model.KeyNotes, defaultNotes),
		SavedAt:       rec.GetOr(model.KeySavedAt, defaultSavedAt),
	}
}

// Rank projects every record and orders them by avgScore descending.
// Records with equal averages keep their submission order.
func Rank(records []model.Record) []types.Ranking {
	out := make([]types.Ranking, len(records))
	for i, rec := range records {
		out[i] = Project(rec)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AvgScore > out[j].AvgScore
	})
	return out
}

// mean divides sum by n with a single correctly rounded step, so rating
// sums beyond the int64 range still average correctly.
func mean(sum *big.Int, n int) float64 {
	q := new(big.Float).SetPrec(53).Quo(new(big.Float).SetInt(sum), new(big.Float).SetInt64(int64(n)))
	f, _ := q.Float64()
	return f
}

// Round2 rounds x to two decimal places, half to even on the exact binary
// value of x.
func Round2(x float64) float64 {
	s := strconv.FormatFloat(x, 'f', 2, 64)
	r, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return x
	}
	return r
}
