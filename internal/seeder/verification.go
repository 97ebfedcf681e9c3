package seeder

import (
	"errors"
	"fmt"
	"sort"

	"github.com/okian/scoutboard/internal/domain/model"
	"github.com/okian/scoutboard/internal/domain/scoring"
)

// ErrVerification is returned when the read endpoints disagree with what
// was submitted.
var ErrVerification = errors.New("verification failed")

// VerifyRankings checks that rankings are ordered by avgScore descending
// and that every submitted record appears with the average computed
// locally.
func VerifyRankings(rankings []Ranking, sent []model.Record) error {
	for i := 1; i < len(rankings); i++ {
		if rankings[i].AvgScore > rankings[i-1].AvgScore {
			return fmt.Errorf("%w: rankings[%d] avgScore %.2f above rankings[%d] %.2f",
				ErrVerification, i, rankings[i].AvgScore, i-1, rankings[i-1].AvgScore)
		}
	}

	byNote := make(map[string]Ranking, len(rankings))
	for _, r := range rankings {
		if note, ok := r.Notes.(string); ok {
			byNote[note] = r
		}
	}
	for _, rec := range sent {
		note, _ := rec[model.KeyNotes].(string)
		got, ok := byNote[note]
		if !ok {
			return fmt.Errorf("%w: record %q missing from rankings", ErrVerification, note)
		}
		want := scoring.Project(rec)
		if got.AvgScore != want.AvgScore || got.HighestScore != want.HighestScore {
			return fmt.Errorf("%w: record %q avg/highest %.2f/%d, want %.2f/%d",
				ErrVerification, note, got.AvgScore, got.HighestScore, want.AvgScore, want.HighestScore)
		}
		if got.SavedAt == nil || got.SavedAt == "Unknown" {
			return fmt.Errorf("%w: record %q has no _savedAt", ErrVerification, note)
		}
	}
	return nil
}

// ExpectedBest returns the best truncated score per username. Submissions
// whose score does not coerce are skipped.
func ExpectedBest(scores []ScoreSubmission) map[string]int64 {
	best := make(map[string]int64)
	for _, s := range scores {
		v, err := scoring.ToScore(s.Score)
		if err != nil {
			continue
		}
		if cur, ok := best[s.Username]; !ok || v > cur {
			best[s.Username] = v
		}
	}
	return best
}

// VerifyLeaderboard checks size, ordering and, when every user fits on the
// board, that each returned entry holds that user's best score.
func VerifyLeaderboard(entries []Entry, best map[string]int64, capacity, limit int) error {
	if len(entries) > limit {
		return fmt.Errorf("%w: leaderboard has %d entries, limit is %d", ErrVerification, len(entries), limit)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Score > entries[i-1].Score {
			return fmt.Errorf("%w: leaderboard[%d] score %d above leaderboard[%d] %d",
				ErrVerification, i, entries[i].Score, i-1, entries[i-1].Score)
		}
	}

	// Past capacity a user can be evicted and re-enter with a lower score,
	// so exact per-user checks only hold while every user fits.
	if len(best) > capacity {
		return nil
	}

	want := len(best)
	if want > limit {
		want = limit
	}
	if len(entries) != want {
		return fmt.Errorf("%w: leaderboard has %d entries, want %d", ErrVerification, len(entries), want)
	}

	top := make([]int64, 0, len(best))
	for _, v := range best {
		top = append(top, v)
	}
	sort.Slice(top, func(i, j int) bool { return top[i] > top[j] })

	for i, e := range entries {
		if v, ok := best[e.Username]; !ok || v != e.Score {
			return fmt.Errorf("%w: %s has score %d, want %d", ErrVerification, e.Username, e.Score, v)
		}
		if e.Score != top[i] {
			return fmt.Errorf("%w: leaderboard[%d] score %d, want %d", ErrVerification, i, e.Score, top[i])
		}
	}
	return nil
}
