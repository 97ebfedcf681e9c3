// Package model contains domain models passed between layers.
package model

// Well-known record keys.
const (
	KeyMatchNumber   = "matchNumber"
	KeyEvent         = "event"
	KeyTeamName      = "teamName"
	KeyTeamNumber    = "teamNumber"
	KeyDefense       = "defense"
	KeyStrategy      = "strategy"
	KeyEffectiveness = "effectiveness"
	KeyDriveSkill    = "driveSkill"
	KeyScoring       = "scoring"
	KeyConsistency   = "consistency"
	KeyUsername      = "username"
	KeyNotes         = "notes"
	KeySavedAt       = "_savedAt"
)

// RatingKeys lists the six rating fields in projection order.
var RatingKeys = [...]string{
	KeyDefense,
	KeyStrategy,
	KeyEffectiveness,
	KeyDriveSkill,
	KeyScoring,
	KeyConsistency,
}

// Record is one submitted scouting entry. Fields are not pre-declared;
// numbers decode as json.Number.
type Record map[string]any

// Lookup returns the value under key and whether the key is present.
func (r Record) Lookup(key string) (any, bool) {
	v, ok := r[key]
	return v, ok
}

// GetOr returns the value under key, or def when the key is absent.
// A key present with a null value yields nil.
func (r Record) GetOr(key string, def any) any {
	if v, ok := r[key]; ok {
		return v
	}
	return def
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
