// Package types contains read shapes returned by the API.
package types

// Ranking is the derived view of a scouting record. Identifier fields keep
// whatever JSON value the client sent.
type Ranking struct {
	MatchNumber   any     `json:"matchNumber"`
	Event         any     `json:"event"`
	TeamName      any     `json:"teamName"`
	TeamNumber    any     `json:"teamNumber"`
	AvgScore      float64 `json:"avgScore"`
	HighestScore  int64   `json:"highestScore"`
	Username      any     `json:"username"`
	Defense       int64   `json:"defense"`
	Strategy      int64   `json:"strategy"`
	Effectiveness int64   `json:"effectiveness"`
	DriveSkill    int64   `json:"driveSkill"`
	Scoring       int64   `json:"scoring"`
	Consistency   int64   `json:"consistency"`
	Notes         any     `json:"notes"`
	SavedAt       any     `json:"_savedAt"`
}

// Ratings returns the six ratings in projection order.
func (r Ranking) Ratings() [6]int64 {
	return [6]int64{r.Defense, r.Strategy, r.Effectiveness, r.DriveSkill, r.Scoring, r.Consistency}
}
