package model

// Entry is one player's best score on the leaderboard.
type Entry struct {
	Username  string `json:"username"`
	Score     int64  `json:"score"`
	Timestamp string `json:"timestamp"`
}
