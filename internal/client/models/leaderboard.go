package models

import "fmt"

// Rank is a user's kyu-style rank. 1..7 are the regular tiers (1 kyu is
// the highest), 20 is the special top tier.
type Rank int

const RankSensei Rank = 20

func (r Rank) String() string {
	if r == RankSensei {
		return "sensei"
	}
	if r >= 1 && r <= 7 {
		return fmt.Sprintf("%d kyu", int(r))
	}
	return "unranked"
}

// LeaderboardRow is one position of the global leaderboard.
type LeaderboardRow struct {
	UserID   int64
	Username string
	Rank     Rank
	Rating   int64
}
