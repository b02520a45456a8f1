package cli

import (
	"context"
	"fmt"
)

// Top prints the global leaderboard.
func (a *App) Top(ctx context.Context) error {
	rows, err := a.client.Leaderboard(ctx)
	if err != nil {
		printlnFn("Failed to load leaderboard:", err.Error())
		return err
	}
	if len(rows) == 0 {
		printlnFn("Leaderboard is empty")
		return nil
	}

	for i, r := range rows {
		printlnFn(fmt.Sprintf("%3d. %-20s %-7s %6d", i+1, r.Username, r.Rank, r.Rating))
	}
	return nil
}
