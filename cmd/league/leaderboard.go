package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/rsoares/friendsleague/internal/models"
)

var leaderboardLimit int

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the current standings",
	RunE:  runLeaderboard,
}

func init() {
	leaderboardCmd.Flags().IntVar(&leaderboardLimit, "limit", 0, "maximum players to show (0 = all)")
}

func runLeaderboard(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	stats, err := a.players.Leaderboard(cmd.Context(), leaderboardLimit)
	if err != nil {
		return err
	}

	if outputFormat == "json" {
		return json.NewEncoder(os.Stdout).Encode(stats)
	}
	if len(stats) == 0 {
		fmt.Println("(no standings yet, run `league collect` first)")
		return nil
	}

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	table.Header("#", "Player", "Rating", "W", "L", "Win%", "Streak", "Crowns +/-", "Form")

	for i, s := range stats {
		table.Append(
			fmt.Sprintf("%d", i+1),
			playerLabel(s),
			fmt.Sprintf("%.0f", s.Rating),
			fmt.Sprintf("%d", s.Wins),
			fmt.Sprintf("%d", s.Losses),
			fmt.Sprintf("%.1f%%", s.WinRate),
			formatStreak(s.CurrentStreak),
			fmt.Sprintf("%+d", s.CrownDifferential),
			strings.Join(s.RecentForm, ""),
		)
	}
	table.Render()
	return nil
}

func playerLabel(s models.PlayerStat) string {
	if s.Name != "" {
		return fmt.Sprintf("%s (#%s)", s.Name, s.Tag)
	}
	return "#" + s.Tag
}

func formatStreak(n int) string {
	switch {
	case n > 0:
		return fmt.Sprintf("W%d", n)
	case n < 0:
		return fmt.Sprintf("L%d", -n)
	default:
		return "-"
	}
}
