package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/rsoares/friendsleague/internal/clashroyale"
	"github.com/rsoares/friendsleague/internal/models"
)

var playerCmd = &cobra.Command{
	Use:   "player <tag>",
	Short: "Show one player's standing and recent matches",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlayer,
}

func runPlayer(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	tag := clashroyale.NormalizeTag(args[0])
	stat, err := a.players.GetStat(cmd.Context(), tag)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("no stats for player #%s (is the tag on the roster?)", tag)
	}
	if err != nil {
		return err
	}

	matches, err := a.matches.ListForPlayer(cmd.Context(), tag, models.MatchFilter{Limit: 10})
	if err != nil {
		return err
	}

	if outputFormat == "json" {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{"stat": stat, "matches": matches})
	}

	fmt.Printf("%s\n", playerLabel(*stat))
	fmt.Printf("rating %.0f | %d-%d (%.1f%%) | streak %s (best W%d) | crowns %+d | form %s\n\n",
		stat.Rating, stat.Wins, stat.Losses, stat.WinRate,
		formatStreak(stat.CurrentStreak), stat.LongestStreak,
		stat.CrownDifferential, strings.Join(stat.RecentForm, ""))

	if len(matches) == 0 {
		return nil
	}

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	table.Header("When", "Result", "Opponent", "Score", "Rating Δ")
	for _, m := range matches {
		table.Append(matchRow(tag, m)...)
	}
	table.Render()
	return nil
}

func matchRow(tag string, m models.Match) []any {
	opponent := m.PlayerA
	if opponent == tag {
		opponent = m.PlayerB
	}

	result, delta := "L", m.RatingDeltaLoser
	if m.Winner == tag {
		result, delta = "W", m.RatingDeltaWinner
	}

	score := fmt.Sprintf("%d-?", m.Crowns)
	if m.LoserCrowns != nil {
		score = fmt.Sprintf("%d-%d", m.Crowns, *m.LoserCrowns)
	}

	deltaStr := "-"
	if delta != nil {
		deltaStr = fmt.Sprintf("%+.1f", *delta)
	}

	return []any{
		m.Timestamp.Local().Format("2006-01-02 15:04"),
		result,
		"#" + opponent,
		score,
		deltaStr,
	}
}
