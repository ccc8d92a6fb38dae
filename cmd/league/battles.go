package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

var battlesLimit int

var battlesCmd = &cobra.Command{
	Use:   "battles",
	Short: "Show the most recent tracked battles",
	RunE:  runBattles,
}

func init() {
	battlesCmd.Flags().IntVar(&battlesLimit, "limit", 20, "maximum battles to show")
}

func runBattles(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	matches, err := a.matches.ListRecent(cmd.Context(), battlesLimit)
	if err != nil {
		return err
	}

	if outputFormat == "json" {
		return json.NewEncoder(os.Stdout).Encode(matches)
	}
	if len(matches) == 0 {
		fmt.Println("(no battles recorded yet)")
		return nil
	}

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	table.Header("When", "Winner", "Loser", "Score", "Type")
	for _, m := range matches {
		score := fmt.Sprintf("%d-?", m.Crowns)
		if m.LoserCrowns != nil {
			score = fmt.Sprintf("%d-%d", m.Crowns, *m.LoserCrowns)
		}
		table.Append(
			m.Timestamp.Local().Format("2006-01-02 15:04"),
			"#"+m.Winner,
			"#"+m.Loser,
			score,
			m.BattleType,
		)
	}
	table.Render()
	return nil
}
