package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var seasonCmd = &cobra.Command{
	Use:   "season",
	Short: "Show the current season window",
	RunE:  runSeasonShow,
}

var seasonSetCmd = &cobra.Command{
	Use:   "set <start>",
	Short: "Set the season start date (RFC3339 or YYYY-MM-DD)",
	Args:  cobra.ExactArgs(1),
	RunE:  runSeasonSet,
}

func init() {
	seasonCmd.AddCommand(seasonSetCmd)
}

func runSeasonShow(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	start, err := a.settings.SeasonStart(cmd.Context())
	if err != nil {
		return err
	}
	if start == nil {
		fmt.Println("no season start set; standings use a rolling 1-day window")
		return nil
	}
	fmt.Printf("season started %s\n", start.UTC().Format(time.RFC3339))
	return nil
}

func runSeasonSet(cmd *cobra.Command, args []string) error {
	start, err := parseSeasonStart(args[0])
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.settings.SetSeasonStart(cmd.Context(), start); err != nil {
		return err
	}
	fmt.Printf("season start set to %s\n", start.UTC().Format(time.RFC3339))
	fmt.Println("standings will reflect the new window on the next collection run")
	return nil
}

func parseSeasonStart(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as RFC3339 or YYYY-MM-DD", s)
}
