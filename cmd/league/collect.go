package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Fetch the roster's battle logs and update the standings",
	RunE:  runCollect,
}

func runCollect(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	result, err := a.collector().Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("collection run failed: %w", err)
	}

	if outputFormat == "json" {
		return json.NewEncoder(os.Stdout).Encode(result)
	}
	fmt.Printf("players: %d  battles fetched: %d  new matches: %d  elapsed: %s\n",
		result.Players, result.Fetched, result.New, result.Elapsed)
	return nil
}
