package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rsoares/friendsleague/internal/services"
)

var addPlayerCmd = &cobra.Command{
	Use:   "add-player <tag>",
	Short: "Verify a player tag against the API and add it to the roster",
	Long: `Verify a player tag against the Clash Royale API and store the player.
The tag must also appear in PLAYER_TAGS for the collector to fetch their
battle log.`,
	Args: cobra.ExactArgs(1),
	RunE: runAddPlayer,
}

func runAddPlayer(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	svc := services.NewPlayerService(a.players, a.matches, a.settings, a.client)
	player, err := svc.AddPlayer(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("added %s (#%s), %d trophies\n", player.Name, player.Tag, player.Trophies)
	return nil
}
