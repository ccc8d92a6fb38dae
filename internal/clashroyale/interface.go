package clashroyale

import "context"

// ClientInterface defines the Clash Royale API operations the collector
// depends on. This interface enables testability by allowing mock
// implementations.
type ClientInterface interface {
	FetchBattleLog(ctx context.Context, tag string) ([]BattleLogEntry, error)
	FetchPlayer(ctx context.Context, tag string) (*PlayerProfile, error)
}

// Ensure Client implements the interface
var _ ClientInterface = (*Client)(nil)
