package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/okian/sdc-standings/internal/domain/model"
)

// ToolLeagueStandings is the MCP tool returning the ranked rows.
const ToolLeagueStandings = "league_standings"

// StandingsArgs are the arguments of the league_standings tool.
type StandingsArgs struct {
	Limit int `json:"limit,omitempty" jsonschema:"Number of top rows to return (0 = all)"`
}

type standingsResult struct {
	GeneratedAt string      `json:"generated_at"`
	Rows        []model.Row `json:"rows"`
}

// NewMCPHandler returns a streamable HTTP MCP endpoint exposing the
// league_standings tool.
func NewMCPHandler(provider StandingsProvider, version string) http.Handler {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "sdc-standings",
			Version: version,
		},
		nil,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolLeagueStandings,
		Description: "Current SDC league standings, ranked by points, wins, games played and fewest losses",
	}, standingsTool(provider))

	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})
}

func standingsTool(provider StandingsProvider) func(context.Context, *mcp.CallToolRequest, StandingsArgs) (*mcp.CallToolResult, any, error) {
	return func(_ context.Context, _ *mcp.CallToolRequest, args StandingsArgs) (*mcp.CallToolResult, any, error) {
		if args.Limit < 0 {
			return toolError(fmt.Errorf("%w: limit must not be negative", ErrBadRequest)), nil, nil
		}
		payload, ok := provider.Latest()
		if !ok {
			return toolError(ErrNotReady), nil, nil
		}
		rows := payload.Rows
		if args.Limit > 0 && args.Limit < len(rows) {
			rows = rows[:args.Limit]
		}
		b, err := json.Marshal(standingsResult{
			GeneratedAt: payload.GeneratedAt.Format(time.RFC3339),
			Rows:        rows,
		})
		if err != nil {
			return toolError(err), nil, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: string(b)},
			},
		}, nil, nil
	}
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
