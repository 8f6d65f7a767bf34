package lichess

import (
	"context"
	"net/url"
)

// Decline reasons understood by lichess.
const (
	DeclineGeneric     = "generic"
	DeclineVariant     = "variant"
	DeclineTimeControl = "timeControl"
	DeclineRated       = "rated"
	DeclineCasual      = "casual"
	DeclineNoBot       = "noBot"
)

func (lc *Client) AcceptChallenge(ctx context.Context, id string) error {
	return lc.doEmptyRequest(ctx, "POST", "/api/challenge/"+id+"/accept", nil)
}

func (lc *Client) DeclineChallenge(ctx context.Context, id, reason string) error {
	var params url.Values
	if reason != "" {
		params = url.Values{"reason": {reason}}
	}

	return lc.doEmptyRequest(ctx, "POST", "/api/challenge/"+id+"/decline", params)
}
