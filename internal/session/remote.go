package session

import (
	"context"

	"github.com/GENOxGAME/GENO/internal/backend"
)

// RemoteClient adapts *backend.Client to the Remote interface (the
// concrete Subscribe returns the concrete subscription type).
type RemoteClient struct {
	*backend.Client
}

func (r RemoteClient) Subscribe(ctx context.Context, id string) (Pusher, error) {
	return r.Client.Subscribe(ctx, id)
}
