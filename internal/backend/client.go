// Package backend is the HTTP and websocket client for the remote authority.
// The backend is an opaque collaborator: every failure here is recoverable,
// logged by the caller, and retried on the next interval.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/GENOxGAME/GENO/internal/leaderboard"
	"github.com/GENOxGAME/GENO/internal/player"
)

var (
	// ErrNotFound means the remote has no record for this identity yet.
	// Treated as "new player", never fatal.
	ErrNotFound = errors.New("player not found")
)

// StatusError is a non-2xx response that reached the backend.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned status %d", e.Code)
}

type Client struct {
	baseURL string
	origin  string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		// Identifies this connection to the push hub so the server never
		// echoes this client's own uploads back to it.
		origin: uuid.NewString(),
		http:   &http.Client{Timeout: 10 * time.Second},
	}
}

type playerEnvelope struct {
	Success bool             `json:"success"`
	Player  *json.RawMessage `json:"player"`
}

// FetchPlayer downloads the full authoritative snapshot for an identity.
func (c *Client) FetchPlayer(ctx context.Context, id string) (*player.State, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/player-data/"+id, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch player: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &StatusError{Code: res.StatusCode}
	}

	var env playerEnvelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode player: %w", err)
	}
	if !env.Success || env.Player == nil {
		return nil, ErrNotFound
	}

	var st player.State
	if err := json.Unmarshal(*env.Player, &st); err != nil {
		return nil, fmt.Errorf("decode player: %w", err)
	}
	// Remote data is defensively defaulted per field, never trusted.
	st.Normalize(time.Now())
	return &st, nil
}

// ChangeBatch is the diff upload body: only the current values of fields
// dirtied since the last acknowledged upload. Origin names the uploading
// connection so the push hub can exclude it from the resulting broadcast.
type ChangeBatch struct {
	ID        string         `json:"id"`
	Timestamp int64          `json:"timestamp"`
	Origin    string         `json:"origin,omitempty"`
	Changes   map[string]any `json:"changes"`
}

// PushChanges uploads a dirty-field batch. A 2xx means durable acceptance;
// anything else leaves the fields dirty for the next cycle.
func (c *Client) PushChanges(ctx context.Context, batch ChangeBatch) error {
	batch.Origin = c.origin
	return c.postJSON(ctx, "/api/update-player/"+batch.ID, batch)
}

// PushSnapshot uploads the full state, used when the remote has no record
// for this identity yet.
func (c *Client) PushSnapshot(ctx context.Context, st *player.State) error {
	return c.postJSON(ctx, "/api/update-player/"+st.ID, st)
}

// Ping is the keep-alive the hosted backend needs to stay awake.
func (c *Client) Ping(ctx context.Context, id string) error {
	return c.postJSON(ctx, "/api/ping", map[string]any{
		"userId":    id,
		"timestamp": time.Now().UnixMilli(),
		"action":    "keep_alive",
	})
}

// SubmitScore publishes the player's leaderboard entry.
func (c *Client) SubmitScore(ctx context.Context, e leaderboard.Entry) error {
	return c.postJSON(ctx, "/api/leaderboard/submit", e)
}

// FetchLeaderboard downloads the top entries.
func (c *Client) FetchLeaderboard(ctx context.Context, limit int) ([]leaderboard.Entry, error) {
	url := fmt.Sprintf("%s/api/leaderboard?limit=%d", c.baseURL, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch leaderboard: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &StatusError{Code: res.StatusCode}
	}

	var entries []leaderboard.Entry
	if err := json.NewDecoder(res.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode leaderboard: %w", err)
	}
	return entries, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, res.Body)
		res.Body.Close()
	}()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &StatusError{Code: res.StatusCode}
	}
	return nil
}
