package serverapp

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/GENOxGAME/GENO/internal/leaderboard"
	"github.com/GENOxGAME/GENO/internal/player"
	"github.com/GENOxGAME/GENO/internal/telemetry"
)

func (s *server) handlePlayerData(w http.ResponseWriter, r *http.Request) {
	id := cleanID(r.PathValue("id"))
	if id == "" {
		writeErr(w, http.StatusBadRequest, "missing player id")
		return
	}

	st, ok, err := s.players.Get(r.Context(), id)
	if err != nil {
		s.logger.Printf("player-data %s: %v", id, err)
		writeErr(w, http.StatusInternalServerError, "storage error")
		return
	}
	if !ok {
		writeErr(w, http.StatusNotFound, "player not found")
		return
	}

	_ = s.events.RecordEvent(telemetry.EventPlayerFetched, telemetry.EventMetadata{"playerId": id})
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "player": st})
}

// updateBody covers both accepted shapes of an update POST. A body carrying
// a "changes" object is a dirty-field batch; anything else is taken as a
// full snapshot.
type updateBody struct {
	ID        string                     `json:"id"`
	Timestamp int64                      `json:"timestamp"`
	Origin    string                     `json:"origin"`
	Changes   map[string]json.RawMessage `json:"changes"`
}

func (s *server) handleUpdatePlayer(w http.ResponseWriter, r *http.Request) {
	id := cleanID(r.PathValue("id"))
	if id == "" {
		writeErr(w, http.StatusBadRequest, "missing player id")
		return
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "body too large or unreadable")
		return
	}

	var body updateBody
	if err := json.Unmarshal(raw, &body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}

	var st *player.State
	if body.Changes != nil {
		st, err = s.players.ApplyChanges(r.Context(), id, body.Changes)
		if err != nil && st != nil {
			// Undecodable fields are skipped per field; the rest of the
			// batch is durably stored, so retrying the same batch cannot
			// improve on this. Accept it.
			s.logger.Printf("update-player %s: skipped fields: %v", id, err)
			err = nil
		}
	} else {
		var snap player.State
		if err := json.Unmarshal(raw, &snap); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid snapshot")
			return
		}
		snap.ID = id
		snap.Normalize(time.Now())
		st = &snap
		err = s.players.Put(r.Context(), st)
	}
	if err != nil {
		s.logger.Printf("update-player %s: %v", id, err)
		writeErr(w, http.StatusInternalServerError, "storage error")
		return
	}

	_ = s.events.RecordEvent(telemetry.EventPlayerUpdated, telemetry.EventMetadata{
		"playerId": id,
		"fields":   len(body.Changes),
	})

	// Other devices of the same identity learn about the write immediately.
	// The uploading connection itself is excluded: it already holds these
	// values, and an echo could land after it has moved past them.
	if body.Changes != nil {
		s.hub.Broadcast(id, rawToAny(body.Changes), body.Origin)
	}

	if _, ok := body.Changes[player.FieldReferredBy]; ok || (body.Changes == nil && st.ReferredBy != "") {
		s.creditReferrer(r, st)
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// creditReferrer records the new player on the referrer's side and pushes
// the updated referral list to the referrer's live sessions. The referral
// bonus itself is claimed client-side, once, by the referred player.
func (s *server) creditReferrer(r *http.Request, st *player.State) {
	if st.ReferredBy == "" || st.ReferredBy == st.ID {
		return
	}

	ref, ok, err := s.players.Get(r.Context(), st.ReferredBy)
	if err != nil || !ok {
		return
	}
	for _, existing := range ref.Referrals {
		if existing == st.ID {
			return
		}
	}

	ref.Referrals = append(ref.Referrals, st.ID)
	if err := s.players.Put(r.Context(), ref); err != nil {
		s.logger.Printf("credit referrer %s: %v", ref.ID, err)
		return
	}

	_ = s.events.RecordEvent(telemetry.EventReferralApplied, telemetry.EventMetadata{
		"playerId":   st.ID,
		"referrerId": ref.ID,
	})
	s.hub.Broadcast(ref.ID, map[string]any{player.FieldReferrals: ref.Referrals}, "")
}

type pingBody struct {
	UserID    string `json:"userId"`
	Timestamp int64  `json:"timestamp"`
	Action    string `json:"action"`
}

func (s *server) handlePing(w http.ResponseWriter, r *http.Request) {
	var body pingBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"timestamp": time.Now().UnixMilli(),
	})
}

func (s *server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := s.limit
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 && n < limit {
			limit = n
		}
	}

	entries, err := s.board.Top(r.Context(), limit)
	if err != nil {
		s.logger.Printf("leaderboard: %v", err)
		writeErr(w, http.StatusInternalServerError, "storage error")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *server) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	var e leaderboard.Entry
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if cleanID(e.PlayerID) == "" {
		writeErr(w, http.StatusBadRequest, "missing player id")
		return
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = time.Now()
	}

	if err := s.board.Submit(r.Context(), e); err != nil {
		s.logger.Printf("submit score %s: %v", e.PlayerID, err)
		writeErr(w, http.StatusInternalServerError, "storage error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// handleStats folds the recorded event stream into an activity summary.
// Defaults to the last 24 hours; ?hours=N widens or narrows the window.
func (s *server) handleStats(w http.ResponseWriter, r *http.Request) {
	window := 24 * time.Hour
	if q := r.URL.Query().Get("hours"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 {
			window = time.Duration(n) * time.Hour
		}
	}
	since := time.Now().Add(-window)

	events, err := s.events.GetEvents(since, nil)
	if err != nil {
		s.logger.Printf("stats: %v", err)
		writeErr(w, http.StatusInternalServerError, "storage error")
		return
	}
	stats, err := telemetry.CalculateStats(events, since)
	if err != nil {
		s.logger.Printf("stats: %v", err)
		writeErr(w, http.StatusInternalServerError, "storage error")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	id := cleanID(r.PathValue("id"))
	if id == "" {
		writeErr(w, http.StatusBadRequest, "missing player id")
		return
	}
	s.hub.Serve(w, r, id)
}

func rawToAny(in map[string]json.RawMessage) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
