package http

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/jmpark86/fanscore/internal/roster"
)

// SyncHandler is the multiplexed admin endpoint: mode=sync_team resolves and
// upserts one team, mode=sync_matches runs a schedule sync, mode=inspect
// passes raw provider JSON through untouched.
func (s *Server) SyncHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dryRun := isDryRunFromContext(r)

		switch mode := r.URL.Query().Get("mode"); mode {
		case "sync_team":
			id := r.URL.Query().Get("id")
			if id == "" {
				respondError(w, http.StatusBadRequest, "id is required for sync_team", "")
				return
			}
			res, err := s.Syncer.SyncTeam(id, dryRun)
			if err != nil {
				respondError(w, http.StatusInternalServerError, "team sync failed", err.Error())
				return
			}
			respondJSON(w, http.StatusOK, map[string]any{
				"success":       true,
				"team":          res.Team,
				"players_count": res.PlayersCount,
				"year":          res.Year,
			})

		case "sync_matches":
			res, err := s.Syncer.SyncSchedule(dryRun)
			if err != nil {
				respondJSON(w, http.StatusInternalServerError, map[string]any{
					"success": false,
					"count":   0,
					"message": err.Error(),
				})
				return
			}
			respondJSON(w, http.StatusOK, map[string]any{
				"success": true,
				"count":   res.Written,
				"message": res.Message,
			})

		case "inspect":
			inspectID := r.URL.Query().Get("inspectId")
			inspectType := r.URL.Query().Get("inspectType")
			if inspectID == "" || inspectType == "" {
				respondError(w, http.StatusBadRequest, "inspectId and inspectType are required", "")
				return
			}
			raw, err := s.Syncer.Inspect(inspectType, inspectID)
			if err != nil {
				respondError(w, http.StatusInternalServerError, "inspect failed", err.Error())
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			if _, err := w.Write(raw); err != nil {
				log.Error("Failed to write inspect response", "error", err)
			}

		default:
			respondError(w, http.StatusBadRequest, "unknown mode", mode)
		}
	}
}

func (s *Server) ScheduleSyncHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := s.Syncer.SyncSchedule(isDryRunFromContext(r))
		if err != nil {
			respondError(w, http.StatusInternalServerError, "schedule sync failed", err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"matches": res.Written,
			"count":   res.Count,
			"skipped": res.Skipped,
			"run_id":  res.RunID,
		})
	}
}

func (s *Server) LiveSyncHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		updated, err := s.Syncer.SyncLive(isDryRunFromContext(r))
		if err != nil {
			respondError(w, http.StatusInternalServerError, "live sync failed", err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"updated": updated,
		})
	}
}

// SyncStatusHandler reports the per-job status rows plus the persistent
// provider call counters.
func (s *Server) SyncStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		statuses, err := s.Status.GetAll()
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to load sync status", err.Error())
			return
		}
		counters, err := s.Counters.GetAll()
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to load counters", err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"jobs":     statuses,
			"counters": counters,
		})
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if matchID := r.URL.Query().Get("matchId"); matchID != "" {
			s.Store.ClearMatch(matchID)
			log.Info("Cleared match", "matchID", matchID)
			respondJSON(w, http.StatusOK, map[string]any{"success": true, "cleared": matchID})
			return
		}
		s.Store.Clear()
		log.Info("Cleared store")
		respondJSON(w, http.StatusOK, map[string]any{"success": true, "cleared": "all"})
	}
}

// PinPlayerHandler pins a player as the active representative for one
// position on one side of a sub-game. Pins survive later schedule re-syncs.
func (s *Server) PinPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		matchID := q.Get("matchId")
		gameID := q.Get("gameId")
		side := q.Get("side")
		pos := roster.NormalizeRole(q.Get("position"))
		playerID := q.Get("playerId")

		if matchID == "" || gameID == "" || playerID == "" {
			respondError(w, http.StatusBadRequest, "matchId, gameId and playerId are required", "")
			return
		}
		if side != "home" && side != "away" {
			respondError(w, http.StatusBadRequest, "side must be home or away", side)
			return
		}

		if err := s.Store.PinPlayer(matchID, gameID, side, pos, playerID); err != nil {
			respondError(w, http.StatusInternalServerError, "failed to pin player", err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"pin_key": roster.PinKey(side, pos),
			"player":  playerID,
		})
	}
}
