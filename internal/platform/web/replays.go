package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/hopper/internal/replay"
	"github.com/vovakirdan/hopper/internal/storage"
)

type replayInfo struct {
	ID        string    `json:"id"`
	Seed      int64     `json:"seed"`
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
	Ticks     int       `json:"ticks"`
	CreatedAt time.Time `json:"createdAt"`
}

type replayResponse struct {
	replayInfo
	Config string         `json:"config"`
	Events []replay.Event `json:"events"`
}

func (s *Server) handleListReplays(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, "replays are disabled")
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	infos, err := s.store.ListJournals(limit)
	if err != nil {
		s.logger.Error("listing replays", "error", err)
		writeError(w, http.StatusInternalServerError, "cannot list replays")
		return
	}

	out := make([]replayInfo, len(infos))
	for i, info := range infos {
		out[i] = replayInfo{
			ID:        info.ID,
			Seed:      info.Seed,
			Width:     info.Width,
			Height:    info.Height,
			Ticks:     info.Ticks,
			CreatedAt: info.CreatedAt,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetReplay(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, "replays are disabled")
		return
	}

	j, err := s.store.LoadJournal(chi.URLParam(r, "id"))
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "replay not found")
		return
	}
	if err != nil {
		s.logger.Error("loading replay", "error", err)
		writeError(w, http.StatusInternalServerError, "cannot load replay")
		return
	}

	writeJSON(w, http.StatusOK, replayResponse{
		replayInfo: replayInfo{
			ID:        j.ID,
			Seed:      j.Seed,
			Width:     j.Width,
			Height:    j.Height,
			Ticks:     j.Ticks(),
			CreatedAt: j.CreatedAt,
		},
		Config: j.Config,
		Events: j.Events,
	})
}
