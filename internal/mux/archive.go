package mux

import (
	"net/http"
	"time"

	"uno-server/pkg/uno"
)

type archivedGameResponse struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Winner string        `json:"winner,omitempty"`
	Ended  time.Time     `json:"ended"`
	Game   *uno.Snapshot `json:"game"`
}

func (m *Mux) getArchive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, rows, err := parsePaginationOptions(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		games, err := m.archive.ListGames(r.Context(), start, rows)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		resp := make([]archivedGameResponse, len(games))
		for i, game := range games {
			resp[i] = archivedGameResponse{
				ID:     game.ID,
				Name:   game.Name,
				Winner: game.Winner,
				Ended:  game.Ended,
				Game:   game.Data,
			}
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
