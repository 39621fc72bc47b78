package mux

import (
	"errors"
	"net/http"

	gmux "github.com/gorilla/mux"
	"uno-server/internal/util"
	"uno-server/pkg/deck"
	"uno-server/pkg/uno"
)

func (m *Mux) getGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var games []*uno.PublicSnapshot
		var err error

		switch state := uno.State(r.FormValue("state")); state {
		case "":
			games, err = m.pitBoss.Games(r.Context())
		case uno.StatePending:
			games, err = m.pitBoss.PendingGames(r.Context())
		default:
			writeJSONError(w, http.StatusBadRequest, errors.New("state must be PENDING"))
			return
		}

		if err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, games)
	}
}

type postGamePayload struct {
	Name string `json:"name"`
}

func (m *Mux) postGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postGamePayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		if pp.Name == "" {
			pp.Name = util.GetRandomName()
		}

		snapshot, err := m.pitBoss.CreateGame(r.Context(), pp.Name)
		if err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, snapshot)
	}
}

func (m *Mux) getGameName() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := dealerFromContext(r).PublicSnapshot(r.Context())
		if err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, snapshot)
	}
}

func (m *Mux) postGameNameStart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := dealerFromContext(r).StartGame(r.Context()); err != nil {
			writeGameError(w, err)
			return
		}

		snapshot, err := dealerFromContext(r).PublicSnapshot(r.Context())
		if err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, snapshot)
	}
}

type postGameNameAdvanceResponse struct {
	Winner *uno.PlayerSnapshot `json:"winner"`
}

func (m *Mux) postGameNameAdvance() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		winner, err := dealerFromContext(r).AdvanceRoundIfFinished(r.Context())
		if err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, postGameNameAdvanceResponse{Winner: winner})
	}
}

type postGameNamePlayerPayload struct {
	PlayerName string `json:"playerName"`
}

func (m *Mux) postGameNamePlayer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postGameNamePlayerPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		hand, err := dealerFromContext(r).JoinGame(r.Context(), pp.PlayerName)
		if err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, hand)
	}
}

func (m *Mux) getGameNamePlayer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hand, err := dealerFromContext(r).PlayerHand(r.Context(), gmux.Vars(r)["playerName"])
		if err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, hand)
	}
}

type postGameNamePlayerDrawPayload struct {
	Count int `json:"count"`
}

type postGameNamePlayerDrawResponse struct {
	Cards []deck.Card `json:"cards"`
}

func (m *Mux) postGameNamePlayerDraw() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postGameNamePlayerDrawPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		if pp.Count < 1 || pp.Count > deck.Size {
			writeJSONError(w, http.StatusBadRequest, errors.New("count must be between 1 and 108"))
			return
		}

		cards, err := dealerFromContext(r).DrawCards(r.Context(), gmux.Vars(r)["playerName"], pp.Count)
		if err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, postGameNamePlayerDrawResponse{Cards: cards})
	}
}

// postGameNamePlayerPlayPayload names the card either by its index in the hand or by value
type postGameNamePlayerPlayPayload struct {
	CardIndex *int       `json:"cardIndex"`
	Card      *deck.Card `json:"card"`
}

type postGameNamePlayerPlayResponse struct {
	Accepted bool `json:"accepted"`
}

func (m *Mux) postGameNamePlayerPlay() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postGameNamePlayerPlayPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		if (pp.CardIndex == nil) == (pp.Card == nil) {
			writeJSONError(w, http.StatusBadRequest, errors.New("exactly one of cardIndex or card is required"))
			return
		}

		dealer := dealerFromContext(r)
		playerName := gmux.Vars(r)["playerName"]

		var accepted bool
		var err error
		if pp.Card != nil {
			accepted, err = dealer.PlayMatchingCard(r.Context(), playerName, *pp.Card)
		} else {
			accepted, err = dealer.PlayCard(r.Context(), playerName, *pp.CardIndex)
		}

		if err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, postGameNamePlayerPlayResponse{Accepted: accepted})
	}
}

func (m *Mux) postGameNamePlayerPass() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := dealerFromContext(r).PassTurn(r.Context(), gmux.Vars(r)["playerName"]); err != nil {
			writeGameError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
