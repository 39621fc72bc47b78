package mux

import (
	"context"
	"net/http"

	gmux "github.com/gorilla/mux"
	"uno-server/pkg/archive"
	"uno-server/pkg/room"
)

type ctxKey int

const (
	ctxDealerKey ctxKey = iota
)

// ArchiveLister lists finished games
type ArchiveLister interface {
	ListGames(ctx context.Context, start int64, rows int) ([]*archive.Game, error)
}

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	pitBoss *room.PitBoss
	archive ArchiveLister
}

// NewMux returns a new HTTP mux
// archive may be nil, in which case the archive isn't served
func NewMux(version string, pitBoss *room.PitBoss, archive ArchiveLister) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		pitBoss: pitBoss,
		archive: archive,
	}

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	r.Methods(http.MethodGet).Path("/game").Handler(this.getGame())
	r.Methods(http.MethodPost).Path("/game").Handler(this.postGame())

	if archive != nil {
		r.Methods(http.MethodGet).Path("/archive").Handler(this.getArchive())
	}

	gr := r.PathPrefix("/game/{name}").Subrouter()
	gr.Use(this.gameMiddleware)

	gr.Methods(http.MethodGet).Path("").Handler(this.getGameName())
	gr.Methods(http.MethodGet).Path("/ws").Handler(this.getGameNameWS())
	gr.Methods(http.MethodPost).Path("/start").Handler(this.postGameNameStart())
	gr.Methods(http.MethodPost).Path("/advance").Handler(this.postGameNameAdvance())
	gr.Methods(http.MethodPost).Path("/player").Handler(this.postGameNamePlayer())
	gr.Methods(http.MethodGet).Path("/player/{playerName}").Handler(this.getGameNamePlayer())
	gr.Methods(http.MethodPost).Path("/player/{playerName}/draw").Handler(this.postGameNamePlayerDraw())
	gr.Methods(http.MethodPost).Path("/player/{playerName}/play").Handler(this.postGameNamePlayerPlay())
	gr.Methods(http.MethodPost).Path("/player/{playerName}/pass").Handler(this.postGameNamePlayerPass())

	return this
}

func (m *Mux) gameMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dealer, err := m.pitBoss.Dealer(gmux.Vars(r)["name"])
		if err != nil {
			writeGameError(w, err)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxDealerKey, dealer)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

func dealerFromContext(r *http.Request) *room.Dealer {
	return r.Context().Value(ctxDealerKey).(*room.Dealer)
}
