package uno

import (
	"uno-server/pkg/deck"
)

// Snapshot is the full state of a game, suitable for storing
type Snapshot struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	State             State             `json:"state"`
	Players           []*PlayerSnapshot `json:"players"`
	Rounds            []*RoundSnapshot  `json:"rounds"`
	CurrentRoundIndex *int              `json:"currentRoundIndex"`
}

// PlayerSnapshot is the state of a player hand
type PlayerSnapshot struct {
	PlayerName string      `json:"playerName"`
	Cards      []deck.Card `json:"cards"`
	Score      int         `json:"score"`
}

// RoundSnapshot is the state of a round
type RoundSnapshot struct {
	DiscardTop         *deck.Card `json:"discardTop"`
	CurrentPlayerIndex *int       `json:"currentPlayerIndex"`
	IsFinished         bool       `json:"isFinished"`
	CardsLeft          int        `json:"cardsLeft"`
}

// PublicSnapshot is the state of a game that every player may see
// Cards in hands are only counted
type PublicSnapshot struct {
	Name          string           `json:"name"`
	State         State            `json:"state"`
	Players       []*PlayerSummary `json:"players"`
	Round         int              `json:"round"`
	DiscardTop    *deck.Card       `json:"discardTop"`
	CurrentPlayer string           `json:"currentPlayer"`
	CardsLeft     int              `json:"cardsLeft"`
}

// PlayerSummary is what other players see of a player hand
type PlayerSummary struct {
	PlayerName    string `json:"playerName"`
	NumberOfCards int    `json:"numberOfCards"`
	Score         int    `json:"score"`
	CanSayUno     bool   `json:"canSayUno"`
}

// Snapshot returns the state of the player hand
func (p *PlayerHand) Snapshot() *PlayerSnapshot {
	return &PlayerSnapshot{
		PlayerName: p.PlayerName,
		Cards:      p.Cards(),
		Score:      p.score,
	}
}

// Summary returns the public state of the player hand
func (p *PlayerHand) Summary() *PlayerSummary {
	return &PlayerSummary{
		PlayerName:    p.PlayerName,
		NumberOfCards: len(p.cards),
		Score:         p.score,
		CanSayUno:     CanSayUno(p),
	}
}

// Snapshot returns the state of the round
func (r *Round) Snapshot() *RoundSnapshot {
	rs := &RoundSnapshot{
		IsFinished: r.isFinished,
	}

	if top, ok := r.discardPile.TopCard(); ok {
		rs.DiscardTop = &top
	}

	if r.seated {
		idx := r.currentPlayerIndex
		rs.CurrentPlayerIndex = &idx
	}

	if r.Deck != nil {
		rs.CardsLeft = r.Deck.CardsLeft()
	}

	return rs
}

// Snapshot returns the state of the game
func (g *Game) Snapshot() *Snapshot {
	s := &Snapshot{
		ID:      g.ID,
		Name:    g.Name,
		State:   g.state,
		Players: make([]*PlayerSnapshot, len(g.players)),
		Rounds:  make([]*RoundSnapshot, len(g.rounds)),
	}

	for i, player := range g.players {
		s.Players[i] = player.Snapshot()
	}

	for i, round := range g.rounds {
		s.Rounds[i] = round.Snapshot()
	}

	if idx, ok := g.CurrentRoundIndex(); ok {
		s.CurrentRoundIndex = &idx
	}

	return s
}

// PublicSnapshot returns the state of the game without revealing any cards in hand
func (g *Game) PublicSnapshot() *PublicSnapshot {
	s := &PublicSnapshot{
		Name:    g.Name,
		State:   g.state,
		Players: make([]*PlayerSummary, len(g.players)),
		Round:   len(g.rounds),
	}

	for i, player := range g.players {
		s.Players[i] = player.Summary()
	}

	if round := g.CurrentRound(); round != nil {
		rs := round.Snapshot()
		s.DiscardTop = rs.DiscardTop
		s.CardsLeft = rs.CardsLeft
		if current := round.CurrentPlayer(); current != nil {
			s.CurrentPlayer = current.PlayerName
		}
	}

	return s
}
