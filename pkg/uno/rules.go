package uno

import (
	"uno-server/pkg/deck"
)

// WinningScore is the cumulative score that wins the game
const WinningScore = 500

// CanBePutOnTop returns true if candidate may be played on top of top
// A nil top means the discard pile is empty, and anything can be played.
// The color chosen after a wild is not tracked, so anything can be played on a wild.
func CanBePutOnTop(top *deck.Card, candidate deck.Card) bool {
	if top == nil {
		return true
	}

	if candidate.IsWild() {
		return true
	}

	if top.IsWild() {
		return true
	}

	if top.HasColor() && candidate.HasColor() && top.Color == candidate.Color {
		return true
	}

	switch top.Kind {
	case deck.KindNumbered:
		return candidate.Kind == deck.KindNumbered && candidate.Digit == top.Digit
	case deck.KindSkip, deck.KindReverse:
		return candidate.Kind == top.Kind
	}

	// a draw two only matches on color
	return false
}

// CardPoints returns what the card is worth when it's left in a hand at the end of a round
func CardPoints(card deck.Card) int {
	switch card.Kind {
	case deck.KindNumbered:
		return card.Digit
	case deck.KindSkip, deck.KindReverse, deck.KindDraw2:
		return 20
	case deck.KindWild, deck.KindDraw4:
		return 50
	}

	return 0
}

// CalculateScore sums the points of every card in every hand
func CalculateScore(hands []*PlayerHand) int {
	total := 0
	for _, hand := range hands {
		for _, card := range hand.cards {
			total += CardPoints(card)
		}
	}

	return total
}

// CheckIfAnyoneHasScore500 returns the first player, in round order, that reached WinningScore
// Returns nil if nobody has
func CheckIfAnyoneHasScore500(round *Round) *PlayerHand {
	for _, hand := range round.players {
		if hand.score >= WinningScore {
			return hand
		}
	}

	return nil
}

// CanSayUno returns true if the player has exactly one card left
func CanSayUno(hand *PlayerHand) bool {
	return len(hand.cards) == 1
}
