package deck

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind is the type of card
type Kind string

// kind constants
const (
	KindNumbered Kind = "NUMBERED"
	KindSkip     Kind = "SKIP"
	KindReverse  Kind = "REVERSE"
	KindDraw2    Kind = "DRAW2"
	KindWild     Kind = "WILD"
	KindDraw4    Kind = "DRAW4"
)

// Color represents a card color
// Wild cards do not have a color
type Color string

// color constants
const (
	Blue   Color = "BLUE"
	Green  Color = "GREEN"
	Red    Color = "RED"
	Yellow Color = "YELLOW"
)

// Colors is every color in deck order
var Colors = []Color{Blue, Green, Red, Yellow}

// Card is an individual playing card
// Cards are values: two cards with the same kind, color and digit are the same card
type Card struct {
	Kind  Kind
	Color Color
	Digit int
}

// Numbered returns a numbered card
func Numbered(color Color, digit int) Card {
	return Card{Kind: KindNumbered, Color: color, Digit: digit}
}

// Action returns a colored action card (skip, reverse or draw two)
func Action(kind Kind, color Color) Card {
	return Card{Kind: kind, Color: color}
}

// Wild returns a wild card (wild or draw four)
func Wild(kind Kind) Card {
	return Card{Kind: kind}
}

// IsWild returns true for WILD and DRAW4 cards
func (c Card) IsWild() bool {
	return c.Kind == KindWild || c.Kind == KindDraw4
}

// IsAction returns true for SKIP, REVERSE and DRAW2 cards
func (c Card) IsAction() bool {
	switch c.Kind {
	case KindSkip, KindReverse, KindDraw2:
		return true
	}

	return false
}

// HasColor returns true if the card carries a color
func (c Card) HasColor() bool {
	return !c.IsWild()
}

// Valid returns true if the card could be part of a standard deck
func (c Card) Valid() bool {
	switch c.Kind {
	case KindNumbered:
		return validColor(c.Color) && c.Digit >= 0 && c.Digit <= 9
	case KindSkip, KindReverse, KindDraw2:
		return validColor(c.Color) && c.Digit == 0
	case KindWild, KindDraw4:
		return c.Color == "" && c.Digit == 0
	}

	return false
}

func validColor(color Color) bool {
	for _, c := range Colors {
		if c == color {
			return true
		}
	}

	return false
}

func (c Card) String() string {
	switch c.Kind {
	case KindWild:
		return "wild"
	case KindDraw4:
		return "wd4"
	}

	var color string
	switch c.Color {
	case Blue:
		color = "b"
	case Green:
		color = "g"
	case Red:
		color = "r"
	case Yellow:
		color = "y"
	default:
		color = "?"
	}

	switch c.Kind {
	case KindNumbered:
		return color + strconv.Itoa(c.Digit)
	case KindSkip:
		return color + "skip"
	case KindReverse:
		return color + "rev"
	case KindDraw2:
		return color + "d2"
	}

	return color + "?"
}

type jsonCard struct {
	Type   Kind  `json:"type"`
	Color  Color `json:"color,omitempty"`
	Number *int  `json:"number,omitempty"`
}

// MarshalJSON encodes the card as {"type":"NUMBERED","color":"RED","number":7}
// color is omitted for wilds, number is omitted for everything but numbered cards
func (c Card) MarshalJSON() ([]byte, error) {
	jc := jsonCard{
		Type:  c.Kind,
		Color: c.Color,
	}

	if c.Kind == KindNumbered {
		digit := c.Digit
		jc.Number = &digit
	}

	return json.Marshal(jc)
}

// UnmarshalJSON decodes a card encoded by MarshalJSON
func (c *Card) UnmarshalJSON(b []byte) error {
	var jc jsonCard
	if err := json.Unmarshal(b, &jc); err != nil {
		return err
	}

	card := Card{
		Kind:  jc.Type,
		Color: jc.Color,
	}

	if jc.Number != nil {
		card.Digit = *jc.Number
	}

	if !card.Valid() {
		return fmt.Errorf("invalid card: %s", b)
	}

	*c = card
	return nil
}

var cardRx = regexp.MustCompile(`(?i)^(?:([bgry])([0-9]|skip|rev|d2)|(wild|wd4))\z`)

// CardFromString returns a Card from the string.
// The string must be in the format of <color><value> where color in [bgry] and value in [0-9], skip, rev or d2,
// or one of wild, wd4
func CardFromString(s string) Card {
	match := cardRx.FindStringSubmatch(strings.TrimSpace(s))
	if match == nil {
		panic(fmt.Sprintf("could not parse card: %s", s))
	}

	switch strings.ToLower(match[3]) {
	case "wild":
		return Wild(KindWild)
	case "wd4":
		return Wild(KindDraw4)
	}

	var color Color
	switch strings.ToLower(match[1]) {
	case "b":
		color = Blue
	case "g":
		color = Green
	case "r":
		color = Red
	case "y":
		color = Yellow
	}

	switch value := strings.ToLower(match[2]); value {
	case "skip":
		return Action(KindSkip, color)
	case "rev":
		return Action(KindReverse, color)
	case "d2":
		return Action(KindDraw2, color)
	default:
		digit, _ := strconv.Atoi(value)
		return Numbered(color, digit)
	}
}

// CardsFromString will return a slice of cards from a comma separated list
func CardsFromString(s string) []Card {
	if s == "" {
		return []Card{}
	}

	cardStrings := strings.Split(s, ",")
	cards := make([]Card, len(cardStrings))
	for i, card := range cardStrings {
		cards[i] = CardFromString(card)
	}

	return cards
}

// CardsToString will convert a slice of cards to a string in the format of r7,bskip,wild,...
func CardsToString(cards []Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = card.String()
	}

	return strings.Join(c, ",")
}
