// Package poker provides the card model and hand evaluator used by the
// analysis pipeline. Cards and hands are bit-packed into uint64 values so
// that set operations (dedup checks, deck subtraction, suit masks) are
// single instructions.
package poker

import (
	"fmt"
	"math/bits"
	"strings"
)

// Card represents a single card as one set bit in a uint64.
// Bit position = suit*13 + rank.
type Card uint64

// Hand is a set of cards: a uint64 with one bit per card present.
// It holds anything from a two-card holding to a seven-card showdown hand.
type Hand uint64

// Suit constants
const (
	Clubs    uint8 = 0
	Diamonds uint8 = 1
	Hearts   uint8 = 2
	Spades   uint8 = 3
)

// Rank constants (0-12 for 2 through A)
const (
	Two   uint8 = 0
	Three uint8 = 1
	Four  uint8 = 2
	Five  uint8 = 3
	Six   uint8 = 4
	Seven uint8 = 5
	Eight uint8 = 6
	Nine  uint8 = 7
	Ten   uint8 = 8
	Jack  uint8 = 9
	Queen uint8 = 10
	King  uint8 = 11
	Ace   uint8 = 12
)

const rankChars = "23456789TJQKA"
const suitChars = "cdhs"

// NewCard creates a card from rank (0-12) and suit (0-3).
func NewCard(rank, suit uint8) Card {
	return Card(1) << (suit*13 + rank)
}

func (c Card) bitPosition() uint8 {
	if c == 0 {
		return 255
	}
	return uint8(bits.TrailingZeros64(uint64(c)))
}

// Rank returns the rank of the card (0-12), or 255 for the zero Card.
func (c Card) Rank() uint8 {
	pos := c.bitPosition()
	if pos == 255 {
		return 255
	}
	return pos % 13
}

// Suit returns the suit of the card (0-3), or 255 for the zero Card.
func (c Card) Suit() uint8 {
	pos := c.bitPosition()
	if pos == 255 {
		return 255
	}
	return pos / 13
}

// String returns the two-character representation (e.g. "As", "Th").
func (c Card) String() string {
	rank := c.Rank()
	suit := c.Suit()
	if rank > 12 || suit > 3 {
		return "??"
	}
	return string(rankChars[rank]) + string(suitChars[suit])
}

// ParseCard parses a card token into a Card. Both the compact ASCII form
// ("As", "th") and the log export form with suit glyphs and a two-digit
// ten ("A♥", "10♦") are accepted.
func ParseCard(s string) (Card, error) {
	runes := []rune(s)
	if len(runes) < 2 {
		return 0, fmt.Errorf("invalid card token %q", s)
	}

	var rankPart string
	var suitRune rune
	if len(runes) >= 3 && runes[0] == '1' && runes[1] == '0' {
		rankPart = "T"
		suitRune = runes[2]
	} else if len(runes) == 2 {
		rankPart = string(runes[0])
		suitRune = runes[1]
	} else {
		return 0, fmt.Errorf("invalid card token %q", s)
	}

	rank, err := parseRank(rankPart[0])
	if err != nil {
		return 0, fmt.Errorf("card %q: %w", s, err)
	}
	suit, err := parseSuit(suitRune)
	if err != nil {
		return 0, fmt.Errorf("card %q: %w", s, err)
	}
	return NewCard(rank, suit), nil
}

// ParseCards parses a compact string of card tokens ("AsKd", "Td 7s 8h")
// into a slice of cards.
func ParseCards(s string) ([]Card, error) {
	s = strings.ReplaceAll(s, " ", "")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("invalid card string length %d (must be even)", len(s))
	}

	var cards []Card
	for i := 0; i < len(s); i += 2 {
		card, err := ParseCard(s[i : i+2])
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests).
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards %q: %v", s, err))
	}
	return cards
}

func parseRank(c byte) (uint8, error) {
	switch c {
	case '2':
		return Two, nil
	case '3':
		return Three, nil
	case '4':
		return Four, nil
	case '5':
		return Five, nil
	case '6':
		return Six, nil
	case '7':
		return Seven, nil
	case '8':
		return Eight, nil
	case '9':
		return Nine, nil
	case 'T', 't':
		return Ten, nil
	case 'J', 'j':
		return Jack, nil
	case 'Q', 'q':
		return Queen, nil
	case 'K', 'k':
		return King, nil
	case 'A', 'a':
		return Ace, nil
	default:
		return 0, fmt.Errorf("unknown rank %q", string(c))
	}
}

func parseSuit(r rune) (uint8, error) {
	switch r {
	case 'c', 'C', '♣':
		return Clubs, nil
	case 'd', 'D', '♦':
		return Diamonds, nil
	case 'h', 'H', '♥':
		return Hearts, nil
	case 's', 'S', '♠':
		return Spades, nil
	default:
		return 0, fmt.Errorf("unknown suit %q", string(r))
	}
}

// NewHand creates a hand from the given cards.
func NewHand(cards ...Card) Hand {
	var h Hand
	for _, c := range cards {
		h |= Hand(c)
	}
	return h
}

// AddCard adds a card to the hand.
func (h *Hand) AddCard(c Card) {
	*h |= Hand(c)
}

// HasCard reports whether the hand contains the card.
func (h Hand) HasCard(c Card) bool {
	return h&Hand(c) != 0
}

// CountCards returns the number of cards in the hand.
func (h Hand) CountCards() int {
	return bits.OnesCount64(uint64(h))
}

// GetSuitMask returns the 13-bit rank mask for one suit.
func (h Hand) GetSuitMask(suit uint8) uint16 {
	return uint16((h >> (suit * 13)) & 0x1FFF)
}

// Cards expands the hand back into individual cards, lowest bit first.
func (h Hand) Cards() []Card {
	cards := make([]Card, 0, h.CountCards())
	for v := uint64(h); v != 0; v &= v - 1 {
		cards = append(cards, Card(v&-v))
	}
	return cards
}

// String returns the cards in the hand separated by spaces.
func (h Hand) String() string {
	parts := make([]string, 0, h.CountCards())
	for _, c := range h.Cards() {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, " ")
}
