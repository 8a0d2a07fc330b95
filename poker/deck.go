package poker

// FullDeck returns all 52 cards in a fixed order: clubs through spades,
// deuce through ace within each suit. The order is part of the contract;
// equity enumeration indexes into it and must be reproducible.
func FullDeck() []Card {
	cards := make([]Card, 0, 52)
	for suit := uint8(0); suit < 4; suit++ {
		for rank := uint8(0); rank < 13; rank++ {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}

// Remaining returns the cards of a full deck not present in used,
// preserving FullDeck order.
func Remaining(used Hand) []Card {
	cards := make([]Card, 0, 52-used.CountCards())
	for suit := uint8(0); suit < 4; suit++ {
		for rank := uint8(0); rank < 13; rank++ {
			c := NewCard(rank, suit)
			if !used.HasCard(c) {
				cards = append(cards, c)
			}
		}
	}
	return cards
}
