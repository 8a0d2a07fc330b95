package poker

// Notation converts two hole cards to standard range notation:
// "AA" for pairs, "AKs" suited, "72o" offsuit. The higher rank comes first.
func Notation(c1, c2 Card) string {
	r1, r2 := c1.Rank(), c2.Rank()
	if r1 > 12 || r2 > 12 {
		return "??"
	}

	if r2 > r1 {
		r1, r2 = r2, r1
	}

	if r1 == r2 {
		return string(rankChars[r1]) + string(rankChars[r2])
	}

	suffix := "o"
	if c1.Suit() == c2.Suit() {
		suffix = "s"
	}
	return string(rankChars[r1]) + string(rankChars[r2]) + suffix
}
