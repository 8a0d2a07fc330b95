package handlog

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/railbird/railbird/poker"
)

// Log entry patterns for the exported game log format. One pattern per
// entry kind; entries matching none are ignored (chat, joins, etc.).
var (
	reHandStart  = regexp.MustCompile(`-- starting hand #(\d+) \(id: ([^)]+)\)`)
	reDealer     = regexp.MustCompile(`dealer: "([^"]+)"`)
	reHandEnd    = regexp.MustCompile(`-- ending hand #(\d+)`)
	reStacks     = regexp.MustCompile(`#\d+ "([^"]+)" \((\d+)\)`)
	reSmallBlind = regexp.MustCompile(`"([^"]+)" posts a small blind of (\d+)`)
	reBigBlind   = regexp.MustCompile(`"([^"]+)" posts a big blind of (\d+)`)
	reCall       = regexp.MustCompile(`"([^"]+)" calls (\d+)`)
	reBet        = regexp.MustCompile(`"([^"]+)" bets (\d+)`)
	reRaise      = regexp.MustCompile(`"([^"]+)" raises to (\d+)`)
	reCheck      = regexp.MustCompile(`"([^"]+)" checks`)
	reFold       = regexp.MustCompile(`"([^"]+)" folds`)
	reShow       = regexp.MustCompile(`"([^"]+)" shows a (.+)\.`)
	reCollected  = regexp.MustCompile(`"([^"]+)" collected (\d+) from pot`)
	reWinHand    = regexp.MustCompile(`with (.+?) \(combination: ([^)]+)\)`)
	reUncalled   = regexp.MustCompile(`Uncalled bet of (\d+) returned to "([^"]+)"`)
	reCardToken  = regexp.MustCompile(`(?:10|[2-9TJQKA])[♠♥♦♣]`)
)

// SkippedHand identifies a hand dropped during parsing and why.
type SkippedHand struct {
	Number int
	ID     string
	Reason string
}

// SkipReport accumulates hands that could not be parsed. One bad hand
// never aborts the rest of the session.
type SkipReport struct {
	Hands []SkippedHand
}

// Count returns the number of skipped hands.
func (r *SkipReport) Count() int { return len(r.Hands) }

func (r *SkipReport) add(number int, id, reason string) {
	r.Hands = append(r.Hands, SkippedHand{Number: number, ID: id, Reason: reason})
}

// Parser assembles hands from ordered log entries.
type Parser struct {
	logger *log.Logger
}

// NewParser creates a parser. A nil logger falls back to the default.
func NewParser(logger *log.Logger) *Parser {
	if logger == nil {
		logger = log.Default()
	}
	return &Parser{logger: logger}
}

// handBuilder carries mutable per-hand parse state; it becomes a Hand
// only when the hand ends cleanly.
type handBuilder struct {
	hand    *Hand
	street  Street
	failure string

	// streetPut tracks per-player chips contributed on the current
	// street, so "raises to N" can be applied as a delta.
	streetPut map[string]int
}

func (b *handBuilder) fail(reason string) {
	if b.failure == "" {
		b.failure = reason
	}
}

// ParseEntries scans ordered log entries and assembles completed hands.
// Entries must be pre-sorted by their order column (LoadLog does this).
// Malformed hands are skipped and reported, never fatal.
func (p *Parser) ParseEntries(entries []Entry) ([]*Hand, *SkipReport) {
	var hands []*Hand
	skips := &SkipReport{}
	var b *handBuilder

	for _, entry := range entries {
		text := entry.Text

		if m := reHandStart.FindStringSubmatch(text); m != nil {
			if b != nil {
				// Previous hand never ended; drop it.
				skips.add(b.hand.Number, b.hand.ID, "hand never ended")
				p.logger.Warn("dropping unterminated hand", "hand", b.hand.Number)
			}
			number := atoi(m[1])
			b = &handBuilder{
				hand: &Hand{
					Number:      number,
					ID:          m[2],
					StartTime:   entry.At,
					Players:     make(map[string]*PlayerState),
					Payouts:     make(map[string]int),
					AllInStreet: StreetNone,
				},
				street:    Preflop,
				streetPut: make(map[string]int),
			}
			if dm := reDealer.FindStringSubmatch(text); dm != nil {
				b.hand.Dealer = dm[1]
			}
			continue
		}

		if reHandEnd.MatchString(text) {
			if b == nil {
				continue
			}
			b.hand.EndTime = entry.At
			if b.failure != "" {
				skips.add(b.hand.Number, b.hand.ID, b.failure)
				p.logger.Warn("skipping hand", "hand", b.hand.Number, "reason", b.failure)
			} else {
				inferDealer(b.hand)
				hands = append(hands, b.hand)
			}
			b = nil
			continue
		}

		if b == nil || b.failure != "" {
			continue
		}
		p.applyEntry(b, text)
	}

	if b != nil {
		skips.add(b.hand.Number, b.hand.ID, "hand never ended")
		p.logger.Warn("dropping unterminated hand", "hand", b.hand.Number)
	}

	return hands, skips
}

func (p *Parser) applyEntry(b *handBuilder, text string) {
	hand := b.hand

	switch {
	case hasPrefix(text, "Player stacks:"):
		for _, m := range reStacks.FindAllStringSubmatch(text, -1) {
			name := m[1]
			hand.Seats = append(hand.Seats, name)
			hand.Players[name] = &PlayerState{InitialStack: atoi(m[2])}
		}

	case hasPrefix(text, "Flop:"):
		b.advanceStreet(Flop)
		b.setBoard(text, 3)

	case hasPrefix(text, "Turn:"):
		b.advanceStreet(Turn)
		b.setBoard(text, 4)

	case hasPrefix(text, "River:"):
		b.advanceStreet(River)
		b.setBoard(text, 5)

	default:
		p.applyPlayerEntry(b, text)
	}
}

func (p *Parser) applyPlayerEntry(b *handBuilder, text string) {
	hand := b.hand

	if m := reSmallBlind.FindStringSubmatch(text); m != nil {
		hand.SmallBlindPlayer = m[1]
		b.contribute(m[1], ActionSmallBlind, atoi(m[2]), false)
		return
	}
	if m := reBigBlind.FindStringSubmatch(text); m != nil {
		hand.BigBlindPlayer = m[1]
		b.contribute(m[1], ActionBigBlind, atoi(m[2]), false)
		return
	}
	// Calls, bets, and raises all state the player's street total, not
	// the increment: a small blind of 10 who "calls 20" adds 10 more.
	if m := reRaise.FindStringSubmatch(text); m != nil {
		b.contribute(m[1], ActionRaise, atoi(m[2]), true)
		return
	}
	if m := reCall.FindStringSubmatch(text); m != nil {
		b.contribute(m[1], ActionCall, atoi(m[2]), true)
		return
	}
	if m := reBet.FindStringSubmatch(text); m != nil {
		b.contribute(m[1], ActionBet, atoi(m[2]), true)
		return
	}
	if m := reCheck.FindStringSubmatch(text); m != nil {
		hand.Actions = append(hand.Actions, Action{Player: m[1], Type: ActionCheck, Street: b.street})
		return
	}
	if m := reFold.FindStringSubmatch(text); m != nil {
		hand.Actions = append(hand.Actions, Action{Player: m[1], Type: ActionFold, Street: b.street})
		if ps, ok := hand.Players[m[1]]; ok {
			ps.Folded = true
		}
		return
	}
	if m := reShow.FindStringSubmatch(text); m != nil {
		cards, err := parseCardTokens(m[2])
		if err != nil {
			b.fail(fmt.Sprintf("bad shown cards: %v", err))
			return
		}
		if len(cards) != 2 {
			b.fail(fmt.Sprintf("player %q showed %d cards", m[1], len(cards)))
			return
		}
		if ps, ok := hand.Players[m[1]]; ok {
			ps.HoleCards = cards
		}
		return
	}
	if m := reCollected.FindStringSubmatch(text); m != nil {
		amount := atoi(m[2])
		hand.Payouts[m[1]] += amount
		hand.Pot += amount
		if wm := reWinHand.FindStringSubmatch(text); wm != nil {
			hand.WinningHand = wm[1]
		}
		return
	}
	if m := reUncalled.FindStringSubmatch(text); m != nil {
		// Returned chips were never contested; back them out.
		if ps, ok := hand.Players[m[2]]; ok {
			ps.Invested -= atoi(m[1])
		}
		return
	}
}

func (b *handBuilder) advanceStreet(s Street) {
	b.street = s
	b.streetPut = make(map[string]int)
}

func (b *handBuilder) setBoard(text string, want int) {
	cards, err := parseCardTokens(text)
	if err != nil {
		b.fail(fmt.Sprintf("bad board: %v", err))
		return
	}
	if len(cards) != want {
		b.fail(fmt.Sprintf("board has %d cards on %s", len(cards), b.street))
		return
	}
	b.hand.Board = cards
}

// contribute applies chips a player put in. When toTotal is set the
// amount is the player's street total and only the delta over their
// current street contribution is added; blinds are posted raw.
func (b *handBuilder) contribute(player string, action ActionType, amount int, toTotal bool) {
	hand := b.hand
	ps, ok := hand.Players[player]
	if !ok {
		b.fail(fmt.Sprintf("action by unseated player %q", player))
		return
	}

	added := amount
	if toTotal {
		added = amount - b.streetPut[player]
		if added < 0 {
			b.fail(fmt.Sprintf("%s to %d below street contribution for %q", action, amount, player))
			return
		}
	}
	b.streetPut[player] += added
	ps.Invested += added
	hand.Actions = append(hand.Actions, Action{Player: player, Type: action, Street: b.street, Amount: amount})

	// All-in before the river: first occurrence freezes the street and
	// the board as revealed at that moment.
	if b.street != River && ps.Invested >= ps.InitialStack {
		ps.AllIn = true
		if hand.AllInStreet == StreetNone {
			hand.AllInStreet = b.street
			hand.BoardAtAllIn = append([]poker.Card(nil), hand.Board...)
		}
	}
}

// inferDealer fills in the dealer for dead-button hands: the first seat
// that posted neither blind, else the small blind.
func inferDealer(hand *Hand) {
	if hand.Dealer != "" {
		return
	}
	for _, player := range hand.Seats {
		if player != hand.SmallBlindPlayer && player != hand.BigBlindPlayer {
			hand.Dealer = player
			return
		}
	}
	hand.Dealer = hand.SmallBlindPlayer
}

func parseCardTokens(text string) ([]poker.Card, error) {
	tokens := reCardToken.FindAllString(text, -1)
	cards := make([]poker.Card, 0, len(tokens))
	var seen poker.Hand
	for _, tok := range tokens {
		card, err := poker.ParseCard(tok)
		if err != nil {
			return nil, err
		}
		if seen.HasCard(card) {
			return nil, fmt.Errorf("duplicate card %s", card)
		}
		seen.AddCard(card)
		cards = append(cards, card)
	}
	return cards, nil
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

func atoi(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}

// SortEntries orders entries by their order column, the sequence the
// client assigned at export time.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Order < entries[j].Order
	})
}
