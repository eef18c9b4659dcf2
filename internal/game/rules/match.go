package rules

import "github.com/cardmatch/solitaire-go/internal/game/cards"

// CanMatch reports whether two ranks are adjacent, counting Ace and King as
// neighbours. Both ranks must be valid.
func CanMatch(a, b cards.Rank) bool {
	diff := a - b
	if diff == 1 || diff == -1 {
		return true
	}
	return (a == cards.RankAce && b == cards.RankKing) || (a == cards.RankKing && b == cards.RankAce)
}
