package rating

import "math"

// Experience award parameters.
const (
	xpBaseWin     = 50
	xpBaseLoss    = 25
	xpUpsetStep   = 100 // rating points per upset bonus step
	xpUpsetBonus  = 10
	xpLengthStep  = 10 // messages per engagement bonus step
	xpLengthBonus = 5
	xpCap         = 100
)

// ComputeXPGain returns the experience points awarded to one participant of a
// concluded public debate. The upset bonus applies only to a winner who beat a
// higher-rated opponent; the engagement bonus applies to both sides. The total
// is capped at xpCap after all bonuses.
func ComputeXPGain(isWinner bool, opponentRating, playerRating float64, debateLength int) (int, error) {
	if !finite(opponentRating) || !finite(playerRating) {
		return 0, ErrInvalidInput
	}

	xp := xpBaseLoss
	if isWinner {
		xp = xpBaseWin
		if opponentRating > playerRating {
			diff := opponentRating - playerRating
			xp += int(math.Floor(diff/xpUpsetStep)) * xpUpsetBonus
		}
	}

	// A negative length would otherwise subtract from the award.
	if debateLength < 0 {
		debateLength = 0
	}
	xp += (debateLength / xpLengthStep) * xpLengthBonus

	if xp > xpCap {
		xp = xpCap
	}
	return xp, nil
}
