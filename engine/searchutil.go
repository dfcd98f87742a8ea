package engine

import (
	"fmt"
	"sort"
)

// getMateOrCPScore formats a score the way UCI "info score" expects it.
func getMateOrCPScore(score int) string {
	if score > MateThreshold {
		pliesToMate := Checkmate - score
		if pliesToMate < 0 {
			pliesToMate = 0
		}
		return fmt.Sprintf("mate %d", (pliesToMate+1)/2)
	} else if score < -MateThreshold {
		pliesToMate := Checkmate + score
		if pliesToMate < 0 {
			pliesToMate = 0
		}
		return fmt.Sprintf("mate %d", -(pliesToMate+1)/2)
	}
	return fmt.Sprintf("cp %d", score)
}

// IsMateScore reports whether score encodes a forced mate for either side.
func IsMateScore(score int) bool {
	return score > MateThreshold || score < -MateThreshold
}

// sortRootScores puts exact scores first, best first. The sort is stable so
// equal scores keep the previous iteration's order.
func sortRootScores(scores []rootScore) {
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].exact != scores[j].exact {
			return scores[i].exact
		}
		return scores[i].score > scores[j].score
	})
}
