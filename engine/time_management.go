package engine

import (
	"time"
)

// softFraction is the share of the budget after which no new iteration starts.
const softFraction = 0.8

// TimeHandler tracks the time budget of one search. A zero budget means no
// time limit, so only the depth limit ends the search.
type TimeHandler struct {
	start    time.Time
	budget   time.Duration
	hardStop time.Time
	softStop time.Time
	limited  bool
}

func (th *TimeHandler) StartTime(budget time.Duration) {
	th.start = time.Now()
	th.budget = budget
	th.limited = budget > 0
	if th.limited {
		th.hardStop = th.start.Add(budget)
		th.softStop = th.start.Add(time.Duration(float64(budget) * softFraction))
	}
}

/*
  - True if we're out of time
  - False if we still got time, or the search has no time limit
*/
func (th *TimeHandler) TimeStatus() bool {
	return th.limited && !time.Now().Before(th.hardStop)
}

// SoftExpired reports whether most of the budget is used up, in which case
// starting another iteration is pointless.
func (th *TimeHandler) SoftExpired() bool {
	return th.limited && !time.Now().Before(th.softStop)
}

func (th *TimeHandler) Elapsed() time.Duration {
	return time.Since(th.start)
}
