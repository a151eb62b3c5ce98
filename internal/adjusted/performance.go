package adjusted

// PerformanceAggregator derives both sides' box-score totals from a game's
// event stream over a lineup window. The Builder depends on this interface
// rather than a concrete implementation so tests can substitute slow or
// failing collaborators.
type PerformanceAggregator interface {
	// Aggregate returns the home and visitor totals for events whose
	// minute falls inside [w.StartingMin, w.EndMin]. ok is false when no
	// event landed in the window, in which case the row is dropped.
	Aggregate(events []PlayByPlayEvent, w LineupWindow) (home, visitor PerformanceVector, ok bool)
}

// BoxScoreAggregator is the default PerformanceAggregator: it sums raw
// event increments per side, inclusive of both window endpoints.
type BoxScoreAggregator struct{}

// Aggregate implements PerformanceAggregator.
func (BoxScoreAggregator) Aggregate(events []PlayByPlayEvent, w LineupWindow) (PerformanceVector, PerformanceVector, bool) {
	var home, visitor PerformanceVector
	matched := false

	for _, ev := range events {
		if ev.Minute < w.StartingMin || ev.Minute > w.EndMin {
			continue
		}
		matched = true
		if ev.Home {
			home.Add(ev)
		} else {
			visitor.Add(ev)
		}
	}

	return home, visitor, matched
}
