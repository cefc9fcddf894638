package blocks

import "radiotimeline/internal/timeline"

// run is a closed group of consecutive same-typed segments.
type run struct {
	typ     timeline.SegmentType
	indices []int
}

// accumulator splits a segment sequence into runs.
type accumulator struct {
	open    bool
	current run
	closed  []run
}

// feed advances the machine by one segment.
func (a *accumulator) feed(index int, seg timeline.Segment) {
	if seg.Type == timeline.TypeSilence {
		a.flush()
		return
	}
	if a.open && seg.Type != a.current.typ {
		a.flush()
	}
	if !a.open {
		a.open = true
		a.current = run{typ: seg.Type}
	}
	a.current.indices = append(a.current.indices, index)
}

// flush closes the open run, if any.
func (a *accumulator) flush() {
	if !a.open {
		return
	}
	a.closed = append(a.closed, a.current)
	a.open = false
	a.current = run{}
}

// splitRuns drives the accumulator over segments and returns the closed runs.
func splitRuns(segments []timeline.Segment) []run {
	var acc accumulator
	for i, seg := range segments {
		acc.feed(i, seg)
	}
	acc.flush()
	return acc.closed
}
