package sim

// fifoEntry pairs a waiting fan with the time it was enqueued.
type fifoEntry struct {
	fan        *Fan
	enqueuedAt int64
}

// FIFOLine is an ordered waiting line with per-item enqueue timestamps and
// cumulative wait accounting. enqueuedAt is monotone non-decreasing because
// the scheduler only ever processes events in time order.
type FIFOLine struct {
	name        string
	entries     []fifoEntry
	totalWait   int64
	servedCount int64
}

// NewFIFOLine creates an empty named line (name is used only for reports).
func NewFIFOLine(name string) *FIFOLine {
	return &FIFOLine{name: name}
}

// Enqueue appends fan to the back of the line at time t.
func (q *FIFOLine) Enqueue(fan *Fan, t int64) {
	q.entries = append(q.entries, fifoEntry{fan: fan, enqueuedAt: t})
}

// Dequeue removes the head of the line, returns its fan, and records the
// wait (t - enqueuedAt) into the line's statistics. Returns nil if empty.
// Waits recorded here are statistics-only; per-fan wait is reconstructed
// from the fan's own timestamps (see Fan.WaitInspect/WaitTurn).
func (q *FIFOLine) Dequeue(t int64) *Fan {
	if len(q.entries) == 0 {
		return nil
	}
	head := q.entries[0]
	q.entries = q.entries[1:]
	q.totalWait += t - head.enqueuedAt
	q.servedCount++
	return head.fan
}

// Size returns the current number of waiting fans.
func (q *FIFOLine) Size() int { return len(q.entries) }

// Empty reports whether the line holds no waiting fans.
func (q *FIFOLine) Empty() bool { return len(q.entries) == 0 }

// MeanWait returns the average recorded wait, or 0 if nobody has been
// served yet.
func (q *FIFOLine) MeanWait() float64 {
	if q.servedCount == 0 {
		return 0
	}
	return float64(q.totalWait) / float64(q.servedCount)
}
