package engine

import "github.com/verlin/mandelpipe/fix"

// escapeMag2 is |z|^2 = 4.0 in Q8.24, the squared escape radius.
const escapeMag2 = fix.Q824(4 << fix.FracBits)

// LaneStatus is the lifecycle state of an iteration lane.
type LaneStatus uint8

const (
	// Idle: no work assigned; the only state Start may be called in.
	Idle LaneStatus = iota
	// Running: iterating; one recurrence step per Step call.
	Running
	// Done: result available via Consume.
	Done
)

// Lane is a single escape-time iterator. It advances the recurrence
// z ← z² + c one step at a time, reporting the smallest n with |z_n| > 2,
// or maxIter if the orbit never escapes within the cap.
//
// A lane is exclusively owned by its worker: none of its methods are safe
// for concurrent use. Starting a lane that is not Idle is a caller contract
// violation with undefined results; the scheduler guarantees it never does.
type Lane struct {
	zre, zim fix.Q824
	cre, cim fix.Q824
	count    uint8
	maxIter  uint8
	status   LaneStatus
}

// Status returns the lane's lifecycle state.
func (l *Lane) Status() LaneStatus { return l.status }

// Start assigns the lane coordinate c and the iteration cap, resets the
// orbit to z₀ = 0, and moves the lane to Running.
func (l *Lane) Start(cre, cim fix.Q824, maxIter uint8) {
	l.cre, l.cim = cre, cim
	l.zre, l.zim = 0, 0
	l.count = 0
	l.maxIter = maxIter
	l.status = Running
}

// Step advances one iteration while Running; otherwise it is a no-op.
//
// The escape test uses the pre-update magnitude: when |z|² exceeds 4.0 the
// lane reports the current count, not count+1. All products go through
// fix.Mul, so every narrowing truncates toward negative infinity; the
// doubling in the imaginary update happens after the truncating multiply.
func (l *Lane) Step() {
	if l.status != Running {
		return
	}
	zre2 := fix.Mul(l.zre, l.zre)
	zim2 := fix.Mul(l.zim, l.zim)
	if zre2+zim2 > escapeMag2 {
		l.status = Done
		return
	}
	if l.count >= l.maxIter {
		l.status = Done
		return
	}
	cross := fix.Mul(l.zre, l.zim)
	l.zre = zre2 - zim2 + l.cre
	l.zim = cross<<1 + l.cim
	l.count++
}

// Run steps the lane to completion and returns the iteration count.
func (l *Lane) Run() uint8 {
	for l.status == Running {
		l.Step()
	}
	return l.count
}

// Consume returns the result of a Done lane and resets it to Idle.
func (l *Lane) Consume() uint8 {
	count := l.count
	l.status = Idle
	return count
}

// Iterate is the one-shot form: the full escape-time computation for a
// single coordinate. Equivalent to Start, Run, Consume on a fresh lane.
func Iterate(cre, cim fix.Q824, maxIter uint8) uint8 {
	var l Lane
	l.Start(cre, cim, maxIter)
	l.Run()
	return l.Consume()
}
