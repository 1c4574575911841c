package dice

import "math/rand/v2"

const faces = 6

// Roller rolls two fair six-sided dice.
type Roller struct {
	rnd *rand.Rand
}

func New() *Roller {
	return &Roller{rnd: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))} //nolint: gosec // it's a board game
}

// NewSeeded returns a Roller that replays the same rolls for the same seed.
func NewSeeded(seed uint64) *Roller {
	return &Roller{rnd: rand.New(rand.NewPCG(seed, seed))} //nolint: gosec // it's a board game
}

func (that *Roller) Roll() (int, int) {
	return that.rnd.IntN(faces) + 1, that.rnd.IntN(faces) + 1
}

// Fixed always returns the same roll.
type Fixed struct {
	First  int
	Second int
}

func (that Fixed) Roll() (int, int) {
	return that.First, that.Second
}

// Sequence returns scripted rolls in order and wraps around when exhausted.
// Rolling an empty script panics.
type Sequence struct {
	Rolls [][2]int
	next  int
}

func (that *Sequence) Roll() (int, int) {
	if len(that.Rolls) == 0 {
		panic("dice: Sequence has no scripted rolls")
	}

	roll := that.Rolls[that.next%len(that.Rolls)]
	that.next++

	return roll[0], roll[1]
}

// Calls reports how many rolls have been drawn.
func (that *Sequence) Calls() int {
	return that.next
}
