package workflow

import "math/rand/v2"

// Chooser picks uniformly among n outcomes, returning a value in [0, n)
type Chooser interface {
	Intn(n int) int
}

type randomChooser struct{}

// NewRandomChooser returns a Chooser backed by the runtime's shared generator
func NewRandomChooser() Chooser {
	return randomChooser{}
}

func (randomChooser) Intn(n int) int {
	return rand.IntN(n)
}

// CoinFlip draws a uniform boolean from c
func CoinFlip(c Chooser) bool {
	return c.Intn(2) == 1
}
