package gpiomem

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestInvalidPinsNeverMapMemory(t *testing.T) {
	c := qt.New(t)
	p := New()

	for _, n := range []int{-1, MaxPin + 1, 40} {
		_, err := p.OutputPin(n)
		c.Assert(err, qt.ErrorIs, errInvalidPin)
		_, err = p.InputPin(n)
		c.Assert(err, qt.ErrorIs, errInvalidPin)
	}

	c.Assert(p.mapped, qt.IsFalse)
	c.Assert(p.Close(), qt.IsNil)
}
