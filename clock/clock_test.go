package clock_test

import (
	"testing"
	"time"

	"github.com/OperatorFoundation/peersend/clock"
)

func TestTestClockAdvances(t *testing.T) {
	start := time.Unix(100, 0)
	c := clock.NewTest(start)

	if !c.Now().Equal(start) {
		t.Fatalf("Now: got %v, want %v", c.Now(), start)
	}

	c.Advance(5 * time.Second)
	want := start.Add(5 * time.Second)
	if !c.Now().Equal(want) {
		t.Fatalf("Now after Advance: got %v, want %v", c.Now(), want)
	}
}

func TestTestClockRejectsNegativeAdvance(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Advance with negative duration: want panic, got none")
		}
	}()

	c := clock.NewTest(time.Unix(0, 0))
	c.Advance(-1)
}

func TestSteadyClockIsNonDecreasing(t *testing.T) {
	var c clock.Steady
	first := c.Now()
	second := c.Now()
	if second.Before(first) {
		t.Fatal("Steady clock went backwards")
	}
}
