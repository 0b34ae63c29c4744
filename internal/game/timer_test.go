package game

import "testing"

func TestCountdown_FiresExactlyOnce(t *testing.T) {
	var c countdown
	c.arm(3)
	fired := 0
	for i := 0; i < 10; i++ {
		if c.tick() {
			fired++
			if i != 2 {
				t.Errorf("fired on tick %d, want tick 2", i)
			}
		}
	}
	if fired != 1 {
		t.Fatalf("fired %d times, want 1", fired)
	}
	if c.active() {
		t.Error("countdown still armed after firing")
	}
}

func TestCountdown_CancelPreventsFiring(t *testing.T) {
	var c countdown
	c.arm(2)
	c.cancel()
	for i := 0; i < 5; i++ {
		if c.tick() {
			t.Fatal("cancelled countdown fired")
		}
	}
}

func TestCountdown_CancelIdempotent(t *testing.T) {
	var c countdown
	c.cancel()
	c.arm(1)
	c.cancel()
	c.cancel()
	if c.active() {
		t.Error("countdown armed after double cancel")
	}
	if c.tick() {
		t.Error("countdown fired after double cancel")
	}
}

func TestCountdown_RearmRestarts(t *testing.T) {
	var c countdown
	c.arm(5)
	c.tick()
	c.tick()
	c.arm(5)
	fired := -1
	for i := 0; i < 10; i++ {
		if c.tick() {
			fired = i
			break
		}
	}
	if fired != 4 {
		t.Errorf("re-armed countdown fired on tick %d, want 4", fired)
	}
}
