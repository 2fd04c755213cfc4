package testkit

import "testing"

var clockSeam = func() int { return 1 }

func TestSwapRestores(t *testing.T) {
	t.Run("inner", func(t *testing.T) {
		Swap(t, &clockSeam, func() int { return 99 })
		if clockSeam() != 99 {
			t.Fatalf("swap did not take effect")
		}
	})
	if clockSeam() != 1 {
		t.Fatalf("swap did not restore the original")
	}
}

func TestSerialHoldsLock(t *testing.T) {
	t.Run("locked", func(t *testing.T) {
		Serial(t)
		if seamMu.TryLock() {
			seamMu.Unlock()
			t.Fatal("Serial should hold the seam lock for the test duration")
		}
	})
	if !seamMu.TryLock() {
		t.Fatal("Serial should release the lock after the test")
	}
	seamMu.Unlock()
}
