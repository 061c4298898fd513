package stop

import (
	"sync"
	"testing"
)

func TestSignalLifecycle(t *testing.T) {
	s := New()

	if s.Stopped() {
		t.Error("new signal reports stopped")
	}

	s.Stop()
	if !s.Stopped() {
		t.Error("signal not stopped after Stop")
	}

	// Stop is idempotent.
	s.Stop()
	if !s.Stopped() {
		t.Error("second Stop cleared the flag")
	}

	s.Reset()
	if s.Stopped() {
		t.Error("signal still stopped after Reset")
	}
}

func TestSignalObservedByPollingWorker(t *testing.T) {
	s := New()

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		for !s.Stopped() {
		}
	}()

	s.Stop()
	wg.Wait()
}
