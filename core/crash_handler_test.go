package core

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func stubExit(t *testing.T) chan int {
	t.Helper()
	codes := make(chan int, 1)
	prev := exit
	exit = func(code int) { codes <- code }
	t.Cleanup(func() { exit = prev })
	return codes
}

func TestHandleCrashIgnoresNil(t *testing.T) {
	codes := stubExit(t)
	HandleCrash(nil)
	select {
	case c := <-codes:
		t.Errorf("Nil recover value should not exit, got code %d", c)
	default:
	}
}

func TestHandleCrashRestoresScreen(t *testing.T) {
	codes := stubExit(t)
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	RegisterScreen(s)

	HandleCrash("boom")
	if c := <-codes; c != 1 {
		t.Errorf("Expected exit code 1, got %d", c)
	}

	crashMu.Lock()
	defer crashMu.Unlock()
	if crashScreen != nil {
		t.Error("Screen should be released after a crash")
	}
}

func TestGoRecoversPanics(t *testing.T) {
	codes := stubExit(t)
	Go(func() { panic("worker") })
	if c := <-codes; c != 1 {
		t.Errorf("Expected exit code 1, got %d", c)
	}
}
