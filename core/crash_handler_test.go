package core

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestHandleCrashNilIsNoop(t *testing.T) {
	HandleCrash(nil)
}

func TestSetCrashScreen(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	SetCrashScreen(s)
	if p := crashScreen.Load(); p == nil || *p != s {
		t.Errorf("Expected registered screen")
	}
	SetCrashScreen(nil)
	if crashScreen.Load() != nil {
		t.Errorf("Expected cleared screen")
	}
}

func TestGoRunsFunction(t *testing.T) {
	done := make(chan struct{})
	Go(func() { close(done) })
	<-done
}
