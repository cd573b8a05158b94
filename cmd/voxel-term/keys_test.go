package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func TestKeyboardHold(t *testing.T) {
	var k keyboard
	now := time.Unix(0, 0)

	k.handle(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), now)
	k.handle(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), now)

	a := k.actions(now.Add(holdTime / 2))
	if a.Controls.Forward != 1 || a.Controls.Turn != -1 {
		t.Errorf("held controls = %+v", a.Controls)
	}

	a = k.actions(now.Add(holdTime))
	if a.Controls.Forward != 0 || a.Controls.Turn != 0 {
		t.Errorf("expired controls = %+v", a.Controls)
	}
}

func TestKeyboardOpposedKeysCancel(t *testing.T) {
	var k keyboard
	now := time.Unix(0, 0)
	k.handle(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), now)
	k.handle(tcell.NewEventKey(tcell.KeyRune, 'e', tcell.ModNone), now)

	if a := k.actions(now); a.Controls.Climb != 0 {
		t.Errorf("climb = %v, want 0", a.Controls.Climb)
	}
}

func TestKeyboardOneShots(t *testing.T) {
	var k keyboard
	now := time.Unix(0, 0)
	k.handle(tcell.NewEventKey(tcell.KeyPgUp, 0, tcell.ModNone), now)
	k.handle(tcell.NewEventKey(tcell.KeyPgUp, 0, tcell.ModNone), now)
	k.handle(tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModNone), now)
	k.handle(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone), now)

	a := k.actions(now)
	if a.MapStep != 2 || !a.ToggleFog || !a.Screenshot || a.Reload {
		t.Errorf("actions = %+v", a)
	}
	if a = k.actions(now); a.MapStep != 0 || a.ToggleFog || a.Screenshot {
		t.Errorf("one-shots not cleared: %+v", a)
	}
}

func TestKeyboardQuit(t *testing.T) {
	var k keyboard
	k.handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), time.Unix(0, 0))
	if !k.quit {
		t.Error("Escape did not quit")
	}
}
