package main

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Faultbox/voxel-space/internal/engine/camera"
	"github.com/Faultbox/voxel-space/internal/game"
)

// holdTime is how long a key counts as held after its last press event.
// Terminals report auto-repeat presses but never releases.
const holdTime = 120 * time.Millisecond

type control int

const (
	ctlForward control = iota
	ctlBack
	ctlLeft
	ctlRight
	ctlTurnLeft
	ctlTurnRight
	ctlUp
	ctlDown
	ctlTiltLeft
	ctlTiltRight
	ctlHorizonUp
	ctlHorizonDown
	numControls
)

var runeControls = map[rune]control{
	'w': ctlForward,
	's': ctlBack,
	'a': ctlLeft,
	'd': ctlRight,
	'q': ctlUp,
	'e': ctlDown,
	'z': ctlTiltLeft,
	'x': ctlTiltRight,
}

var keyControls = map[tcell.Key]control{
	tcell.KeyLeft:  ctlTurnLeft,
	tcell.KeyRight: ctlTurnRight,
	tcell.KeyUp:    ctlHorizonUp,
	tcell.KeyDown:  ctlHorizonDown,
}

// keyboard turns key press events into held controls and one-shot actions.
type keyboard struct {
	until   [numControls]time.Time
	pending game.Actions
	quit    bool
}

// handle records one key event received at now.
func (k *keyboard) handle(ev *tcell.EventKey, now time.Time) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		k.quit = true
		return
	case tcell.KeyPgUp:
		k.pending.MapStep++
		return
	case tcell.KeyPgDn:
		k.pending.MapStep--
		return
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'f':
			k.pending.ToggleFog = true
		case 'r':
			k.pending.Reload = true
		case 'p':
			k.pending.Screenshot = true
		default:
			if c, ok := runeControls[ev.Rune()]; ok {
				k.until[c] = now.Add(holdTime)
			}
		}
		return
	}
	if c, ok := keyControls[ev.Key()]; ok {
		k.until[c] = now.Add(holdTime)
	}
}

func (k *keyboard) axis(neg, pos control, now time.Time) float32 {
	var v float32
	if now.Before(k.until[pos]) {
		v++
	}
	if now.Before(k.until[neg]) {
		v--
	}
	return v
}

// actions returns the actions for a frame at now and clears one-shot ones.
func (k *keyboard) actions(now time.Time) game.Actions {
	a := k.pending
	k.pending = game.Actions{}
	a.Controls = camera.Controls{
		Forward: k.axis(ctlBack, ctlForward, now),
		Strafe:  k.axis(ctlLeft, ctlRight, now),
		Turn:    k.axis(ctlTurnLeft, ctlTurnRight, now),
		Climb:   k.axis(ctlDown, ctlUp, now),
		Tilt:    k.axis(ctlTiltLeft, ctlTiltRight, now),
	}
	a.Horizon = k.axis(ctlHorizonDown, ctlHorizonUp, now)
	return a
}
