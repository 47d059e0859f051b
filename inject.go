package coverstudio

// syntheticPointerEvent represents a single injected pointer event.
// Screen coordinates are used (matching what appears in exports and
// screenshots) and converted to canvas coordinates via the viewport,
// identical to real mouse input.
type syntheticPointerEvent struct {
	screenX, screenY float64
	pressed          bool
	mods             KeyModifiers
}

// InjectPress queues a pointer press at the given screen coordinates.
// The event is consumed on the next frame's Update.
func (s *Studio) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{screenX: x, screenY: y, pressed: true})
}

// InjectMove queues a pointer move with the button held down. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (s *Studio) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{screenX: x, screenY: y, pressed: true})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (s *Studio) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{screenX: x, screenY: y, pressed: false})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two frames.
func (s *Studio) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and a
// release at (toX, toY). Minimum frames is 2 (press + release).
func (s *Studio) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// processInjectedInput pops one event from the inject queue, converts
// screen to canvas coordinates, and feeds it through the pointer
// controller. Returns true if an event was consumed (real mouse input
// is skipped that frame).
func (s *Studio) processInjectedInput(mods KeyModifiers) bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	cx, cy := s.view.ScreenToCanvas(evt.screenX, evt.screenY)
	switch {
	case evt.pressed && !s.injectDown:
		s.ctrl.PointerDown(cx, cy, evt.mods|mods)
	case evt.pressed && s.injectDown:
		s.ctrl.PointerMove(cx, cy, evt.mods|mods)
	case !evt.pressed && s.injectDown:
		s.ctrl.PointerUp(cx, cy, evt.mods|mods)
	}
	s.injectDown = evt.pressed
	return true
}
