// Package viewer models the per-document viewing session: page navigation,
// zoom, scroll-to-navigate, and pan. The browser runs the same protocol in
// static/js/viewer.js; keeping it here as well makes the transitions and
// guards unit-testable and gives the viewer page its boot parameters.
package viewer

import "time"

const (
	// DefaultScale is the zoom the viewer opens with; it is also the pan
	// threshold: dragging only engages when zoomed past it.
	DefaultScale = 1.2
	MinScale     = 0.5
	MaxScale     = 3.0

	zoomInFactor  = 1.25
	zoomOutFactor = 0.8

	// WheelThreshold is the accumulated wheel delta that fires a page turn.
	WheelThreshold = 100.0
	// NavCooldown blocks re-triggering after a wheel navigation so one
	// gesture cannot double-fire.
	NavCooldown = 300 * time.Millisecond
	// WheelQuiet resets the accumulator after a pause with no wheel events.
	WheelQuiet = 500 * time.Millisecond
)

// State is the lifecycle of a viewing session.
type State int

const (
	StateLoading State = iota
	StateReady
	StateError
	StateClosed
)

// Direction of a wheel-triggered page turn.
type Direction int

const (
	NavNone Direction = iota
	NavNext
	NavPrevious
)

// Session holds the client-side viewing state for one open document. It is
// not safe for concurrent use; the browser drives it from a single event loop
// and tests drive it from a single goroutine.
type Session struct {
	state      State
	page       int
	totalPages int
	scale      float64

	rendering bool

	wheelAccum  float64
	lastWheel   time.Time
	lockedUntil time.Time

	panX, panY float64
}

// NewSession starts a session in the loading state; metadata is not yet
// available.
func NewSession() *Session {
	return &Session{state: StateLoading, page: 1, scale: DefaultScale}
}

// Ready transitions to the ready state once the document's page count is
// known. The count is fixed for the life of the session.
func (s *Session) Ready(totalPages int) bool {
	if s.state != StateLoading || totalPages < 1 {
		return false
	}
	s.state = StateReady
	s.totalPages = totalPages
	s.page = 1
	return true
}

// Fail moves a loading session to the terminal error state.
func (s *Session) Fail() {
	if s.state == StateLoading {
		s.state = StateError
	}
}

// Close ends the session.
func (s *Session) Close() { s.state = StateClosed }

func (s *Session) State() State      { return s.state }
func (s *Session) Page() int         { return s.page }
func (s *Session) TotalPages() int   { return s.totalPages }
func (s *Session) Scale() float64    { return s.scale }
func (s *Session) Pan() (x, y float64) { return s.panX, s.panY }

// Progress is the page indicator fraction, current/total.
func (s *Session) Progress() float64 {
	if s.state != StateReady || s.totalPages == 0 {
		return 0
	}
	return float64(s.page) / float64(s.totalPages)
}

// BeginRender acquires the single-flight render flag. A render in progress
// causes concurrent requests to be dropped, not queued, so it returns false
// when one is already running.
func (s *Session) BeginRender() bool {
	if s.state != StateReady || s.rendering {
		return false
	}
	s.rendering = true
	return true
}

// EndRender releases the render flag.
func (s *Session) EndRender() { s.rendering = false }

// Rendering reports whether a page render is in flight.
func (s *Session) Rendering() bool { return s.rendering }

// Next advances one page. No-op at the last page.
func (s *Session) Next() bool {
	if s.state != StateReady || s.page >= s.totalPages {
		return false
	}
	s.page++
	return true
}

// Previous goes back one page. No-op at the first page.
func (s *Session) Previous() bool {
	if s.state != StateReady || s.page <= 1 {
		return false
	}
	s.page--
	return true
}

// ZoomIn multiplies the scale by 1.25, clamped to MaxScale.
func (s *Session) ZoomIn() float64 {
	s.scale = clamp(s.scale * zoomInFactor)
	return s.scale
}

// ZoomOut multiplies the scale by 0.8, clamped to MinScale.
func (s *Session) ZoomOut() float64 {
	s.scale = clamp(s.scale * zoomOutFactor)
	return s.scale
}

// ResetZoom restores the default scale.
func (s *Session) ResetZoom() float64 {
	s.scale = DefaultScale
	s.panX, s.panY = 0, 0
	return s.scale
}

func clamp(v float64) float64 {
	if v > MaxScale {
		return MaxScale
	}
	if v < MinScale {
		return MinScale
	}
	return v
}

// Wheel feeds one wheel event into the navigation accumulator. Positive
// deltas scroll down (next page). When the accumulated magnitude crosses
// WheelThreshold and the cooldown has expired, the page turns and the
// accumulator resets; the returned direction says which way, NavNone
// otherwise.
func (s *Session) Wheel(delta float64, now time.Time) Direction {
	if s.state != StateReady {
		return NavNone
	}

	// A quiet period empties the accumulator before this event counts.
	if !s.lastWheel.IsZero() && now.Sub(s.lastWheel) > WheelQuiet {
		s.wheelAccum = 0
	}
	s.lastWheel = now
	s.wheelAccum += delta

	if s.wheelAccum > -WheelThreshold && s.wheelAccum < WheelThreshold {
		return NavNone
	}
	if now.Before(s.lockedUntil) {
		return NavNone
	}

	dir := NavNone
	if s.wheelAccum > 0 {
		if s.Next() {
			dir = NavNext
		}
	} else {
		if s.Previous() {
			dir = NavPrevious
		}
	}
	s.wheelAccum = 0
	s.lockedUntil = now.Add(NavCooldown)
	return dir
}

// Drag applies a pointer delta as a scroll offset. Dragging only engages when
// zoomed past the default scale; offsets clamp at zero.
func (s *Session) Drag(dx, dy float64) bool {
	if s.state != StateReady || s.scale <= DefaultScale {
		return false
	}
	s.panX = max0(s.panX - dx)
	s.panY = max0(s.panY - dy)
	return true
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// BootConfig is the set of constants the viewer page hands to the front-end
// so both sides run the same protocol.
type BootConfig struct {
	InitialScale   float64 `json:"initialScale"`
	MinScale       float64 `json:"minScale"`
	MaxScale       float64 `json:"maxScale"`
	WheelThreshold float64 `json:"wheelThreshold"`
	NavCooldownMs  int64   `json:"navCooldownMs"`
	WheelQuietMs   int64   `json:"wheelQuietMs"`
}

// Boot returns the front-end configuration.
func Boot() BootConfig {
	return BootConfig{
		InitialScale:   DefaultScale,
		MinScale:       MinScale,
		MaxScale:       MaxScale,
		WheelThreshold: WheelThreshold,
		NavCooldownMs:  NavCooldown.Milliseconds(),
		WheelQuietMs:   WheelQuiet.Milliseconds(),
	}
}
