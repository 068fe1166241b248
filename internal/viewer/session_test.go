package viewer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func readySession(t *testing.T, pages int) *Session {
	t.Helper()
	s := NewSession()
	assert.True(t, s.Ready(pages))
	return s
}

func TestSession_Lifecycle(t *testing.T) {
	s := NewSession()
	assert.Equal(t, StateLoading, s.State())
	assert.Equal(t, 1, s.Page())
	assert.Equal(t, DefaultScale, s.Scale())

	// Navigation is inert before metadata arrives.
	assert.False(t, s.Next())
	assert.False(t, s.BeginRender())

	assert.False(t, s.Ready(0), "page count below 1 rejected")
	assert.True(t, s.Ready(10))
	assert.Equal(t, StateReady, s.State())
	assert.Equal(t, 10, s.TotalPages())

	// Ready is a one-way transition.
	assert.False(t, s.Ready(20))
	assert.Equal(t, 10, s.TotalPages())

	s.Close()
	assert.Equal(t, StateClosed, s.State())
	assert.False(t, s.Next())
}

func TestSession_FailOnlyFromLoading(t *testing.T) {
	s := NewSession()
	s.Fail()
	assert.Equal(t, StateError, s.State())

	s2 := readySession(t, 3)
	s2.Fail()
	assert.Equal(t, StateReady, s2.State())
}

func TestSession_Navigation(t *testing.T) {
	s := readySession(t, 3)

	// previous is a no-op at page 1
	assert.False(t, s.Previous())
	assert.Equal(t, 1, s.Page())

	assert.True(t, s.Next())
	assert.True(t, s.Next())
	assert.Equal(t, 3, s.Page())

	// next is a no-op at the last page
	assert.False(t, s.Next())
	assert.Equal(t, 3, s.Page())

	assert.True(t, s.Previous())
	assert.Equal(t, 2, s.Page())
}

func TestSession_Progress(t *testing.T) {
	s := readySession(t, 4)
	assert.InDelta(t, 0.25, s.Progress(), 1e-9)
	s.Next()
	assert.InDelta(t, 0.5, s.Progress(), 1e-9)

	assert.Zero(t, NewSession().Progress())
}

func TestSession_ZoomClamps(t *testing.T) {
	s := readySession(t, 1)

	for i := 0; i < 20; i++ {
		s.ZoomIn()
	}
	assert.Equal(t, MaxScale, s.Scale())

	for i := 0; i < 40; i++ {
		s.ZoomOut()
	}
	assert.Equal(t, MinScale, s.Scale())

	assert.Equal(t, DefaultScale, s.ResetZoom())
}

func TestSession_ZoomSteps(t *testing.T) {
	s := readySession(t, 1)
	assert.InDelta(t, 1.5, s.ZoomIn(), 1e-9)    // 1.2 * 1.25
	assert.InDelta(t, 1.2, s.ZoomOut(), 1e-9)   // 1.5 * 0.8
	assert.InDelta(t, 0.96, s.ZoomOut(), 1e-9)  // 1.2 * 0.8
}

func TestSession_SingleFlightRender(t *testing.T) {
	s := readySession(t, 5)

	assert.True(t, s.BeginRender())
	assert.True(t, s.Rendering())

	// A second request while one is in flight is dropped.
	assert.False(t, s.BeginRender())

	s.EndRender()
	assert.True(t, s.BeginRender())
	s.EndRender()
}

func TestSession_WheelNavigation(t *testing.T) {
	s := readySession(t, 10)
	now := time.Unix(1000, 0)

	t.Run("accumulates below threshold", func(t *testing.T) {
		assert.Equal(t, NavNone, s.Wheel(40, now))
		assert.Equal(t, NavNone, s.Wheel(40, now.Add(50*time.Millisecond)))
		assert.Equal(t, 1, s.Page())
	})

	t.Run("fires on crossing threshold", func(t *testing.T) {
		assert.Equal(t, NavNext, s.Wheel(40, now.Add(100*time.Millisecond)))
		assert.Equal(t, 2, s.Page())
	})

	t.Run("cooldown blocks double fire", func(t *testing.T) {
		// Well past the threshold but inside the 300ms lock.
		assert.Equal(t, NavNone, s.Wheel(500, now.Add(200*time.Millisecond)))
		assert.Equal(t, 2, s.Page())
	})

	t.Run("fires again after cooldown", func(t *testing.T) {
		assert.Equal(t, NavNext, s.Wheel(200, now.Add(600*time.Millisecond)))
		assert.Equal(t, 3, s.Page())
	})
}

func TestSession_WheelQuietPeriodResetsAccumulator(t *testing.T) {
	s := readySession(t, 10)
	now := time.Unix(2000, 0)

	assert.Equal(t, NavNone, s.Wheel(90, now))
	// After more than 500ms of silence the 90 units are forgotten; this 90
	// stands alone and stays below the threshold.
	assert.Equal(t, NavNone, s.Wheel(90, now.Add(700*time.Millisecond)))
	assert.Equal(t, 1, s.Page())

	// Without the pause the same deltas would have fired.
	assert.Equal(t, NavNext, s.Wheel(90, now.Add(800*time.Millisecond)))
}

func TestSession_WheelUpNavigatesBack(t *testing.T) {
	s := readySession(t, 10)
	now := time.Unix(3000, 0)

	s.Next()
	assert.Equal(t, 2, s.Page())

	assert.Equal(t, NavPrevious, s.Wheel(-150, now))
	assert.Equal(t, 1, s.Page())

	// At page 1 the gesture is swallowed.
	assert.Equal(t, NavNone, s.Wheel(-150, now.Add(time.Second)))
	assert.Equal(t, 1, s.Page())
}

func TestSession_Drag(t *testing.T) {
	s := readySession(t, 2)

	// Not zoomed in: dragging disabled.
	assert.False(t, s.Drag(-10, -10))
	x, y := s.Pan()
	assert.Zero(t, x)
	assert.Zero(t, y)

	s.ZoomIn() // 1.5 > 1.2
	assert.True(t, s.Drag(-30, -20))
	x, y = s.Pan()
	assert.Equal(t, 30.0, x)
	assert.Equal(t, 20.0, y)

	// Offsets clamp at zero.
	assert.True(t, s.Drag(100, 100))
	x, y = s.Pan()
	assert.Zero(t, x)
	assert.Zero(t, y)

	// Reset zoom drops back to the default and clears pan.
	s.Drag(-5, -5)
	s.ResetZoom()
	assert.False(t, s.Drag(-5, -5))
}

func TestBoot(t *testing.T) {
	b := Boot()
	assert.Equal(t, 1.2, b.InitialScale)
	assert.Equal(t, 0.5, b.MinScale)
	assert.Equal(t, 3.0, b.MaxScale)
	assert.Equal(t, 100.0, b.WheelThreshold)
	assert.Equal(t, int64(300), b.NavCooldownMs)
	assert.Equal(t, int64(500), b.WheelQuietMs)
}
