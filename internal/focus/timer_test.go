package focus

import (
	"context"
	"errors"
	"testing"
	"time"

	"lembris_client/internal/config"
	"lembris_client/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShortTimer(t *testing.T) *Timer {
	t.Helper()
	return NewTimer(config.FocusConfig{FocusMinutes: 1, BreakMinutes: 1, MaxSessions: 4})
}

func tickN(tm *Timer, n int) (events []Event) {
	for i := 0; i < n; i++ {
		if ev, ok := tm.Tick(); ok {
			events = append(events, ev)
		}
	}
	return events
}

func TestFormat(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{59, "00:59"},
		{60, "01:00"},
		{25 * 60, "25:00"},
		{-3, "00:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.seconds))
	}
}

func TestNewTimer_Defaults(t *testing.T) {
	tm := NewTimer(config.FocusConfig{})
	st := tm.State()
	assert.Equal(t, PhaseFocus, st.Phase)
	assert.Equal(t, 25*60, st.Remaining)
	assert.False(t, st.Running)
	assert.Equal(t, "Foco 1 de 4", st.Status())
	assert.Equal(t, 0.0, st.Progress())
}

func TestTimer_TickOnlyWhileRunning(t *testing.T) {
	tm := newShortTimer(t)

	tickN(tm, 5)
	assert.Equal(t, 60, tm.State().Remaining)

	tm.Start()
	tickN(tm, 15)
	st := tm.State()
	assert.Equal(t, 45, st.Remaining)
	assert.InDelta(t, 25.0, st.Progress(), 0.001)

	tm.Pause()
	tickN(tm, 10)
	assert.Equal(t, 45, tm.State().Remaining)
}

func TestTimer_PhaseCycle(t *testing.T) {
	tm := newShortTimer(t)
	tm.Start()

	events := tickN(tm, 60)
	require.Len(t, events, 1)
	assert.Equal(t, Event{Finished: PhaseFocus, Next: PhaseBreak, Session: 2}, events[0])

	st := tm.State()
	assert.Equal(t, PhaseBreak, st.Phase)
	assert.Equal(t, 60, st.Remaining)
	assert.False(t, st.Running, "timer pauses when a phase finishes")
	assert.Equal(t, "Descanso 2 de 4", st.Status())

	tm.Start()
	events = tickN(tm, 60)
	require.Len(t, events, 1)
	assert.Equal(t, Event{Finished: PhaseBreak, Next: PhaseFocus, Session: 2}, events[0])
	assert.Equal(t, "Foco 2 de 4", tm.State().Status())
}

func TestTimer_ResetAndLoad(t *testing.T) {
	tm := newShortTimer(t)
	tm.Start()
	tickN(tm, 30)

	tm.Reset()
	st := tm.State()
	assert.Equal(t, 60, st.Remaining)
	assert.False(t, st.Running)

	tm.Load(PhaseBreak)
	assert.Equal(t, PhaseBreak, tm.State().Phase)
	assert.Equal(t, 1, tm.State().Session, "loading a phase manually does not count a session")
}

func TestTimer_SetDurations(t *testing.T) {
	tm := newShortTimer(t)
	tm.Load(PhaseBreak)

	require.NoError(t, tm.SetDurations(50, 10))
	st := tm.State()
	assert.Equal(t, PhaseFocus, st.Phase)
	assert.Equal(t, 50*60, st.Remaining)

	for _, bad := range [][2]int{{0, 5}, {25, 0}, {-1, -1}} {
		err := tm.SetDurations(bad[0], bad[1])
		assert.True(t, errors.Is(err, model.ErrInvalidInput), "%v", bad)
	}
	assert.Equal(t, 50*60, tm.State().Remaining)
}

func TestTimer_Run(t *testing.T) {
	tm := newShortTimer(t)
	tm.Start()

	ticks := make(chan time.Time)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var states []State
	var finished []Event
	done := make(chan error, 1)
	go func() {
		done <- tm.Run(ctx, ticks, func(s State) { states = append(states, s) }, func(e Event) { finished = append(finished, e) })
	}()

	for i := 0; i < 60; i++ {
		ticks <- time.Now()
	}
	cancel()
	err := <-done
	assert.True(t, errors.Is(err, context.Canceled))

	require.Len(t, states, 60)
	assert.Equal(t, 59, states[0].Remaining)
	require.Len(t, finished, 1)
	assert.Equal(t, PhaseFocus, finished[0].Finished)
}

func TestTimer_RunStopsWhenTicksClose(t *testing.T) {
	tm := newShortTimer(t)
	ticks := make(chan time.Time)
	close(ticks)
	assert.NoError(t, tm.Run(context.Background(), ticks, nil, nil))
}
