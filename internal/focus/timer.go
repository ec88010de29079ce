// internal/focus/timer.go
package focus

import (
	"context"
	"fmt"
	"sync"
	"time"

	"lembris_client/internal/config"
	"lembris_client/internal/model"
)

// Phase は集中か休憩か
type Phase int

const (
	PhaseFocus Phase = iota
	PhaseBreak
)

func (p Phase) String() string {
	if p == PhaseBreak {
		return "Descanso"
	}
	return "Foco"
}

// Event はフェーズが0秒に達したときに発行されます
type Event struct {
	Finished Phase
	Next     Phase
	Session  int
}

// State は Timer の状態のコピー
type State struct {
	Phase       Phase
	Remaining   int // 秒
	Total       int // 秒
	Running     bool
	Session     int
	MaxSessions int
}

// Status は "Foco 1 de 4" の形式
func (s State) Status() string {
	return fmt.Sprintf("%s %d de %d", s.Phase, s.Session, s.MaxSessions)
}

// Progress は経過率 (0-100)
func (s State) Progress() float64 {
	if s.Total <= 0 {
		return 0
	}
	p := 100 - float64(s.Remaining)/float64(s.Total)*100
	if p < 0 {
		return 0
	}
	return p
}

// Timer はポモドーロタイマー。1秒ごとに Tick を呼んで進めます。
type Timer struct {
	mu          sync.Mutex
	focusSecs   int
	breakSecs   int
	maxSessions int
	phase       Phase
	remaining   int
	running     bool
	session     int
}

func NewTimer(cfg config.FocusConfig) *Timer {
	t := &Timer{
		focusSecs:   cfg.FocusMinutes * 60,
		breakSecs:   cfg.BreakMinutes * 60,
		maxSessions: cfg.MaxSessions,
		session:     1,
	}
	if t.focusSecs <= 0 {
		t.focusSecs = config.DefaultFocusMinutes * 60
	}
	if t.breakSecs <= 0 {
		t.breakSecs = config.DefaultBreakMinutes * 60
	}
	if t.maxSessions <= 0 {
		t.maxSessions = config.DefaultMaxSessions
	}
	t.load(PhaseFocus)
	return t
}

func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.running = true
}

func (t *Timer) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.running = false
}

// Reset は現在のフェーズを最初からやり直します (停止状態)
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.load(t.phase)
}

// Load は指定フェーズに切り替えます (停止状態)
func (t *Timer) Load(phase Phase) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.load(phase)
}

// SetDurations は集中・休憩の分数を変更し、集中フェーズを読み込み直します
func (t *Timer) SetDurations(focusMinutes, breakMinutes int) error {
	if focusMinutes <= 0 || breakMinutes <= 0 {
		return model.NewAppError("VALIDATION_ERROR", "時間は1分以上を指定してください。", "", model.ErrInvalidInput)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.focusSecs = focusMinutes * 60
	t.breakSecs = breakMinutes * 60
	t.load(PhaseFocus)
	return nil
}

// Tick は1秒進めます。0秒に達したら停止して次のフェーズを読み込み、Event を返します。
func (t *Timer) Tick() (Event, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return Event{}, false
	}
	if t.remaining > 0 {
		t.remaining--
	}
	if t.remaining > 0 {
		return Event{}, false
	}

	finished := t.phase
	next := PhaseFocus
	if finished == PhaseFocus {
		t.session++
		next = PhaseBreak
	}
	t.load(next)
	return Event{Finished: finished, Next: next, Session: t.session}, true
}

func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return State{
		Phase:       t.phase,
		Remaining:   t.remaining,
		Total:       t.duration(t.phase),
		Running:     t.running,
		Session:     t.session,
		MaxSessions: t.maxSessions,
	}
}

// Run は ticks を受け取るたびに Tick し、ctx が終わるまで続けます。
// onTick は毎回、onFinish はフェーズ終了時に呼ばれます (nil 可)。
func (t *Timer) Run(ctx context.Context, ticks <-chan time.Time, onTick func(State), onFinish func(Event)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-ticks:
			if !ok {
				return nil
			}
			ev, finished := t.Tick()
			if onTick != nil {
				onTick(t.State())
			}
			if finished && onFinish != nil {
				onFinish(ev)
			}
		}
	}
}

func (t *Timer) load(phase Phase) {
	t.running = false
	t.phase = phase
	t.remaining = t.duration(phase)
}

func (t *Timer) duration(phase Phase) int {
	if phase == PhaseBreak {
		return t.breakSecs
	}
	return t.focusSecs
}

// Format は秒数を mm:ss にします
func Format(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
