// internal/session/state.go
package session

import (
	"fmt"

	"lembris_client/internal/model"
)

// State は復習セッションの状態
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateSubmitting
	StateEmpty
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateSubmitting:
		return "submitting"
	case StateEmpty:
		return "empty"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Direction はカード移動の向き
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Snapshot はある時点のセッション状態のコピー
type Snapshot struct {
	State       State
	SetID       model.ID
	Position    int
	Len         int
	Flipped     bool
	Current     model.StudyItem
	HasCurrent  bool
	PrevEnabled bool
	NextEnabled bool
}
