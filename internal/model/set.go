// internal/model/set.go
package model

import (
	"fmt"
	"math"
	"time"
)

// StudySet はカードのまとまり (API上の conjunto)
type StudySet struct {
	ID        ID         `json:"id"`
	Name      string     `json:"nome"`
	Favorite  bool       `json:"favorito"`
	CardCount int        `json:"num_cards"`
	CreatedAt *time.Time `json:"data_criacao,omitempty"`
}

// DaysOld は作成日時との差の日数 (絶対値を切り上げ)。作成日時が無い場合は今作られたものとして 0。
func (s StudySet) DaysOld(now time.Time) int {
	if s.CreatedAt == nil {
		return 0
	}
	return int(math.Ceil(math.Abs(now.Sub(*s.CreatedAt).Hours()) / 24))
}

// セット作成リクエストDTO (API送信用)
type PostSetRequest struct {
	Name     string `json:"nome" validate:"required"`
	Favorite bool   `json:"favorito"`
}

// セットと最初のカードをまとめて作るリクエストDTO
type CreateSetRequest struct {
	Name     string `json:"nome" validate:"required"`
	Question string `json:"pergunta" validate:"required"`
	Answer   string `json:"resposta" validate:"required"`
}

// セット更新（部分）リクエストDTO
type PatchSetRequest struct {
	Name     *string `json:"nome,omitempty" validate:"omitempty,min=1"`
	Favorite *bool   `json:"favorito,omitempty"`
}

// SetFilter はセット一覧の絞り込み
type SetFilter string

const (
	SetFilterAll       SetFilter = "all"
	SetFilterFavorites SetFilter = "favorites"
	SetFilterRecent    SetFilter = "recent"
)

// RecentDays 以内に作成されたセットを「最近」とみなす
const RecentDays = 7

func ParseSetFilter(s string) (SetFilter, error) {
	switch SetFilter(s) {
	case "", SetFilterAll:
		return SetFilterAll, nil
	case SetFilterFavorites, SetFilterRecent:
		return SetFilter(s), nil
	}
	return "", fmt.Errorf("%w: unknown set filter %q", ErrInvalidInput, s)
}

// Match はフィルタ条件にセットが合うかどうか
func (f SetFilter) Match(s StudySet, now time.Time) bool {
	switch f {
	case SetFilterFavorites:
		return s.Favorite
	case SetFilterRecent:
		return s.DaysOld(now) <= RecentDays
	default:
		return true
	}
}
