// internal/model/card.go
package model

import (
	"fmt"
	"strings"
)

// StudyItem は復習セッションで表示する1枚のカード
type StudyItem struct {
	ID       ID     `json:"id"`
	Question string `json:"pergunta"`
	Answer   string `json:"resposta"`
	SetName  string `json:"conjunto_nome,omitempty"`
}

// Grade はユーザーの自己評価
type Grade int

const (
	GradePoor Grade = iota
	GradeOK
	GradeGreat
)

var gradeWireValues = [...]string{
	GradePoor:  "ruim",
	GradeOK:    "ok",
	GradeGreat: "perfeito",
}

var gradeNames = [...]string{
	GradePoor:  "poor",
	GradeOK:    "ok",
	GradeGreat: "great",
}

func (g Grade) Valid() bool {
	return g >= GradePoor && g <= GradeGreat
}

func (g Grade) String() string {
	if !g.Valid() {
		return fmt.Sprintf("Grade(%d)", int(g))
	}
	return gradeNames[g]
}

// WireValue はAPIに送る文字列表現
func (g Grade) WireValue() string {
	if !g.Valid() {
		return ""
	}
	return gradeWireValues[g]
}

func (g Grade) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("%w: unknown grade %d", ErrInvalidInput, int(g))
	}
	return []byte(g.WireValue()), nil
}

func (g *Grade) UnmarshalText(text []byte) error {
	parsed, err := ParseGrade(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// ParseGrade は英語名・APIの値・キー入力 (1/2/3) を受け付けます
func ParseGrade(s string) (Grade, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "poor", "ruim", "1":
		return GradePoor, nil
	case "ok", "2":
		return GradeOK, nil
	case "great", "perfeito", "3":
		return GradeGreat, nil
	}
	return 0, fmt.Errorf("%w: unknown grade %q", ErrInvalidInput, s)
}

// Flashcard はAPI上のカードリソース
type Flashcard struct {
	ID       ID     `json:"id"`
	SetID    ID     `json:"conjunto"`
	Question string `json:"pergunta"`
	Answer   string `json:"resposta"`
	Level    int    `json:"nivel_memorizacao"`
}

// カード作成リクエストDTO
type CreateFlashcardRequest struct {
	SetID    ID     `json:"conjunto" validate:"required"`
	Question string `json:"pergunta" validate:"required"`
	Answer   string `json:"resposta" validate:"required"`
	Level    int    `json:"nivel_memorizacao" validate:"gte=0"`
}

// カード更新（部分）リクエストDTO
type EditFlashcardRequest struct {
	Question string `json:"pergunta" validate:"required"`
	Answer   string `json:"resposta" validate:"required"`
}

// 復習結果送信リクエストのDTO
type SubmitReviewRequest struct {
	Grade string `json:"avaliacao" validate:"required,oneof=ruim ok perfeito"`
}

// カード更新（部分）リクエストDTO (サーバー側で受けるとき)
type PatchFlashcardRequest struct {
	Question *string `json:"pergunta,omitempty" validate:"omitempty,min=1"`
	Answer   *string `json:"resposta,omitempty" validate:"omitempty,min=1"`
}
