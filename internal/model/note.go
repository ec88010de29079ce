// internal/model/note.go
package model

import "time"

// NotePreviewLength はプレビューに使う最大文字数 (rune単位)
const NotePreviewLength = 100

type Note struct {
	ID        ID         `json:"id"`
	Title     string     `json:"titulo"`
	Content   string     `json:"conteudo"`
	CreatedAt *time.Time `json:"data_criacao,omitempty"`
}

// Preview は本文の先頭だけを返します
func (n Note) Preview() string {
	r := []rune(n.Content)
	if len(r) <= NotePreviewLength {
		return n.Content
	}
	return string(r[:NotePreviewLength]) + "..."
}

// ノート作成・更新リクエストDTO
type SaveNoteRequest struct {
	Title   string `json:"titulo" validate:"required"`
	Content string `json:"conteudo" validate:"required"`
}
