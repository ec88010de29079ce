// internal/handlers/store.go
package handlers

import (
	"context"

	"lembris_client/internal/model"
)

// ハンドラが使うデータストア。owner はログイン中のユーザー名。

type AccountStore interface {
	Authenticate(ctx context.Context, usernameOrEmail, password string) (username string, profile *model.UserProfile, err error)
}

type SetStore interface {
	ListSets(ctx context.Context, owner string) ([]model.StudySet, error)
	CreateSet(ctx context.Context, owner string, req *model.PostSetRequest) (*model.StudySet, error)
	PatchSet(ctx context.Context, owner string, id model.ID, req *model.PatchSetRequest) (*model.StudySet, error)
	DeleteSet(ctx context.Context, owner string, id model.ID) error
	StudyItems(ctx context.Context, owner string, setID model.ID) ([]model.StudyItem, error)
}

type CardStore interface {
	CreateCard(ctx context.Context, owner string, req *model.CreateFlashcardRequest) (*model.Flashcard, error)
	GetCard(ctx context.Context, owner string, id model.ID) (*model.Flashcard, error)
	PatchCard(ctx context.Context, owner string, id model.ID, req *model.PatchFlashcardRequest) (*model.Flashcard, error)
	DeleteCard(ctx context.Context, owner string, id model.ID) error
	RecordGrade(ctx context.Context, owner string, id model.ID, grade model.Grade) error
}

type NoteStore interface {
	ListNotes(ctx context.Context, owner string) ([]model.Note, error)
	GetNote(ctx context.Context, owner string, id model.ID) (*model.Note, error)
	CreateNote(ctx context.Context, owner string, req *model.SaveNoteRequest) (*model.Note, error)
	UpdateNote(ctx context.Context, owner string, id model.ID, req *model.SaveNoteRequest) (*model.Note, error)
	DeleteNote(ctx context.Context, owner string, id model.ID) error
}

// TokenIssuer はログイン成功時にトークンを発行します
type TokenIssuer func(username string) (string, error)
