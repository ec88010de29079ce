// internal/stubapi/seed.go
package stubapi

import (
	"context"
	"fmt"

	"lembris_client/internal/model"
)

// デモ用アカウント
const (
	DemoUsername = "demo"
	DemoEmail    = "demo@lembris.local"
	DemoPassword = "demo1234"
)

var demoCards = []struct{ q, a string }{
	{"Capital do Brasil?", "Brasília"},
	{"2 + 2 × 2", "6"},
	{"HTTP 204 significa?", "No Content"},
	{"Autor de Dom Casmurro", "Machado de Assis"},
}

// Seed はデモ用のユーザー・セット・カード・ノートを登録します
func Seed(ctx context.Context, store *Store) error {
	if err := store.AddAccount(DemoUsername, DemoEmail, DemoPassword, false); err != nil {
		return fmt.Errorf("stubapi.Seed: %w", err)
	}

	set, err := store.CreateSet(ctx, DemoUsername, &model.PostSetRequest{Name: "Conhecimentos gerais", Favorite: true})
	if err != nil {
		return fmt.Errorf("stubapi.Seed: %w", err)
	}
	for _, c := range demoCards {
		if _, err := store.CreateCard(ctx, DemoUsername, &model.CreateFlashcardRequest{SetID: set.ID, Question: c.q, Answer: c.a}); err != nil {
			return fmt.Errorf("stubapi.Seed: %w", err)
		}
	}

	if _, err := store.CreateNote(ctx, DemoUsername, &model.SaveNoteRequest{
		Title:   "Boas-vindas",
		Content: "Use o comando study para revisar o conjunto de demonstração.",
	}); err != nil {
		return fmt.Errorf("stubapi.Seed: %w", err)
	}
	return nil
}
