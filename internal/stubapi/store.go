// internal/stubapi/store.go
package stubapi

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"lembris_client/internal/model"

	"golang.org/x/crypto/bcrypt"
)

type account struct {
	username string
	email    string
	hash     []byte
	premium  bool
}

type setRecord struct {
	set     model.StudySet
	owner   string
	cardIDs []model.ID
}

type cardRecord struct {
	card       model.Flashcard
	owner      string
	nextReview time.Time
}

type noteRecord struct {
	note  model.Note
	owner string
}

// Store はスタブAPI用のインメモリストアです。handlers の各ストアインターフェースを満たします。
type Store struct {
	mu        sync.RWMutex
	nextID    int64
	accounts  map[string]*account
	sets      map[model.ID]*setRecord
	setOrder  []model.ID
	cards     map[model.ID]*cardRecord
	notes     map[model.ID]*noteRecord
	noteOrder []model.ID
	now       func() time.Time
}

func NewStore() *Store {
	return &Store{
		accounts: make(map[string]*account),
		sets:     make(map[model.ID]*setRecord),
		cards:    make(map[model.ID]*cardRecord),
		notes:    make(map[model.ID]*noteRecord),
		now:      time.Now,
	}
}

// SetClock は時刻の取得元を差し替えます (テスト用)
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) newID() model.ID {
	s.nextID++
	return model.ID(strconv.FormatInt(s.nextID, 10))
}

func notFound(what string) error {
	return model.NewAppError("NOT_FOUND", what+"が見つかりません。", "", model.ErrNotFound)
}

// AddAccount はログイン可能なユーザーを登録します
func (s *Store) AddAccount(username, email, password string, premium bool) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.NewAppError("INTERNAL_SERVER_ERROR", "パスワードの処理に失敗しました。", "", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[username]; exists {
		return model.NewAppError("DUPLICATE_NAME", "そのユーザ名は既に使用されています。", "username", model.ErrConflict)
	}
	s.accounts[username] = &account{username: username, email: email, hash: hash, premium: premium}
	return nil
}

func (s *Store) Authenticate(ctx context.Context, usernameOrEmail, password string) (string, *model.UserProfile, error) {
	s.mu.RLock()
	var found *account
	for _, acc := range s.accounts {
		if acc.username == usernameOrEmail || strings.EqualFold(acc.email, usernameOrEmail) {
			found = acc
			break
		}
	}
	s.mu.RUnlock()

	if found == nil {
		return "", nil, model.ErrUnauthenticated
	}
	if err := bcrypt.CompareHashAndPassword(found.hash, []byte(password)); err != nil {
		return "", nil, model.ErrUnauthenticated
	}
	return found.username, &model.UserProfile{Name: found.username, Email: found.email, IsPremium: found.premium}, nil
}

// --- sets ---

func (s *Store) ListSets(ctx context.Context, owner string) ([]model.StudySet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.StudySet, 0)
	for _, id := range s.setOrder {
		rec := s.sets[id]
		if rec.owner != owner {
			continue
		}
		out = append(out, s.setView(rec))
	}
	return out, nil
}

func (s *Store) setView(rec *setRecord) model.StudySet {
	set := rec.set
	set.CardCount = len(rec.cardIDs)
	return set
}

func (s *Store) ownedSet(owner string, id model.ID) (*setRecord, error) {
	rec, ok := s.sets[id]
	if !ok || rec.owner != owner {
		return nil, notFound("セット")
	}
	return rec, nil
}

func (s *Store) CreateSet(ctx context.Context, owner string, req *model.PostSetRequest) (*model.StudySet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	created := s.now()
	rec := &setRecord{
		set: model.StudySet{
			ID:        s.newID(),
			Name:      req.Name,
			Favorite:  req.Favorite,
			CreatedAt: &created,
		},
		owner: owner,
	}
	s.sets[rec.set.ID] = rec
	s.setOrder = append(s.setOrder, rec.set.ID)
	view := s.setView(rec)
	return &view, nil
}

func (s *Store) PatchSet(ctx context.Context, owner string, id model.ID, req *model.PatchSetRequest) (*model.StudySet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.ownedSet(owner, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		rec.set.Name = *req.Name
	}
	if req.Favorite != nil {
		rec.set.Favorite = *req.Favorite
	}
	view := s.setView(rec)
	return &view, nil
}

// DeleteSet はセットとそのカードを削除します
func (s *Store) DeleteSet(ctx context.Context, owner string, id model.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.ownedSet(owner, id)
	if err != nil {
		return err
	}
	for _, cardID := range rec.cardIDs {
		delete(s.cards, cardID)
	}
	delete(s.sets, id)
	s.setOrder = removeID(s.setOrder, id)
	return nil
}

// StudyItems は復習期限が来ているカードを登録順に返します
func (s *Store) StudyItems(ctx context.Context, owner string, setID model.ID) ([]model.StudyItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, err := s.ownedSet(owner, setID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	items := make([]model.StudyItem, 0, len(rec.cardIDs))
	for _, cardID := range rec.cardIDs {
		card := s.cards[cardID]
		if card.nextReview.After(now) {
			continue
		}
		items = append(items, model.StudyItem{
			ID:       card.card.ID,
			Question: card.card.Question,
			Answer:   card.card.Answer,
			SetName:  rec.set.Name,
		})
	}
	return items, nil
}

// --- cards ---

func (s *Store) ownedCard(owner string, id model.ID) (*cardRecord, error) {
	rec, ok := s.cards[id]
	if !ok || rec.owner != owner {
		return nil, notFound("カード")
	}
	return rec, nil
}

func (s *Store) CreateCard(ctx context.Context, owner string, req *model.CreateFlashcardRequest) (*model.Flashcard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, err := s.ownedSet(owner, req.SetID)
	if err != nil {
		return nil, model.NewAppError("VALIDATION_ERROR", "指定されたセットが存在しません。", "conjunto", model.ErrInvalidInput)
	}
	rec := &cardRecord{
		card: model.Flashcard{
			ID:       s.newID(),
			SetID:    set.set.ID,
			Question: req.Question,
			Answer:   req.Answer,
			Level:    req.Level,
		},
		owner: owner,
	}
	s.cards[rec.card.ID] = rec
	set.cardIDs = append(set.cardIDs, rec.card.ID)
	card := rec.card
	return &card, nil
}

func (s *Store) GetCard(ctx context.Context, owner string, id model.ID) (*model.Flashcard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, err := s.ownedCard(owner, id)
	if err != nil {
		return nil, err
	}
	card := rec.card
	return &card, nil
}

func (s *Store) PatchCard(ctx context.Context, owner string, id model.ID, req *model.PatchFlashcardRequest) (*model.Flashcard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.ownedCard(owner, id)
	if err != nil {
		return nil, err
	}
	if req.Question != nil {
		rec.card.Question = *req.Question
	}
	if req.Answer != nil {
		rec.card.Answer = *req.Answer
	}
	card := rec.card
	return &card, nil
}

func (s *Store) DeleteCard(ctx context.Context, owner string, id model.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.ownedCard(owner, id)
	if err != nil {
		return err
	}
	if set, ok := s.sets[rec.card.SetID]; ok {
		set.cardIDs = removeID(set.cardIDs, id)
	}
	delete(s.cards, id)
	return nil
}

// RecordGrade は評価に応じて記憶レベルと次回の復習日時を更新します
func (s *Store) RecordGrade(ctx context.Context, owner string, id model.ID, grade model.Grade) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.ownedCard(owner, id)
	if err != nil {
		return err
	}
	level, next := nextReview(rec.card.Level, grade, s.now())
	rec.card.Level = level
	rec.nextReview = next
	return nil
}

// nextReview: ruim はレベル0で即再出題、ok は+1、perfeito は+2。間隔はレベル日数。
func nextReview(level int, grade model.Grade, now time.Time) (int, time.Time) {
	switch grade {
	case model.GradePoor:
		return 0, now
	case model.GradeOK:
		level++
	case model.GradeGreat:
		level += 2
	}
	return level, now.Add(time.Duration(level) * 24 * time.Hour)
}

// --- notes ---

func (s *Store) ownedNote(owner string, id model.ID) (*noteRecord, error) {
	rec, ok := s.notes[id]
	if !ok || rec.owner != owner {
		return nil, notFound("ノート")
	}
	return rec, nil
}

func (s *Store) ListNotes(ctx context.Context, owner string) ([]model.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Note, 0)
	for _, id := range s.noteOrder {
		if rec := s.notes[id]; rec.owner == owner {
			out = append(out, rec.note)
		}
	}
	return out, nil
}

func (s *Store) GetNote(ctx context.Context, owner string, id model.ID) (*model.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, err := s.ownedNote(owner, id)
	if err != nil {
		return nil, err
	}
	note := rec.note
	return &note, nil
}

func (s *Store) CreateNote(ctx context.Context, owner string, req *model.SaveNoteRequest) (*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	created := s.now()
	rec := &noteRecord{
		note: model.Note{
			ID:        s.newID(),
			Title:     req.Title,
			Content:   req.Content,
			CreatedAt: &created,
		},
		owner: owner,
	}
	s.notes[rec.note.ID] = rec
	s.noteOrder = append(s.noteOrder, rec.note.ID)
	note := rec.note
	return &note, nil
}

func (s *Store) UpdateNote(ctx context.Context, owner string, id model.ID, req *model.SaveNoteRequest) (*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.ownedNote(owner, id)
	if err != nil {
		return nil, err
	}
	rec.note.Title = req.Title
	rec.note.Content = req.Content
	note := rec.note
	return &note, nil
}

func (s *Store) DeleteNote(ctx context.Context, owner string, id model.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.ownedNote(owner, id); err != nil {
		return err
	}
	delete(s.notes, id)
	s.noteOrder = removeID(s.noteOrder, id)
	return nil
}

func removeID(ids []model.ID, id model.ID) []model.ID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
