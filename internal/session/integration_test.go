package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lembris_client/internal/config"
	"lembris_client/internal/gateway"
	"lembris_client/internal/middleware"
	"lembris_client/internal/model"
	"lembris_client/internal/service"
	"lembris_client/internal/stubapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token(ctx context.Context) (string, error) {
	return string(s), nil
}

// newStubSession はスタブAPIに3枚のカードを持つセットを作り、実際のゲートウェイで繋いだ Controller を返します
func newStubSession(t *testing.T) (*Controller, *recordingView, *stubapi.Server, model.ID, []model.ID) {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{Stub: config.StubConfig{JWTSecret: "session-secret", TokenTTL: time.Hour}}
	config.ApplyDefaults(cfg)

	srv := stubapi.NewServer(cfg, stubapi.NewStore(), logger)
	set, err := srv.Store().CreateSet(ctx, "alice", &model.PostSetRequest{Name: "Verbos"})
	require.NoError(t, err)
	var ids []model.ID
	for _, q := range []string{"ser", "estar", "ter"} {
		card, err := srv.Store().CreateCard(ctx, "alice", &model.CreateFlashcardRequest{SetID: set.ID, Question: q, Answer: "?"})
		require.NoError(t, err)
		ids = append(ids, card.ID)
	}

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	token, err := middleware.IssueToken([]byte(cfg.Stub.JWTSecret), "alice", time.Hour)
	require.NoError(t, err)

	gw := gateway.New(staticToken(token), nil,
		gateway.WithHTTPClient(ts.Client()),
		gateway.WithBaseURL(ts.URL+stubapi.APIPrefix),
	)
	view := &recordingView{}
	c := NewController(service.NewReviewService(gw), view, logger)
	return c, view, srv, set.ID, ids
}

func TestController_AgainstStubAPI(t *testing.T) {
	ctx := context.Background()
	c, view, srv, setID, ids := newStubSession(t)

	require.NoError(t, c.StartSession(ctx, setID))
	snap := c.Snapshot()
	require.Equal(t, StateReady, snap.State)
	require.Equal(t, 3, snap.Len)
	assert.Equal(t, ids[0], snap.Current.ID)

	// 評価の送信が失敗してもカードは残る
	srv.FailNext(http.MethodPost, stubapi.APIPrefix+"/flashcards/"+ids[0].String()+"/avaliar/", http.StatusInternalServerError)
	err := c.SubmitFeedback(ctx, model.GradeGreat)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrAPI))
	snap = c.Snapshot()
	assert.Equal(t, StateReady, snap.State)
	assert.Equal(t, 3, snap.Len)
	assert.Equal(t, ids[0], snap.Current.ID)
	require.NotEmpty(t, view.messages)

	require.NoError(t, c.SubmitFeedback(ctx, model.GradeGreat))
	snap = c.Snapshot()
	assert.Equal(t, 2, snap.Len)
	assert.Equal(t, ids[1], snap.Current.ID)

	require.True(t, c.Navigate(Forward))
	require.NoError(t, c.DeleteCurrent(ctx))
	snap = c.Snapshot()
	assert.Equal(t, 1, snap.Len)
	assert.Equal(t, ids[1], snap.Current.ID)

	require.NoError(t, c.SubmitFeedback(ctx, model.GradePoor))
	assert.Equal(t, StateEmpty, c.Snapshot().State)
	assert.True(t, view.empty)

	// サーバー側: 評価 perfeito のカードは期限外、削除したカードは消え、ruim のカードは再出題
	require.NoError(t, c.StartSession(ctx, setID))
	snap = c.Snapshot()
	require.Equal(t, 1, snap.Len)
	assert.Equal(t, ids[1], snap.Current.ID)
}

func TestController_AgainstStubAPI_Unauthenticated(t *testing.T) {
	ctx := context.Background()
	_, _, srv, setID, _ := newStubSession(t)

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	redirected := 0
	gw := gateway.New(staticToken(""), gateway.RedirectFunc(func(ctx context.Context) { redirected++ }),
		gateway.WithHTTPClient(ts.Client()),
		gateway.WithBaseURL(ts.URL+stubapi.APIPrefix),
	)
	view := &recordingView{}
	c := NewController(service.NewReviewService(gw), view, nil)

	err := c.StartSession(ctx, setID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrUnauthenticated))
	assert.Equal(t, 1, redirected)
	assert.Equal(t, StateIdle, c.Snapshot().State)
}
