// internal/session/controller.go
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"lembris_client/internal/model"
	"lembris_client/internal/queue"
)

// ReviewAPI はセッションが使うリモート操作です。
// 失敗時は model.ErrTransport か *model.APIError をラップして返してください。
type ReviewAPI interface {
	FetchStudyItems(ctx context.Context, setID model.ID) ([]model.StudyItem, error)
	SubmitGrade(ctx context.Context, itemID model.ID, grade model.Grade) error
	DeleteCard(ctx context.Context, cardID model.ID) error
}

// Controller は1つの復習セッションの状態遷移を管理します。
//
// ネットワーク呼び出しの間はロックを外し、Submitting 状態で他の操作を締め出します。
// 各リクエストは発行時の世代番号を持ち、StartSession や Stop で世代が変わっていれば結果を捨てます。
type Controller struct {
	mu         sync.Mutex
	api        ReviewAPI
	view       View
	logger     *slog.Logger
	queue      *queue.Queue
	state      State
	flipped    bool
	setID      model.ID
	generation uint64
}

func NewController(api ReviewAPI, view View, logger *slog.Logger) *Controller {
	if view == nil {
		view = nopView{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		api:    api,
		view:   view,
		logger: logger,
		queue:  queue.New(),
		state:  StateIdle,
	}
}

// StartSession はセットの復習カードを取得して新しいセッションを始めます。
// 進行中のセッションがあれば置き換え、その応答は以後破棄されます。
// 取得に失敗した場合は空のキューで Idle に戻ります。
func (c *Controller) StartSession(ctx context.Context, setID model.ID) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.state = StateLoading
	c.setID = setID
	c.flipped = false
	c.queue.Load(nil)
	c.render()
	c.mu.Unlock()

	c.logger.Debug("Loading study items", "set_id", setID, "generation", gen)
	items, err := c.api.FetchStudyItems(ctx, setID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		c.logger.Debug("Discarding stale study items response", "set_id", setID, "generation", gen, "current_generation", c.generation)
		return nil
	}

	if err != nil {
		c.state = StateIdle
		c.queue.Load(nil)
		c.render()
		c.view.ShowMessage(failureMessage("カードの読み込みに失敗しました", err))
		return fmt.Errorf("session.StartSession: %w", err)
	}

	c.queue.Load(items)
	c.flipped = false
	c.settle()
	c.logger.Info("Study session started", "set_id", setID, "items", len(items))
	c.render()
	return nil
}

// Stop はセッションを終了します。進行中のリクエストの結果は破棄されます。
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.state = StateIdle
	c.flipped = false
	c.queue.Load(nil)
	c.render()
}

// Displayed は現在表示中のカードを返します
func (c *Controller) Displayed() (model.StudyItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateReady && c.state != StateSubmitting {
		return model.StudyItem{}, false
	}
	return c.queue.Current()
}

// Flip は表示中のカードの表裏を切り替えます。Ready 以外では何もせず false。
func (c *Controller) Flip() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateReady {
		return false
	}
	c.flipped = !c.flipped
	c.view.SetFlipped(c.flipped)
	return true
}

// Navigate は前後のカードへ移動します。Ready 以外や端では何もせず false。
func (c *Controller) Navigate(dir Direction) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateReady {
		return false
	}

	var moved bool
	switch dir {
	case Forward:
		moved = c.queue.Advance()
	case Backward:
		moved = c.queue.Retreat()
	}
	if moved {
		c.flipped = false
		c.render()
	}
	return moved
}

// SubmitFeedback は表示中のカードの評価を送信し、成功したらキューから取り除きます。
// 失敗時はキューを変えずに Ready へ戻し、再試行可能なエラーを返します。
func (c *Controller) SubmitFeedback(ctx context.Context, grade model.Grade) error {
	if !grade.Valid() {
		return fmt.Errorf("session.SubmitFeedback: %w: grade %d", model.ErrInvalidInput, int(grade))
	}
	return c.mutateCurrent(ctx, "session.SubmitFeedback", "評価の送信に失敗しました", func(ctx context.Context, item model.StudyItem) error {
		return c.api.SubmitGrade(ctx, item.ID, grade)
	})
}

// DeleteCurrent は表示中のカードをサーバーから削除し、キューからも取り除きます。
func (c *Controller) DeleteCurrent(ctx context.Context) error {
	return c.mutateCurrent(ctx, "session.DeleteCurrent", "カードの削除に失敗しました", func(ctx context.Context, item model.StudyItem) error {
		return c.api.DeleteCard(ctx, item.ID)
	})
}

// mutateCurrent は現在のカードに対するリモート操作を Submitting 状態で実行し、
// 成功したときだけ RemoveCurrent します。
func (c *Controller) mutateCurrent(ctx context.Context, op, failMsg string, call func(context.Context, model.StudyItem) error) error {
	c.mu.Lock()
	if err := c.checkReady(op); err != nil {
		c.mu.Unlock()
		return err
	}
	item, _ := c.queue.Current()
	gen := c.generation
	c.state = StateSubmitting
	c.render()
	c.mu.Unlock()

	err := call(ctx, item)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		c.logger.Debug("Discarding stale response", "op", op, "item_id", item.ID, "generation", gen, "current_generation", c.generation)
		return nil
	}

	if err != nil {
		c.state = StateReady
		c.render()
		c.view.ShowMessage(failureMessage(failMsg, err))
		c.logger.Warn("Remote operation failed, item kept", "op", op, "item_id", item.ID, "error", err)
		return fmt.Errorf("%s: %w", op, err)
	}

	c.queue.RemoveCurrent()
	c.flipped = false
	c.settle()
	c.render()
	return nil
}

// checkReady は Ready 以外での呼び出しを拒否します (ロック保持中に呼ぶ)
func (c *Controller) checkReady(op string) error {
	switch c.state {
	case StateReady:
		if c.queue.Len() == 0 {
			return fmt.Errorf("%s: %w: ready with empty queue", op, model.ErrPrecondition)
		}
		return nil
	case StateSubmitting, StateLoading:
		return fmt.Errorf("%s: %w (state=%s)", op, model.ErrBusy, c.state)
	default:
		return fmt.Errorf("%s: %w (state=%s)", op, model.ErrPrecondition, c.state)
	}
}

// settle はキューの長さから Ready/Empty を決めます
func (c *Controller) settle() {
	if c.queue.Len() > 0 {
		c.state = StateReady
	} else {
		c.state = StateEmpty
	}
}

// render は現在の状態を View に反映します (ロック保持中に呼ぶ)
func (c *Controller) render() {
	switch c.state {
	case StateReady, StateSubmitting:
		item, _ := c.queue.Current()
		c.view.ShowItem(item, c.queue.Position(), c.queue.Len())
		c.view.SetFlipped(c.flipped)
		c.view.SetNavigation(c.prevEnabled(), c.nextEnabled())
	case StateEmpty:
		c.view.ShowEmpty()
		c.view.SetNavigation(false, false)
	default:
		c.view.SetNavigation(false, false)
	}
}

func (c *Controller) prevEnabled() bool {
	return c.state == StateReady && !c.queue.AtStart()
}

func (c *Controller) nextEnabled() bool {
	return c.state == StateReady && !c.queue.AtEnd()
}

// Snapshot は現在の状態のコピーを返します
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	cur, ok := c.queue.Current()
	return Snapshot{
		State:       c.state,
		SetID:       c.setID,
		Position:    c.queue.Position(),
		Len:         c.queue.Len(),
		Flipped:     c.flipped,
		Current:     cur,
		HasCurrent:  ok,
		PrevEnabled: c.prevEnabled(),
		NextEnabled: c.nextEnabled(),
	}
}

func failureMessage(prefix string, err error) string {
	var apiErr *model.APIError
	switch {
	case errors.As(err, &apiErr):
		return fmt.Sprintf("%s (%d): %s", prefix, apiErr.StatusCode, apiErr.Message)
	case errors.Is(err, model.ErrTransport):
		return prefix + ": サーバーに接続できませんでした。"
	case errors.Is(err, model.ErrUnauthenticated):
		return prefix + ": ログインしてください。"
	default:
		return prefix + "。"
	}
}
