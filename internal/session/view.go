// internal/session/view.go
package session

import "lembris_client/internal/model"

// View はコントローラーが状態を描画するための表示側の能力です。
// コントローラーはロックを保持したまま呼び出すので、実装からコントローラーを呼び返してはいけません。
type View interface {
	ShowItem(item model.StudyItem, position, total int)
	ShowEmpty()
	SetNavigation(prevEnabled, nextEnabled bool)
	SetFlipped(flipped bool)
	ShowMessage(msg string)
}

type nopView struct{}

func (nopView) ShowItem(model.StudyItem, int, int) {}
func (nopView) ShowEmpty()                         {}
func (nopView) SetNavigation(bool, bool)           {}
func (nopView) SetFlipped(bool)                    {}
func (nopView) ShowMessage(string)                 {}
