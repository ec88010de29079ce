// internal/queue/queue.go
package queue

import "lembris_client/internal/model"

// Queue は復習セッション中のカード列と現在位置を保持します。
//
// 不変条件: 要素があるとき 0 <= position < len、空のとき position == 0。
// 並行アクセスは想定していません (所有する Controller が排他制御する)。
type Queue struct {
	items    []model.StudyItem
	position int
}

func New() *Queue {
	return &Queue{}
}

// Load は中身を丸ごと置き換え、位置を先頭に戻します。空でもよい。
func (q *Queue) Load(items []model.StudyItem) {
	q.items = append([]model.StudyItem(nil), items...)
	q.position = 0
}

// Current は現在のカードを返します。空なら false。
func (q *Queue) Current() (model.StudyItem, bool) {
	if len(q.items) == 0 {
		return model.StudyItem{}, false
	}
	return q.items[q.position], true
}

// Advance は1つ進めます。末尾では何もせず false。
func (q *Queue) Advance() bool {
	if q.AtEnd() {
		return false
	}
	q.position++
	return true
}

// Retreat は1つ戻します。先頭では何もせず false。
func (q *Queue) Retreat() bool {
	if q.AtStart() {
		return false
	}
	q.position--
	return true
}

// RemoveCurrent は現在のカードを取り除き、位置を詰め直します。
// 末尾を消した場合は新しい末尾に、空になれば 0 に戻ります。
func (q *Queue) RemoveCurrent() {
	if len(q.items) == 0 {
		return
	}
	q.items = append(q.items[:q.position], q.items[q.position+1:]...)
	switch {
	case len(q.items) == 0:
		q.position = 0
	case q.position >= len(q.items):
		q.position = len(q.items) - 1
	}
}

func (q *Queue) Len() int {
	return len(q.items)
}

func (q *Queue) Position() int {
	return q.position
}

func (q *Queue) AtStart() bool {
	return q.position == 0
}

func (q *Queue) AtEnd() bool {
	return len(q.items) == 0 || q.position == len(q.items)-1
}

// Items は中身のコピーを返します
func (q *Queue) Items() []model.StudyItem {
	return append([]model.StudyItem(nil), q.items...)
}
