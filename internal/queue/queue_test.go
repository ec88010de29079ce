// internal/queue/queue_test.go
package queue

import (
	"fmt"
	"math/rand"
	"testing"

	"lembris_client/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func items(ids ...string) []model.StudyItem {
	out := make([]model.StudyItem, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.StudyItem{ID: model.ID(id), Question: "Q" + id, Answer: "A" + id})
	}
	return out
}

func ids(q *Queue) []string {
	var out []string
	for _, it := range q.Items() {
		out = append(out, it.ID.String())
	}
	return out
}

func assertInvariants(t *testing.T, q *Queue) {
	t.Helper()
	if q.Len() == 0 {
		assert.Equal(t, 0, q.Position())
		assert.True(t, q.AtStart())
		assert.True(t, q.AtEnd())
		_, ok := q.Current()
		assert.False(t, ok)
		return
	}
	assert.GreaterOrEqual(t, q.Position(), 0)
	assert.Less(t, q.Position(), q.Len())
	assert.Equal(t, q.Position() == 0, q.AtStart())
	assert.Equal(t, q.Position() == q.Len()-1, q.AtEnd())
	cur, ok := q.Current()
	assert.True(t, ok)
	assert.Equal(t, q.Items()[q.Position()], cur)
}

func TestQueue_Empty(t *testing.T) {
	q := New()
	assertInvariants(t, q)

	assert.False(t, q.Advance())
	assert.False(t, q.Retreat())
	q.RemoveCurrent()
	assertInvariants(t, q)

	q.Load(nil)
	assertInvariants(t, q)
}

func TestQueue_LoadResetsPosition(t *testing.T) {
	q := New()
	q.Load(items("1", "2", "3"))
	require.True(t, q.Advance())
	require.True(t, q.Advance())
	assert.Equal(t, 2, q.Position())

	q.Load(items("7", "8"))
	assert.Equal(t, 0, q.Position())
	assert.Equal(t, []string{"7", "8"}, ids(q))
	assertInvariants(t, q)
}

func TestQueue_LoadCopiesInput(t *testing.T) {
	src := items("1", "2")
	q := New()
	q.Load(src)
	src[0].Question = "changed"

	cur, _ := q.Current()
	assert.Equal(t, "Q1", cur.Question)

	out := q.Items()
	out[1].Question = "changed"
	assert.Equal(t, "Q2", q.Items()[1].Question)
}

func TestQueue_Navigation(t *testing.T) {
	q := New()
	q.Load(items("1", "2", "3"))

	assert.False(t, q.Retreat(), "先頭では戻れない")
	assert.Equal(t, 0, q.Position())

	assert.True(t, q.Advance())
	assert.True(t, q.Advance())
	assert.False(t, q.Advance(), "末尾では進めない")
	assert.Equal(t, 2, q.Position())
	assert.True(t, q.AtEnd())

	assert.True(t, q.Retreat())
	assert.Equal(t, 1, q.Position())
	assertInvariants(t, q)
}

func TestQueue_SingleItem(t *testing.T) {
	q := New()
	q.Load(items("only"))
	assert.True(t, q.AtStart())
	assert.True(t, q.AtEnd())
	assert.False(t, q.Advance())
	assert.False(t, q.Retreat())
}

func TestQueue_RemoveCurrent(t *testing.T) {
	tests := []struct {
		name    string
		load    []string
		advance int
		wantIDs []string
		wantPos int
	}{
		{name: "先頭を削除", load: []string{"a", "b", "c"}, advance: 0, wantIDs: []string{"b", "c"}, wantPos: 0},
		{name: "中間を削除すると次が現在になる", load: []string{"a", "b", "c"}, advance: 1, wantIDs: []string{"a", "c"}, wantPos: 1},
		{name: "末尾を削除すると新しい末尾へ", load: []string{"a", "b", "c"}, advance: 2, wantIDs: []string{"a", "b"}, wantPos: 1},
		{name: "最後の1枚を削除すると空", load: []string{"a"}, advance: 0, wantIDs: nil, wantPos: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := New()
			q.Load(items(tt.load...))
			for i := 0; i < tt.advance; i++ {
				require.True(t, q.Advance())
			}

			q.RemoveCurrent()

			assert.Equal(t, tt.wantIDs, ids(q))
			assert.Equal(t, tt.wantPos, q.Position())
			assertInvariants(t, q)
		})
	}
}

// 操作列をランダムに適用しても不変条件と詰め直しの法則が保たれること
func TestQueue_RandomOperations(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 200; run++ {
		n := rng.Intn(8)
		var load []string
		for i := 0; i < n; i++ {
			load = append(load, fmt.Sprintf("%d-%d", run, i))
		}
		q := New()
		q.Load(items(load...))
		assertInvariants(t, q)

		for step := 0; step < 30; step++ {
			switch rng.Intn(4) {
			case 0:
				atEnd := q.AtEnd()
				assert.Equal(t, !atEnd, q.Advance())
			case 1:
				atStart := q.AtStart()
				assert.Equal(t, !atStart, q.Retreat())
			case 2:
				before := q.Items()
				p := q.Position()
				q.RemoveCurrent()
				switch {
				case len(before) == 0:
					assert.Equal(t, 0, q.Len())
				case len(before) == 1:
					assert.Equal(t, 0, q.Position())
				case p < len(before)-1:
					assert.Equal(t, p, q.Position())
					cur, _ := q.Current()
					assert.Equal(t, before[p+1], cur, "中間の削除後は次の要素が現在になる")
				default:
					assert.Equal(t, len(before)-2, q.Position())
				}
				if len(before) > 0 {
					assert.Equal(t, len(before)-1, q.Len())
				}
			case 3:
				q.Load(items(load...))
				assert.Equal(t, 0, q.Position())
			}
			assertInvariants(t, q)
		}
	}
}
