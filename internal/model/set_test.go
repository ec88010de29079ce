// internal/model/set_test.go
package model

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSetFilter_Match(t *testing.T) {
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		ts := now.Add(-d)
		return &ts
	}

	fav := StudySet{ID: "1", Name: "fav", Favorite: true, CreatedAt: at(30 * 24 * time.Hour)}
	fresh := StudySet{ID: "2", Name: "fresh", CreatedAt: at(2 * time.Hour)}
	edge := StudySet{ID: "3", Name: "edge", CreatedAt: at(7 * 24 * time.Hour)}
	justOver := StudySet{ID: "4", Name: "over", CreatedAt: at(7*24*time.Hour + time.Minute)}
	undated := StudySet{ID: "5", Name: "undated"}
	soon := StudySet{ID: "6", Name: "soon", CreatedAt: at(-48 * time.Hour)}
	farAhead := StudySet{ID: "7", Name: "far-ahead", CreatedAt: at(-10 * 24 * time.Hour)}

	tests := []struct {
		filter SetFilter
		set    StudySet
		want   bool
	}{
		{SetFilterAll, undated, true},
		{SetFilterFavorites, fav, true},
		{SetFilterFavorites, fresh, false},
		{SetFilterRecent, fresh, true},
		{SetFilterRecent, edge, true},
		{SetFilterRecent, justOver, false},
		{SetFilterRecent, undated, true},
		{SetFilterRecent, soon, true},
		{SetFilterRecent, farAhead, false},
		{SetFilterRecent, fav, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.filter)+"/"+tt.set.Name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(tt.set, now))
		})
	}
}

func TestStudySet_DaysOld(t *testing.T) {
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		ts := now.Add(d)
		return &ts
	}

	tests := []struct {
		name      string
		createdAt *time.Time
		want      int
	}{
		{"作成日時なしは0日", nil, 0},
		{"同時刻は0日", at(0), 0},
		{"1時間前は切り上げて1日", at(-time.Hour), 1},
		{"3日前", at(-72 * time.Hour), 3},
		{"未来の日時も差の絶対値", at(48 * time.Hour), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StudySet{CreatedAt: tt.createdAt}.DaysOld(now))
		})
	}
}

func TestParseSetFilter(t *testing.T) {
	f, err := ParseSetFilter("")
	assert.NoError(t, err)
	assert.Equal(t, SetFilterAll, f)

	f, err = ParseSetFilter("recent")
	assert.NoError(t, err)
	assert.Equal(t, SetFilterRecent, f)

	_, err = ParseSetFilter("starred")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNote_Preview(t *testing.T) {
	short := Note{Content: "curta"}
	assert.Equal(t, "curta", short.Preview())

	long := Note{Content: strings.Repeat("á", 120)}
	assert.Equal(t, strings.Repeat("á", 100)+"...", long.Preview())
}
