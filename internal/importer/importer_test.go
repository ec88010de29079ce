package importer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"lembris_client/internal/gateway"
	"lembris_client/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// fakeCards は登録されたカードを記録し、failOn の質問で失敗します
type fakeCards struct {
	created []model.CreateFlashcardRequest
	failOn  map[string]error
}

func (f *fakeCards) AddCard(ctx context.Context, req *model.CreateFlashcardRequest) (*model.Flashcard, error) {
	if err, ok := f.failOn[req.Question]; ok {
		return nil, err
	}
	f.created = append(f.created, *req)
	return &model.Flashcard{ID: model.ID("1"), SetID: req.SetID, Question: req.Question, Answer: req.Answer}, nil
}

func writeXLSX(t *testing.T, sheet string, rows [][]string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	for i, row := range rows {
		for j, v := range row {
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, name, v))
		}
	}
	path := filepath.Join(t.TempDir(), "cards.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cards.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadFile(t *testing.T) {
	xlsx := writeXLSX(t, "Vocab", [][]string{
		{"pergunta", "resposta"},
		{"casa", "house"},
		{"", ""},
		{" gato ", "cat"},
	})
	csvPath := writeCSV(t, "pergunta,resposta\ncasa,house\n,\n gato ,cat\n")

	xlsxOpts := DefaultOptions()
	xlsxOpts.SheetName = "Vocab"

	tests := []struct {
		name string
		path string
		opts Options
	}{
		{"xlsx", xlsx, xlsxOpts},
		{"csv", csvPath, DefaultOptions()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := ReadFile(tt.path, tt.opts)
			require.NoError(t, err)
			require.Len(t, rows, 3)
			assert.Equal(t, Row{Line: 2, Question: "casa", Answer: "house"}, rows[0])
			assert.Equal(t, Row{Line: 3}, rows[1])
			assert.Equal(t, Row{Line: 4, Question: "gato", Answer: "cat"}, rows[2])
		})
	}
}

func TestReadFile_Columns(t *testing.T) {
	path := writeCSV(t, "x,resposta,y,pergunta\n1,house,2,casa\n")
	opts := Options{QuestionColumn: "D", AnswerColumn: "B", StartRow: 2}

	rows, err := ReadFile(path, opts)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "casa", rows[0].Question)
	assert.Equal(t, "house", rows[0].Answer)

	_, err = ReadFile(path, Options{QuestionColumn: "1", AnswerColumn: "B"})
	assert.True(t, errors.Is(err, model.ErrInvalidInput))
}

func TestImporter_Import(t *testing.T) {
	ctx := context.Background()
	path := writeXLSX(t, "Sheet1", [][]string{
		{"pergunta", "resposta"},
		{"casa", "house"},
		{"sem resposta", ""},
		{"", ""},
		{"quebra", "breaks"},
		{"gato", "cat"},
	})

	cards := &fakeCards{failOn: map[string]error{
		"quebra": model.NewAPIError(500, []byte(`{"detail":"boom"}`)),
	}}
	result, err := New(cards, DefaultOptions()).Import(ctx, "42", path)
	require.NoError(t, err)

	assert.Equal(t, 4, result.Processed)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "Row 3")
	assert.Contains(t, result.Errors[1], "Row 5")

	require.Len(t, cards.created, 2)
	assert.Equal(t, model.ID("42"), cards.created[0].SetID)
	assert.Equal(t, "gato", cards.created[1].Question)
}

func TestImporter_StopsWhenUnauthenticated(t *testing.T) {
	path := writeCSV(t, "q,a\nfirst,1\nsecond,2\n")
	cards := &fakeCards{failOn: map[string]error{"first": model.ErrUnauthenticated}}

	result, err := New(cards, DefaultOptions()).Import(context.Background(), "1", path)
	assert.True(t, errors.Is(err, model.ErrUnauthenticated))
	assert.Equal(t, 1, result.Processed)
	assert.Empty(t, cards.created)
}

func TestImporter_TransportErrorsAreCollected(t *testing.T) {
	path := writeCSV(t, "q,a\nfirst,1\nsecond,2\n")
	cards := &fakeCards{failOn: map[string]error{
		"first": &gateway.TransportError{Method: "POST", URL: "/flashcards/", Err: errors.New("connection reset")},
	}}

	result, err := New(cards, DefaultOptions()).Import(context.Background(), "1", path)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Len(t, result.Errors, 1)
}

func TestImporter_MissingFile(t *testing.T) {
	_, err := New(&fakeCards{}, DefaultOptions()).Import(context.Background(), "1", filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.Error(t, err)
}
