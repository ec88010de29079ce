// internal/importer/importer.go
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"lembris_client/internal/middleware"
	"lembris_client/internal/model"

	"github.com/xuri/excelize/v2"
)

// Options は取り込み元の列やシートの指定
type Options struct {
	SheetName      string // 空なら先頭シート (xlsx のみ)
	QuestionColumn string // 例: "A"
	AnswerColumn   string // 例: "B"
	StartRow       int    // 1始まり。2ならヘッダー行を読み飛ばす
}

func DefaultOptions() Options {
	return Options{
		QuestionColumn: "A",
		AnswerColumn:   "B",
		StartRow:       2,
	}
}

// Row はファイルから読んだ1枚分のカード
type Row struct {
	Line     int
	Question string
	Answer   string
}

// Result は取り込み結果
type Result struct {
	Processed int
	Created   int
	Skipped   int
	Errors    []string
}

// CardCreator はカードを1枚登録します (service.CardService が満たす)
type CardCreator interface {
	AddCard(ctx context.Context, req *model.CreateFlashcardRequest) (*model.Flashcard, error)
}

type Importer struct {
	cards CardCreator
	opts  Options
}

func New(cards CardCreator, opts Options) *Importer {
	return &Importer{cards: cards, opts: opts}
}

// Import はファイルを読み、各行をカードとして setID に登録します。
// 行単位の失敗は Result.Errors に積んで続行し、未ログインやキャンセルでは中断します。
func (im *Importer) Import(ctx context.Context, setID model.ID, path string) (*Result, error) {
	logger := middleware.GetLogger(ctx).With("set_id", setID, "file", filepath.Base(path))

	rows, err := ReadFile(path, im.opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Errors: make([]string, 0)}
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if row.Question == "" && row.Answer == "" {
			result.Skipped++
			continue
		}

		result.Processed++
		if row.Question == "" || row.Answer == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: question and answer are both required", row.Line))
			continue
		}

		_, err := im.cards.AddCard(ctx, &model.CreateFlashcardRequest{
			SetID:    setID,
			Question: row.Question,
			Answer:   row.Answer,
		})
		if err != nil {
			if errors.Is(err, model.ErrUnauthenticated) {
				return result, err
			}
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", row.Line, err))
			continue
		}
		result.Created++
	}

	logger.Info("Import finished", "processed", result.Processed, "created", result.Created, "errors", len(result.Errors))
	return result, nil
}

// ReadFile は拡張子に応じて xlsx か csv として読みます
func ReadFile(path string, opts Options) ([]Row, error) {
	qIdx, err := columnIndex(opts.QuestionColumn)
	if err != nil {
		return nil, err
	}
	aIdx, err := columnIndex(opts.AnswerColumn)
	if err != nil {
		return nil, err
	}
	if opts.StartRow < 1 {
		opts.StartRow = 1
	}

	var records [][]string
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		records, err = readCSV(path)
	} else {
		records, err = readExcel(path, opts.SheetName)
	}
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(records))
	for i, rec := range records {
		line := i + 1
		if line < opts.StartRow {
			continue
		}
		rows = append(rows, Row{
			Line:     line,
			Question: cell(rec, qIdx),
			Answer:   cell(rec, aIdx),
		})
	}
	return rows, nil
}

func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("importer: open excel file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("importer: read sheet %q: %w", sheet, err)
	}
	return records, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("importer: open csv file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records [][]string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("importer: read csv: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// columnIndex は "A" → 0 のように0始まりの列番号にします
func columnIndex(column string) (int, error) {
	n, err := excelize.ColumnNameToNumber(strings.TrimSpace(column))
	if err != nil {
		return 0, model.NewAppError("VALIDATION_ERROR", fmt.Sprintf("列の指定が正しくありません: %q", column), "", errors.Join(model.ErrInvalidInput, err))
	}
	return n - 1, nil
}

func cell(rec []string, idx int) string {
	if idx < len(rec) {
		return strings.TrimSpace(rec[idx])
	}
	return ""
}
