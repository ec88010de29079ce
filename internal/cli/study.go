// internal/cli/study.go
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"lembris_client/internal/model"
	"lembris_client/internal/session"

	"github.com/spf13/cobra"
)

const studyHelp = "[f] 裏返す  [n] 次へ  [p] 前へ  [1] ruim  [2] ok  [3] perfeito  [d] 削除  [r] 再読み込み  [q] 終了"

// terminalView は session.View を端末に描画します
type terminalView struct {
	out     io.Writer
	item    model.StudyItem
	flipped bool
}

func (v *terminalView) ShowItem(item model.StudyItem, position, total int) {
	v.item = item
	v.flipped = false
	header := fmt.Sprintf("[%d/%d]", position+1, total)
	if item.SetName != "" {
		header += " " + item.SetName
	}
	fmt.Fprintf(v.out, "\n%s\n  Q: %s\n", header, item.Question)
}

func (v *terminalView) ShowEmpty() {
	fmt.Fprintln(v.out, "\n🎉 復習するカードはもうありません。")
}

func (v *terminalView) SetNavigation(prev, next bool) {
	var keys []string
	if prev {
		keys = append(keys, "← p")
	}
	if next {
		keys = append(keys, "n →")
	}
	if len(keys) > 0 {
		fmt.Fprintf(v.out, "  (%s)\n", strings.Join(keys, "  "))
	}
}

func (v *terminalView) SetFlipped(flipped bool) {
	switch {
	case flipped:
		fmt.Fprintf(v.out, "  A: %s\n", v.item.Answer)
	case v.flipped:
		// 裏から表へ戻したときだけ質問を出し直す
		fmt.Fprintf(v.out, "  (表) Q: %s\n", v.item.Question)
	}
	v.flipped = flipped
}

func (v *terminalView) ShowMessage(msg string) {
	fmt.Fprintln(v.out, "  ⚠️", msg)
}

func newStudyCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "study <setId>",
		Short: "セットの復習セッションを始めます",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			review, err := app.reviewService()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			setID := model.ID(args[0])

			c := session.NewController(review, &terminalView{out: app.Out}, app.Logger)
			defer c.Stop()

			if err := c.StartSession(ctx, setID); err != nil {
				return err
			}
			if c.Snapshot().State == session.StateEmpty {
				return nil
			}
			fmt.Fprintln(app.Out, studyHelp)

			scanner := bufio.NewScanner(app.In)
			for scanner.Scan() {
				key := strings.ToLower(strings.TrimSpace(scanner.Text()))
				switch key {
				case "f":
					c.Flip()
				case "n":
					if !c.Navigate(session.Forward) {
						fmt.Fprintln(app.Out, "  これが最後のカードです。")
					}
				case "p":
					if !c.Navigate(session.Backward) {
						fmt.Fprintln(app.Out, "  これが最初のカードです。")
					}
				case "1", "2", "3":
					grade, _ := model.ParseGrade(key)
					if err := c.SubmitFeedback(ctx, grade); err != nil {
						if abort := studyAbort(err); abort != nil {
							return abort
						}
					}
				case "d":
					if err := c.DeleteCurrent(ctx); err != nil {
						if abort := studyAbort(err); abort != nil {
							return abort
						}
					}
				case "r":
					if err := c.StartSession(ctx, setID); err != nil {
						return err
					}
				case "q":
					fmt.Fprintln(app.Out, "セッションを終了しました。")
					return nil
				case "":
				default:
					fmt.Fprintln(app.Out, studyHelp)
				}

				if c.Snapshot().State == session.StateEmpty {
					return nil
				}
			}
			return scanner.Err()
		},
	}
}

// studyAbort はセッションを続けられないエラーだけを返します。
// 送信失敗はカードが残るので再試行できます (メッセージは View が表示済み)。
func studyAbort(err error) error {
	if errors.Is(err, model.ErrUnauthenticated) {
		return err
	}
	return nil
}
