// internal/cli/cards.go
package cli

import (
	"fmt"

	"lembris_client/internal/importer"
	"lembris_client/internal/model"

	"github.com/spf13/cobra"
)

func newCardsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cards",
		Short: "フラッシュカードを管理します",
	}
	cmd.AddCommand(
		newCardsAddCommand(app),
		newCardsEditCommand(app),
		newCardsDeleteCommand(app),
		newCardsImportCommand(app),
	)
	return cmd
}

func newCardsAddCommand(app *App) *cobra.Command {
	var question, answer string

	cmd := &cobra.Command{
		Use:   "add <setId>",
		Short: "セットにカードを追加します",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := app.cardService()
			if err != nil {
				return err
			}
			card, err := cards.AddCard(cmd.Context(), &model.CreateFlashcardRequest{
				SetID:    model.ID(args[0]),
				Question: question,
				Answer:   answer,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "✅ カード %s を追加しました\n", card.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&question, "question", "q", "", "質問")
	cmd.Flags().StringVarP(&answer, "answer", "a", "", "答え")
	return cmd
}

func newCardsEditCommand(app *App) *cobra.Command {
	var question, answer string

	cmd := &cobra.Command{
		Use:   "edit <cardId>",
		Short: "カードの質問と答えを変更します (省略した項目は現在の値のまま)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := app.cardService()
			if err != nil {
				return err
			}
			id := model.ID(args[0])

			current, err := cards.GetCard(cmd.Context(), id)
			if err != nil {
				return err
			}
			req := &model.EditFlashcardRequest{Question: current.Question, Answer: current.Answer}
			if cmd.Flags().Changed("question") {
				req.Question = question
			}
			if cmd.Flags().Changed("answer") {
				req.Answer = answer
			}

			card, err := cards.EditCard(cmd.Context(), id, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "✏️ カード %s を更新しました\n  Q: %s\n  A: %s\n", card.ID, card.Question, card.Answer)
			return nil
		},
	}
	cmd.Flags().StringVarP(&question, "question", "q", "", "新しい質問")
	cmd.Flags().StringVarP(&answer, "answer", "a", "", "新しい答え")
	return cmd
}

func newCardsDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <cardId>",
		Short: "カードを削除します",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := app.cardService()
			if err != nil {
				return err
			}
			if err := cards.DeleteCard(cmd.Context(), model.ID(args[0])); err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "🗑️ カード %s を削除しました\n", args[0])
			return nil
		},
	}
}

func newCardsImportCommand(app *App) *cobra.Command {
	opts := importer.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "import <setId> <file.xlsx|file.csv>",
		Short: "Excel または CSV からカードを一括登録します",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := app.cardService()
			if err != nil {
				return err
			}
			result, err := importer.New(cards, opts).Import(cmd.Context(), model.ID(args[0]), args[1])
			if result != nil {
				fmt.Fprintf(app.Out, "処理: %d  登録: %d  空行: %d  エラー: %d\n",
					result.Processed, result.Created, result.Skipped, len(result.Errors))
				for _, e := range result.Errors {
					fmt.Fprintln(app.Out, "  ⚠️", e)
				}
			}
			return err
		},
	}
	cmd.Flags().StringVar(&opts.SheetName, "sheet", opts.SheetName, "シート名 (xlsx, 省略時は先頭シート)")
	cmd.Flags().StringVar(&opts.QuestionColumn, "question-col", opts.QuestionColumn, "質問の列")
	cmd.Flags().StringVar(&opts.AnswerColumn, "answer-col", opts.AnswerColumn, "答えの列")
	cmd.Flags().IntVar(&opts.StartRow, "start-row", opts.StartRow, "読み込み開始行 (1始まり)")
	return cmd
}
