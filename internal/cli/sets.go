// internal/cli/sets.go
package cli

import (
	"fmt"
	"time"

	"lembris_client/internal/model"

	"github.com/spf13/cobra"
)

func newSetsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sets",
		Short: "セット (conjuntos) を管理します",
	}
	cmd.AddCommand(
		newSetsListCommand(app),
		newSetsCreateCommand(app),
		newSetsFavoriteCommand(app),
		newSetsDeleteCommand(app),
	)
	return cmd
}

func newSetsListCommand(app *App) *cobra.Command {
	var filterFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "セット一覧を表示します",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := model.ParseSetFilter(filterFlag)
			if err != nil {
				return err
			}
			sets, err := app.setService()
			if err != nil {
				return err
			}
			list, err := sets.ListSets(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(app.Out, "セットはありません。")
				return nil
			}

			now := time.Now()
			for _, s := range list {
				star := " "
				if s.Favorite {
					star = "★"
				}
				age := ""
				if s.CreatedAt != nil {
					age = fmt.Sprintf("  %d日前", s.DaysOld(now))
				}
				fmt.Fprintf(app.Out, "%s %-6s %s (%d枚)%s\n", star, s.ID, s.Name, s.CardCount, age)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&filterFlag, "filter", "f", string(model.SetFilterAll), "all | favorites | recent")
	return cmd
}

func newSetsCreateCommand(app *App) *cobra.Command {
	var question, answer string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "最初のカードと一緒にセットを作ります",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sets, err := app.setService()
			if err != nil {
				return err
			}
			set, card, err := sets.CreateSetWithCard(cmd.Context(), &model.CreateSetRequest{
				Name:     args[0],
				Question: question,
				Answer:   answer,
			})
			if err != nil {
				if set != nil {
					fmt.Fprintf(app.Err, "⚠️ セット %s は作成されましたが、カードの登録に失敗しました\n", set.ID)
				}
				return err
			}
			fmt.Fprintf(app.Out, "✅ セット %s を作成しました (カード %s)\n", set.ID, card.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&question, "question", "q", "", "最初のカードの質問")
	cmd.Flags().StringVarP(&answer, "answer", "a", "", "最初のカードの答え")
	return cmd
}

func newSetsFavoriteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "favorite <setId>",
		Short: "お気に入りを切り替えます",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sets, err := app.setService()
			if err != nil {
				return err
			}
			id := model.ID(args[0])

			list, err := sets.ListSets(cmd.Context(), model.SetFilterAll)
			if err != nil {
				return err
			}
			var current *model.StudySet
			for i := range list {
				if list[i].ID == id {
					current = &list[i]
					break
				}
			}
			if current == nil {
				return model.NewAppError("NOT_FOUND", fmt.Sprintf("セット %s が見つかりません。", id), "", model.ErrNotFound)
			}

			fav, err := sets.ToggleFavorite(cmd.Context(), id, current.Favorite)
			if err != nil {
				return err
			}
			if fav {
				fmt.Fprintf(app.Out, "★ %s をお気に入りに追加しました\n", current.Name)
			} else {
				fmt.Fprintf(app.Out, "☆ %s をお気に入りから外しました\n", current.Name)
			}
			return nil
		},
	}
}

func newSetsDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <setId>",
		Short: "セットを削除します",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sets, err := app.setService()
			if err != nil {
				return err
			}
			if err := sets.DeleteSet(cmd.Context(), model.ID(args[0])); err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "🗑️ セット %s を削除しました\n", args[0])
			return nil
		},
	}
}
