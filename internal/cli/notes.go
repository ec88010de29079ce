// internal/cli/notes.go
package cli

import (
	"fmt"

	"lembris_client/internal/model"

	"github.com/spf13/cobra"
)

func newNotesCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "ノート (anotações) を管理します",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "ノート一覧をプレビュー付きで表示します",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				notes, err := app.noteService()
				if err != nil {
					return err
				}
				list, err := notes.ListNotes(cmd.Context())
				if err != nil {
					return err
				}
				if len(list) == 0 {
					fmt.Fprintln(app.Out, "ノートはありません。")
					return nil
				}
				for _, n := range list {
					fmt.Fprintf(app.Out, "%-6s %s\n       %s\n", n.ID, n.Title, n.Preview())
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "show <noteId>",
			Short: "ノートを表示します",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				notes, err := app.noteService()
				if err != nil {
					return err
				}
				note, err := notes.GetNote(cmd.Context(), model.ID(args[0]))
				if err != nil {
					return err
				}
				fmt.Fprintf(app.Out, "# %s\n\n%s\n", note.Title, note.Content)
				return nil
			},
		},
		newNotesSaveCommand(app),
		&cobra.Command{
			Use:   "delete <noteId>",
			Short: "ノートを削除します",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				notes, err := app.noteService()
				if err != nil {
					return err
				}
				if err := notes.DeleteNote(cmd.Context(), model.ID(args[0])); err != nil {
					return err
				}
				fmt.Fprintf(app.Out, "🗑️ ノート %s を削除しました\n", args[0])
				return nil
			},
		},
	)
	return cmd
}

func newNotesSaveCommand(app *App) *cobra.Command {
	var id, title, content string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "ノートを作成します (--id 指定時は更新)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			notes, err := app.noteService()
			if err != nil {
				return err
			}
			note, err := notes.SaveNote(cmd.Context(), model.ID(id), &model.SaveNoteRequest{Title: title, Content: content})
			if err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "✅ ノート %s を保存しました\n", note.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "更新するノートのID")
	cmd.Flags().StringVarP(&title, "title", "t", "", "タイトル")
	cmd.Flags().StringVarP(&content, "content", "c", "", "本文")
	return cmd
}
