// internal/cli/root.go
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"lembris_client/internal/config"
	"lembris_client/internal/middleware"
	"lembris_client/internal/model"

	"github.com/spf13/cobra"
)

// NewRootCommand はすべてのサブコマンドを持つルートコマンドを作ります
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           config.AppName,
		Short:         "Lembris study client",
		Long:          `Lembris のフラッシュカード・ノート・集中タイマーを端末から使うクライアントです。`,
		Version:       config.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(app.In)
	root.SetOut(app.Out)
	root.SetErr(app.Err)

	root.AddCommand(
		newLoginCommand(app),
		newLogoutCommand(app),
		newWhoamiCommand(app),
		newPremiumCommand(app),
		newStudyCommand(app),
		newSetsCommand(app),
		newCardsCommand(app),
		newNotesCommand(app),
		newFocusCommand(app),
		newStubCommand(app),
	)
	return root
}

// Execute はコマンドを実行し、エラーを利用者向けに表示します
func Execute(ctx context.Context, app *App, args []string) error {
	root := NewRootCommand(app)
	root.SetArgs(args)

	ctx = middleware.WithLogger(ctx, app.Logger)
	err := root.ExecuteContext(ctx)
	if closeErr := app.Close(); closeErr != nil {
		app.Logger.Warn("Failed to close local storage", "error", closeErr)
	}
	if err != nil {
		fmt.Fprintln(app.Err, "❌", describeError(err))
	}
	return err
}

// describeError はエラーを利用者向けの1行にします
func describeError(err error) string {
	var apiErr *model.APIError
	var appErr *model.AppError
	switch {
	case errors.Is(err, model.ErrUnauthenticated):
		return "ログインしていません。"
	case errors.As(err, &apiErr):
		return fmt.Sprintf("サーバーエラー (%d): %s", apiErr.StatusCode, apiErr.Message)
	case errors.Is(err, model.ErrTransport):
		return "サーバーに接続できませんでした: " + err.Error()
	case errors.As(err, &appErr):
		return appErr.Detail.Message
	default:
		return err.Error()
	}
}

// readLine はプロンプトを表示して1行読みます
func readLine(app *App, reader *bufio.Reader, prompt string) (string, error) {
	fmt.Fprint(app.Out, prompt)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
