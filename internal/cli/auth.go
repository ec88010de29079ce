// internal/cli/auth.go
package cli

import (
	"bufio"
	"errors"
	"fmt"

	"lembris_client/internal/model"

	"github.com/spf13/cobra"
)

func newLoginCommand(app *App) *cobra.Command {
	var user, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "ユーザー名またはメールアドレスでログインします",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(app.In)
			var err error
			if user == "" {
				if user, err = readLine(app, reader, "ユーザー名またはメール: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = readLine(app, reader, "パスワード: "); err != nil {
					return err
				}
			}

			auth, err := app.authService()
			if err != nil {
				return err
			}
			profile, err := auth.Login(cmd.Context(), &model.LoginRequest{UsernameOrEmail: user, Password: password})
			if err != nil {
				var apiErr *model.APIError
				if errors.As(err, &apiErr) && apiErr.Code == "LOGIN_FAILED" {
					return fmt.Errorf("ログインに失敗しました: %s", apiErr.Message)
				}
				return err
			}

			fmt.Fprintf(app.Out, "✅ ようこそ、%s さん\n", profile.Name)
			if profile.IsPremium {
				fmt.Fprintln(app.Out, "⭐ プレミアム会員")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&user, "user", "u", "", "ユーザー名またはメールアドレス")
	cmd.Flags().StringVarP(&password, "password", "p", "", "パスワード (省略時は入力を求めます)")
	return cmd
}

func newLogoutCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "保存されたログイン情報を削除します",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			auth, err := app.authService()
			if err != nil {
				return err
			}
			if err := auth.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(app.Out, "👋 ログアウトしました")
			return nil
		},
	}
}

func newWhoamiCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "ログイン中のユーザーを表示します",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			auth, err := app.authService()
			if err != nil {
				return err
			}
			profile, err := auth.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}
			premium, err := auth.IsPremium(cmd.Context())
			if err != nil {
				return err
			}

			name := profile.Name
			if name == "" {
				name = "(不明)"
			}
			fmt.Fprintf(app.Out, "ユーザー: %s\n", name)
			if profile.Email != "" {
				fmt.Fprintf(app.Out, "メール:   %s\n", profile.Email)
			}
			fmt.Fprintf(app.Out, "プレミアム: %t\n", premium)
			return nil
		},
	}
}

func newPremiumCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "premium",
		Short: "プレミアムの状態を管理します",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "activate",
		Short: "この端末でプレミアムを有効にします",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			auth, err := app.authService()
			if err != nil {
				return err
			}
			if err := auth.ActivatePremium(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(app.Out, "⭐ プレミアムを有効にしました")
			return nil
		},
	})
	return cmd
}
