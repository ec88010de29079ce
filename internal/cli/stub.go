// internal/cli/stub.go
package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"lembris_client/internal/stubapi"

	"github.com/spf13/cobra"
)

func newStubCommand(app *App) *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "stub",
		Short: "開発用のインメモリAPIサーバーを起動します",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			store := stubapi.NewStore()
			if seed {
				if err := stubapi.Seed(ctx, store); err != nil {
					return err
				}
				fmt.Fprintf(app.Out, "デモユーザー: %s / %s\n", stubapi.DemoUsername, stubapi.DemoPassword)
			}
			return stubapi.NewServer(app.Config, store, app.Logger).ListenAndServe(ctx)
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", true, "デモ用のユーザーとデータを登録する")
	return cmd
}
