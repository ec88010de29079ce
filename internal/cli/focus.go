// internal/cli/focus.go
package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"lembris_client/internal/focus"

	"github.com/spf13/cobra"
)

func newFocusCommand(app *App) *cobra.Command {
	var focusMinutes, breakMinutes int
	var auto bool

	cmd := &cobra.Command{
		Use:   "focus",
		Short: "ポモドーロタイマーを動かします (Ctrl-C で終了)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			timer := focus.NewTimer(app.Config.Focus)
			if cmd.Flags().Changed("focus") || cmd.Flags().Changed("break") {
				if err := timer.SetDurations(focusMinutes, breakMinutes); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			ticker := time.NewTicker(time.Second)
			defer ticker.Stop()

			render := func(st focus.State) {
				fmt.Fprintf(app.Out, "\r%s  %s  %s ", focus.Format(st.Remaining), progressBar(st.Progress()), st.Status())
			}
			onFinish := func(ev focus.Event) {
				if ev.Finished == focus.PhaseFocus {
					fmt.Fprintln(app.Out, "\n⏰ 集中時間が終わりました。休憩しましょう。")
				} else {
					fmt.Fprintln(app.Out, "\n💪 休憩が終わりました。集中を再開しましょう。")
				}
				st := timer.State()
				if !auto || (ev.Next == focus.PhaseFocus && st.Session > st.MaxSessions) {
					cancel()
					return
				}
				timer.Start()
			}

			render(timer.State())
			timer.Start()
			err := timer.Run(ctx, ticker.C, render, onFinish)
			fmt.Fprintln(app.Out)
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&focusMinutes, "focus", app.Config.Focus.FocusMinutes, "集中時間 (分)")
	cmd.Flags().IntVar(&breakMinutes, "break", app.Config.Focus.BreakMinutes, "休憩時間 (分)")
	cmd.Flags().BoolVar(&auto, "auto", false, "フェーズ終了後も自動で次を始める")
	return cmd
}

func progressBar(percent float64) string {
	const width = 20
	filled := int(percent / 100 * width)
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}
