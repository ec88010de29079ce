// internal/cli/app.go
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"lembris_client/internal/config"
	"lembris_client/internal/gateway"
	"lembris_client/internal/middleware"
	"lembris_client/internal/repository"
	"lembris_client/internal/service"

	"gorm.io/gorm"
)

// App はコマンド間で共有する依存関係。DB やゲートウェイは初回利用時に作ります。
type App struct {
	Config *config.Config
	Logger *slog.Logger
	In     io.Reader
	Out    io.Writer
	Err    io.Writer

	// HTTPClient を指定するとゲートウェイはそれを使います (テスト用)
	HTTPClient *http.Client

	db    *gorm.DB
	creds *service.CredentialStore
	gw    *gateway.Gateway
}

func (a *App) open() error {
	if a.gw != nil {
		return nil
	}
	db, err := repository.NewDB(a.Config.Storage.Path, a.Logger)
	if err != nil {
		return fmt.Errorf("ローカルストレージを開けませんでした: %w", err)
	}
	a.db = db
	a.creds = service.NewCredentialStore(db, repository.NewGormStorageRepository())

	client := a.HTTPClient
	if client == nil {
		client = &http.Client{
			Timeout:   a.Config.API.Timeout,
			Transport: middleware.NewLoggingTransport(http.DefaultTransport, a.Logger),
		}
	}
	a.gw = gateway.New(a.creds, gateway.RedirectFunc(a.redirectToLogin),
		gateway.WithHTTPClient(client),
		gateway.WithBaseURL(a.Config.API.BaseURL),
		gateway.WithAuthScheme(a.Config.API.AuthScheme),
	)
	return nil
}

// redirectToLogin はブラウザ版のログインページ遷移の代わりにログインを促します
func (a *App) redirectToLogin(ctx context.Context) {
	fmt.Fprintf(a.Err, "ログインが必要です。`%s login` を実行してください。(%s)\n", config.AppName, a.Config.API.LoginPage)
}

// Close はローカルストレージを閉じます
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	a.db, a.gw, a.creds = nil, nil, nil
	return sqlDB.Close()
}

func (a *App) authService() (service.AuthService, error) {
	if err := a.open(); err != nil {
		return nil, err
	}
	return service.NewAuthService(a.gw, a.creds), nil
}

func (a *App) cardService() (service.CardService, error) {
	if err := a.open(); err != nil {
		return nil, err
	}
	return service.NewCardService(a.gw), nil
}

func (a *App) setService() (service.SetService, error) {
	cards, err := a.cardService()
	if err != nil {
		return nil, err
	}
	return service.NewSetService(a.gw, cards), nil
}

func (a *App) noteService() (service.NoteService, error) {
	if err := a.open(); err != nil {
		return nil, err
	}
	return service.NewNoteService(a.gw), nil
}

func (a *App) reviewService() (service.ReviewService, error) {
	if err := a.open(); err != nil {
		return nil, err
	}
	return service.NewReviewService(a.gw), nil
}
