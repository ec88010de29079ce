// internal/config/constants.go
package config

// アプリケーション情報
const (
	AppName    = "lembris"
	AppVersion = "0.3.0"
)

// デフォルト設定値
const (
	DefaultAPIBaseURL   = "http://localhost:8000/api"
	DefaultAuthScheme   = "Token"
	DefaultLoginPage    = "index.html"
	DefaultStorageDir   = ".lembris"
	DefaultStorageFile  = "client.db"
	DefaultLogLevel     = "info"
	DefaultFocusMinutes = 25
	DefaultBreakMinutes = 5
	DefaultMaxSessions  = 4
	DefaultStubPort     = ":8000"
)

// クライアントストレージの固定キー
const (
	StorageKeyToken   = "user_token"
	StorageKeyUser    = "usuario_logado"
	StorageKeyPremium = "isPremium"
)
