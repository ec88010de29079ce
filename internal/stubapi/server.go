// internal/stubapi/server.go
package stubapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"lembris_client/internal/config"
	"lembris_client/internal/handlers"
	"lembris_client/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// APIPrefix はスタブAPIのルートパス (クライアントの既定 base_url と合わせる)
const APIPrefix = "/api"

// Server は開発・結合テスト用のインメモリREST API
type Server struct {
	store  *Store
	faults *faultInjector
	cfg    *config.Config
	logger *slog.Logger
}

func NewServer(cfg *config.Config, store *Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if store == nil {
		store = NewStore()
	}
	return &Server{
		store:  store,
		faults: &faultInjector{},
		cfg:    cfg,
		logger: logger,
	}
}

func (s *Server) Store() *Store {
	return s.store
}

// FailNext は method と path (APIPrefix を含む) に一致する次のリクエストを status で失敗させます
func (s *Server) FailNext(method, path string, status int) {
	s.faults.add(method, path, status)
}

// Router はミドルウェアとルーティングを組み立てます
func (s *Server) Router() http.Handler {
	secret := []byte(s.cfg.Stub.JWTSecret)
	issue := func(username string) (string, error) {
		return middleware.IssueToken(secret, username, s.cfg.Stub.TokenTTL)
	}

	authHandler := handlers.NewAuthHandler(s.store, issue)
	setHandler := handlers.NewSetHandler(s.store)
	cardHandler := handlers.NewCardHandler(s.store)
	noteHandler := handlers.NewNoteHandler(s.store)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(s.logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   s.cfg.CORS.AllowedOrigins,
		AllowedMethods:   s.cfg.CORS.AllowedMethods,
		AllowedHeaders:   s.cfg.CORS.AllowedHeaders,
		ExposedHeaders:   s.cfg.CORS.ExposedHeaders,
		AllowCredentials: s.cfg.CORS.AllowCredentials,
		MaxAge:           s.cfg.CORS.MaxAge,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(s.faults.middleware)

	r.Route(APIPrefix, func(r chi.Router) {
		r.Post("/login_usuario/", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.TokenAuthMiddleware(secret, s.cfg.API.AuthScheme))

			r.Route("/conjuntos", func(r chi.Router) {
				r.Get("/", setHandler.GetSets)
				r.Post("/", setHandler.PostSet)
				r.Patch("/{set_id}/", setHandler.PatchSet)
				r.Delete("/{set_id}/", setHandler.DeleteSet)
				r.Get("/{set_id}/cards_para_estudar/", setHandler.GetStudyItems)
			})

			r.Route("/flashcards", func(r chi.Router) {
				r.Post("/", cardHandler.PostCard)
				r.Get("/{card_id}/", cardHandler.GetCard)
				r.Patch("/{card_id}/", cardHandler.PatchCard)
				r.Delete("/{card_id}/", cardHandler.DeleteCard)
				r.Post("/{card_id}/avaliar/", cardHandler.PostGrade)
			})

			r.Route("/anotacoes", func(r chi.Router) {
				r.Get("/", noteHandler.GetNotes)
				r.Post("/", noteHandler.PostNote)
				r.Get("/{note_id}/", noteHandler.GetNote)
				r.Put("/{note_id}/", noteHandler.PutNote)
				r.Delete("/{note_id}/", noteHandler.DeleteNote)
			})
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}

// ListenAndServe は ctx が終わるまでサーブし、終了時はグレースフルに停止します
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Stub.Port,
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 65 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Stub API listening", slog.String("port", s.cfg.Stub.Port), slog.String("prefix", APIPrefix))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down stub API...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("Stub API forced to shutdown", slog.Any("error", err))
		return err
	}
	s.logger.Info("Stub API exited gracefully")
	return nil
}
