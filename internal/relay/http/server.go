package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/radieske/analysis-relay/internal/relay/history"
	"github.com/radieske/analysis-relay/internal/relay/odds"
	"github.com/radieske/analysis-relay/internal/relay/telegram"
	"github.com/radieske/analysis-relay/internal/relay/ws"
	"github.com/radieske/analysis-relay/internal/shared/config"
	"github.com/radieske/analysis-relay/pkg/contracts/events"
)

const Version = "2.1.0"

// Sender envia o texto formatado ao bot; *telegram.Client implementa
type Sender interface {
	Send(ctx context.Context, text string) telegram.Result
	Configured() bool
}

// Publisher publica a análise ingerida; opcional
type Publisher interface {
	PublishAnalysis(ctx context.Context, e events.AnalysisReceived) error
}

// Hooks são callbacks de métricas; qualquer um pode ser nil
type Hooks struct {
	OnIngested   func(origin string)
	OnNotify     func(ok bool)
	OnStoreError func()
	OnOddsFetch  func(result string) // ok | cached | failed
}

// Deps agrupa as dependências do servidor; Odds, Hub e Publisher são opcionais
type Deps struct {
	Store     *history.Store
	Sender    Sender
	Odds      *odds.Service
	Hub       *ws.Hub
	Publisher Publisher
	Hooks     Hooks
}

// Server expõe o webhook, o histórico e os gatilhos de diagnóstico
type Server struct {
	cfg   config.Config
	log   *zap.Logger
	store *history.Store
	send  Sender
	odds  *odds.Service
	hub   *ws.Hub
	publ  Publisher
	hooks Hooks
	now   func() time.Time
}

func NewServer(cfg config.Config, log *zap.Logger, d Deps) *Server {
	return &Server{
		cfg:   cfg,
		log:   log,
		store: d.Store,
		send:  d.Sender,
		odds:  d.Odds,
		hub:   d.Hub,
		publ:  d.Publisher,
		hooks: d.Hooks,
		now:   time.Now,
	}
}

// Router retorna o roteador HTTP com todos os endpoints
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(s.recoverJSON)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/", s.status)
	r.Get("/health", s.health)
	r.Post("/webhook", s.webhook)         // ingestão do fluxo de automação
	r.Get("/historial", s.historyEntries) // últimos N + resumo
	r.Get("/estadisticas", s.statistics)  // agregados
	r.Get("/reset", s.reset)              // limpa o histórico
	r.Get("/nba", s.nbaOdds)              // odds ao vivo -> telegram

	for _, name := range sampleNames {
		h := s.diagnostic(name)
		r.Get("/"+name, h)
		r.Post("/"+name, h)
	}

	if s.hub != nil {
		r.Get("/ws", s.hub.HandleWS)
	}

	return r
}

// routes lista as rotas para o status em "/"
func (s *Server) routes() []string {
	out := []string{
		"GET /", "GET /health", "POST /webhook", "GET /historial",
		"GET /estadisticas", "GET /reset", "GET /nba",
	}
	for _, name := range sampleNames {
		out = append(out, "GET|POST /"+name)
	}
	if s.hub != nil {
		out = append(out, "GET /ws")
	}
	return out
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
