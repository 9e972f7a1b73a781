package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/radieske/analysis-relay/internal/relay/analysis"
	"github.com/radieske/analysis-relay/internal/relay/odds"
)

const (
	sportNBA  = "basketball_nba"
	leagueNBA = "NBA"
)

// OddsResponse é a resposta de /nba
type OddsResponse struct {
	Status      string            `json:"status"`
	Sport       string            `json:"sport"`
	Games       []analysis.Record `json:"games"`
	Notified    bool              `json:"notified"`
	NotifyError string            `json:"notify_error,omitempty"`
	Cached      bool              `json:"cached"`
}

// nbaOdds busca as odds da NBA, envia um resumo ao bot e devolve os jogos
// Não grava no histórico
func (s *Server) nbaOdds(w http.ResponseWriter, r *http.Request) {
	if !s.odds.Configured() {
		writeError(w, http.StatusServiceUnavailable, odds.ErrNoAPIKey.Error())
		return
	}

	games, cached, err := s.odds.Games(r.Context(), sportNBA)
	if err != nil {
		s.oddsFetched("failed")
		s.log.Warn("odds fetch failed", zap.String("sport", sportNBA), zap.Error(err))
		status := http.StatusBadGateway
		if errors.Is(err, odds.ErrNoAPIKey) {
			status = http.StatusServiceUnavailable
		}
		writeError(w, status, err.Error())
		return
	}
	if cached {
		s.oddsFetched("cached")
	} else {
		s.oddsFetched("ok")
	}

	now := s.now()
	recs := odds.ToRecords(games, leagueNBA, s.cfg.OddsMaxGames, now)
	resp := OddsResponse{Status: "ok", Sport: sportNBA, Games: recs, Cached: cached}

	if len(recs) == 0 {
		resp.NotifyError = "no games available"
		writeJSON(w, http.StatusOK, resp)
		return
	}

	title := fmt.Sprintf("🏀 NBA odds (%d games)", len(recs))
	res := s.send.Send(r.Context(), analysis.FormatBatch(title, recs, now))
	if s.hooks.OnNotify != nil {
		s.hooks.OnNotify(res.OK)
	}
	resp.Notified = res.OK
	resp.NotifyError = res.Error

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) oddsFetched(result string) {
	if s.hooks.OnOddsFetch != nil {
		s.hooks.OnOddsFetch(result)
	}
}
