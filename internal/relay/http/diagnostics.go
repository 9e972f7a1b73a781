package httpapi

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/analysis-relay/internal/relay/analysis"
	"github.com/radieske/analysis-relay/internal/relay/dto"
)

// sample é uma análise fixa usada para testar o caminho formatar -> notificar
type sample struct {
	origin  string
	persist bool // também grava no histórico
	payload func(now time.Time) dto.AnalysisPayload
}

var sampleNames = []string{"manual", "test-telegram", "test-webhook", "analizar"}

var samples = map[string]sample{
	"manual": {
		origin:  analysis.OriginManual,
		persist: true,
		payload: func(now time.Time) dto.AnalysisPayload {
			return dto.AnalysisPayload{
				Match:          "Real Madrid vs Barcelona",
				League:         "La Liga",
				Date:           dto.Text(now.Format("2006-01-02")),
				Time:           "21:00",
				HomeOdds:       "2.10",
				AwayOdds:       "3.40",
				DrawOdds:       "3.20",
				Recommendation: "Real Madrid win",
				Confidence:     "75%",
				Stake:          "3%",
				Value:          "YES",
				Bookmaker:      "Bet365",
			}
		},
	},
	"test-telegram": {
		origin: analysis.OriginTest,
		payload: func(now time.Time) dto.AnalysisPayload {
			return dto.AnalysisPayload{
				Match:          "Connection test",
				League:         "Diagnostics",
				Date:           dto.Text(now.Format("2006-01-02")),
				Time:           dto.Text(now.Format("15:04")),
				Recommendation: "No action: bot connectivity check",
			}
		},
	},
	"test-webhook": {
		origin:  analysis.OriginTest,
		persist: true,
		payload: func(now time.Time) dto.AnalysisPayload {
			return dto.AnalysisPayload{
				Match:          "Lakers vs Celtics",
				League:         "NBA",
				Date:           dto.Text(now.Format("2006-01-02")),
				Time:           "20:00",
				HomeOdds:       "1.85",
				AwayOdds:       "1.95",
				Recommendation: "Lakers ML",
				Confidence:     "80%",
				Stake:          "2%",
				Value:          "POSSIBLE",
				Bookmaker:      "Pinnacle",
			}
		},
	},
	"analizar": {
		origin: analysis.OriginAnalyzer,
		payload: func(now time.Time) dto.AnalysisPayload {
			return dto.AnalysisPayload{
				Match: "Robot running: analyzing today's matches",
				Date:  dto.Text(now.Format("2006-01-02")),
				Time:  dto.Text(now.Format("15:04")),
			}
		},
	},
}

// diagnostic monta o handler de um gatilho manual a partir da amostra nomeada
func (s *Server) diagnostic(name string) http.HandlerFunc {
	smp := samples[name]
	return func(w http.ResponseWriter, r *http.Request) {
		now := s.now()
		rec := analysis.FromPayload(smp.payload(now), smp.origin, now)

		resp := s.process(r.Context(), rec, smp.persist)
		resp.Sample = name

		s.log.Info("diagnostic trigger",
			zap.String("sample", name),
			zap.Bool("notified", resp.Notified),
			zap.Bool("stored", resp.Stored),
		)
		writeJSON(w, http.StatusOK, resp)
	}
}
