package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/analysis-relay/internal/relay/analysis"
	"github.com/radieske/analysis-relay/internal/relay/dto"
	"github.com/radieske/analysis-relay/internal/relay/history"
	"github.com/radieske/analysis-relay/internal/relay/ws"
	"github.com/radieske/analysis-relay/pkg/contracts/events"
)

const (
	maxBodyBytes        = 1 << 20
	defaultHistoryLimit = 20
	publishTimeout      = 2 * time.Second
)

// HistoryResponse é a resposta de /historial
type HistoryResponse struct {
	Total   int               `json:"total"`
	Entries []analysis.Record `json:"entries"`
	Summary history.Summary   `json:"summary"`
}

// status resume versão, configuração e rotas
func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.StatusResponse{
		Service:            s.cfg.ServiceName,
		Version:            Version,
		Status:             "running",
		TelegramConfigured: s.send.Configured(),
		OddsConfigured:     s.odds.Configured(),
		HistoryMax:         s.store.Max(),
		MinConfidence:      s.cfg.MinConfidence,
		Routes:             s.routes(),
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.HealthResponse{
		Status:    "ok",
		Port:      s.cfg.HTTPPort,
		Timestamp: s.now().UTC().Format(time.RFC3339),
	})
}

// webhook recebe uma análise do fluxo de automação
// JSON inválido não tem efeito colateral; falha do bot não impede a gravação
func (s *Server) webhook(w http.ResponseWriter, r *http.Request) {
	p, err := decodePayload(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	rec := analysis.FromPayload(p, analysis.OriginAutomation, s.now())
	resp := s.process(r.Context(), rec, true)

	s.log.Info("analysis ingested",
		zap.String("id", rec.ID),
		zap.String("match", rec.Match),
		zap.String("origin", rec.Origin),
		zap.Bool("notified", resp.Notified),
		zap.Bool("stored", resp.Stored),
		zap.Int("total", resp.Total),
	)
	writeJSON(w, http.StatusOK, resp)
}

// decodePayload exige exatamente um objeto JSON no corpo
// null, listas, escalares e conteúdo depois do objeto são rejeitados
func decodePayload(body io.Reader) (dto.AnalysisPayload, error) {
	var p dto.AnalysisPayload

	b, err := io.ReadAll(body)
	if err != nil {
		return p, err
	}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '{' {
		return p, errors.New("body must be a JSON object")
	}
	if err := json.Unmarshal(b, &p); err != nil {
		return p, err
	}
	return p, nil
}

// process é o pipeline formatar -> notificar -> gravar
// Notificação e gravação são independentes e cada uma reporta o próprio resultado
func (s *Server) process(ctx context.Context, rec analysis.Record, persist bool) dto.WebhookResponse {
	res := s.send.Send(ctx, analysis.Format(rec, s.now()))
	if s.hooks.OnNotify != nil {
		s.hooks.OnNotify(res.OK)
	}
	if !res.OK {
		s.log.Warn("notification failed", zap.String("id", rec.ID), zap.String("reason", res.Error))
	}

	resp := dto.WebhookResponse{
		Status:      "ok",
		ID:          rec.ID,
		Match:       rec.Match,
		Notified:    res.OK,
		NotifyError: res.Error,
	}

	if !persist {
		_, resp.Total = s.store.Read(0)
		return resp
	}

	if s.hooks.OnIngested != nil {
		s.hooks.OnIngested(rec.Origin)
	}

	total, err := s.store.Append(rec)
	resp.Total = total
	if err != nil {
		resp.StorageError = err.Error()
		if s.hooks.OnStoreError != nil {
			s.hooks.OnStoreError()
		}
	} else {
		resp.Stored = true
	}

	s.fanOut(rec, res.OK)
	return resp
}

// fanOut repassa a análise aos assinantes do websocket e ao kafka, quando configurados
func (s *Server) fanOut(rec analysis.Record, notified bool) {
	if s.hub != nil {
		s.hub.Broadcast(ws.RecordUpdate{League: rec.League, Record: rec})
	}
	if s.publ == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	err := s.publ.PublishAnalysis(ctx, events.AnalysisReceived{
		ID:             rec.ID,
		Match:          rec.Match,
		League:         rec.League,
		Recommendation: rec.Recommendation,
		Confidence:     rec.Confidence,
		Value:          rec.Value,
		Origin:         rec.Origin,
		Notified:       notified,
		ReceivedAt:     rec.ReceivedAt,
	})
	if err != nil {
		s.log.Warn("analysis publish failed", zap.String("id", rec.ID), zap.Error(err))
	}
}

// historyEntries retorna as últimas N análises (?limit=N) e o resumo
func (s *Server) historyEntries(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	entries, total := s.store.Read(limit)
	if entries == nil {
		entries = []analysis.Record{}
	}
	writeJSON(w, http.StatusOK, HistoryResponse{
		Total:   total,
		Entries: entries,
		Summary: s.store.Summarize(),
	})
}

func (s *Server) statistics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Stats())
}

func (s *Server) reset(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Reset(); err != nil {
		writeError(w, http.StatusInternalServerError, "reset failed: "+err.Error())
		return
	}
	s.log.Info("history reset")
	writeJSON(w, http.StatusOK, dto.ResetResponse{Status: "ok", Total: 0})
}
