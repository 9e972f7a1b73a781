package analysis

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/radieske/analysis-relay/internal/relay/dto"
)

// Valores exibidos quando o fluxo de automação omite o campo
const (
	DefaultMatch          = "no data"
	DefaultLeague         = "unspecified"
	DefaultDate           = "no date"
	DefaultTime           = "no time"
	DefaultOdds           = "N/A"
	DefaultRecommendation = "no recommendation"
	DefaultConfidence     = "0%"
	DefaultStake          = "0%"
	DefaultValue          = "NO"
	DefaultBookmaker      = "unknown"
)

// Origens conhecidas; usadas só para exibição e estatísticas
const (
	OriginAutomation = "automation"
	OriginManual     = "manual"
	OriginTest       = "test"
	OriginAnalyzer   = "analyzer"
	OriginOddsAPI    = "odds-api"
)

// Record é uma análise recebida, já com defaults aplicados
// Tratado como valor imutável: é criado uma vez e gravado uma vez no histórico
type Record struct {
	ID             string    `json:"id"`
	Match          string    `json:"match"`
	League         string    `json:"league"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	HomeOdds       string    `json:"home_odds"`
	AwayOdds       string    `json:"away_odds"`
	DrawOdds       string    `json:"draw_odds"`
	Recommendation string    `json:"recommendation"`
	Confidence     string    `json:"confidence"`
	Stake          string    `json:"stake"`
	Value          string    `json:"value"`
	Bookmaker      string    `json:"bookmaker"`
	Origin         string    `json:"origin"`
	ReceivedAt     time.Time `json:"received_at"`
}

// FromPayload monta o Record aplicando o default de cada campo ausente
// origin é usado quando o payload não traz "origen"
func FromPayload(p dto.AnalysisPayload, origin string, now time.Time) Record {
	return Record{
		ID:             NewID(),
		Match:          p.Match.Or(DefaultMatch),
		League:         p.League.Or(DefaultLeague),
		Date:           p.Date.Or(DefaultDate),
		Time:           p.Time.Or(DefaultTime),
		HomeOdds:       p.HomeOdds.Or(DefaultOdds),
		AwayOdds:       p.AwayOdds.Or(DefaultOdds),
		DrawOdds:       p.DrawOdds.Or(DefaultOdds),
		Recommendation: p.Recommendation.Or(DefaultRecommendation),
		Confidence:     p.Confidence.Or(DefaultConfidence),
		Stake:          p.Stake.Or(DefaultStake),
		Value:          p.Value.Or(DefaultValue),
		Bookmaker:      p.Bookmaker.Or(DefaultBookmaker),
		Origin:         p.Origin.Or(origin),
		ReceivedAt:     now.UTC(),
	}
}

// NewID gera um UUIDv7: ordenado pelo tempo e sem colisão entre chamadas simultâneas
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

var valueFlags = map[string]struct{}{
	"YES": {}, "Y": {}, "SI": {}, "SÍ": {}, "TRUE": {}, "1": {},
}

// HasValue indica se o fluxo marcou a análise como aposta de valor
// "POSSIBLE" e similares não contam
func (r Record) HasValue() bool {
	_, ok := valueFlags[strings.ToUpper(strings.TrimSpace(r.Value))]
	return ok
}
