package history

import (
	"fmt"
	"time"

	"github.com/radieske/analysis-relay/internal/relay/analysis"
)

const recentRecommendations = 5

// Summary resume o histórico inteiro
type Summary struct {
	Total        int              `json:"total"`
	WithValue    int              `json:"with_value"`
	ValuePercent string           `json:"value_percent"`
	Last         *analysis.Record `json:"last"`
}

// Recommendation é a versão curta de um registro para /estadisticas
type Recommendation struct {
	Match          string `json:"match"`
	Recommendation string `json:"recommendation"`
	Confidence     string `json:"confidence"`
	Value          string `json:"value"`
	ReceivedAt     string `json:"received_at"`
}

// Stats é o Summary com as quebras por liga e origem
type Stats struct {
	Summary
	ByLeague              map[string]int   `json:"by_league"`
	ByOrigin              map[string]int   `json:"by_origin"`
	RecentRecommendations []Recommendation `json:"recent_recommendations"`
}

// Summarize calcula total, quantos têm valor e o percentual com uma casa decimal
func (s *Store) Summarize() Summary {
	entries, _ := s.Read(0)
	return summarize(entries)
}

// Stats calcula o Summary e as agregações usadas por /estadisticas
func (s *Store) Stats() Stats {
	entries, _ := s.Read(0)

	st := Stats{
		Summary:               summarize(entries),
		ByLeague:              make(map[string]int),
		ByOrigin:              make(map[string]int),
		RecentRecommendations: []Recommendation{},
	}
	for _, e := range entries {
		st.ByLeague[e.League]++
		st.ByOrigin[e.Origin]++
	}

	// mais recente primeiro
	for i := len(entries) - 1; i >= 0 && len(st.RecentRecommendations) < recentRecommendations; i-- {
		e := entries[i]
		st.RecentRecommendations = append(st.RecentRecommendations, Recommendation{
			Match:          e.Match,
			Recommendation: e.Recommendation,
			Confidence:     e.Confidence,
			Value:          e.Value,
			ReceivedAt:     e.ReceivedAt.Format(time.RFC3339),
		})
	}
	return st
}

func summarize(entries []analysis.Record) Summary {
	sum := Summary{Total: len(entries)}
	for _, e := range entries {
		if e.HasValue() {
			sum.WithValue++
		}
	}

	pct := 0.0
	if sum.Total > 0 {
		pct = float64(sum.WithValue) / float64(sum.Total) * 100
	}
	sum.ValuePercent = fmt.Sprintf("%.1f", pct)

	if sum.Total > 0 {
		last := entries[sum.Total-1]
		sum.Last = &last
	}
	return sum
}
