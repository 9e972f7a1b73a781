package analysis

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/radieske/analysis-relay/internal/relay/dto"
)

type field struct {
	label string // prefixo da linha na mensagem
	set   func(p *dto.AnalysisPayload, v dto.Text)
	def   string
	value dto.Text
}

var fields = []field{
	{"Match: ", func(p *dto.AnalysisPayload, v dto.Text) { p.Match = v }, DefaultMatch, "Lakers vs Celtics"},
	{"League: ", func(p *dto.AnalysisPayload, v dto.Text) { p.League = v }, DefaultLeague, "NBA"},
	{"Date: ", func(p *dto.AnalysisPayload, v dto.Text) { p.Date = v }, DefaultDate, "2026-10-15"},
	{"Home: ", func(p *dto.AnalysisPayload, v dto.Text) { p.HomeOdds = v }, DefaultOdds, "1.85"},
	{"Away: ", func(p *dto.AnalysisPayload, v dto.Text) { p.AwayOdds = v }, DefaultOdds, "2.10"},
	{"Draw: ", func(p *dto.AnalysisPayload, v dto.Text) { p.DrawOdds = v }, DefaultOdds, "15.0"},
	{"Recommendation: ", func(p *dto.AnalysisPayload, v dto.Text) { p.Recommendation = v }, DefaultRecommendation, "Lakers ML"},
	{"Confidence: ", func(p *dto.AnalysisPayload, v dto.Text) { p.Confidence = v }, DefaultConfidence, "80%"},
	{"Stake: ", func(p *dto.AnalysisPayload, v dto.Text) { p.Stake = v }, DefaultStake, "3%"},
	{"Value detected: ", func(p *dto.AnalysisPayload, v dto.Text) { p.Value = v }, DefaultValue, "POSSIBLE"},
	{"Bookmaker: ", func(p *dto.AnalysisPayload, v dto.Text) { p.Bookmaker = v }, DefaultBookmaker, "Bet365"},
}

func TestFormat_DefaultsAndVerbatimForEverySubset(t *testing.T) {
	now := time.Date(2026, 10, 15, 20, 30, 0, 0, time.UTC)

	// cada bit decide se o campo é enviado
	for mask := 0; mask < 1<<len(fields); mask += 37 {
		var p dto.AnalysisPayload
		for i, f := range fields {
			if mask&(1<<i) != 0 {
				f.set(&p, f.value)
			}
		}

		out := Format(FromPayload(p, OriginAutomation, now), now)

		for i, f := range fields {
			want := f.label + f.def
			if mask&(1<<i) != 0 {
				want = f.label + string(f.value)
			}
			assert.Contains(t, out, want, "mask=%d", mask)
		}
	}
}

func TestFormat_TimeDefaultsAndTimestamp(t *testing.T) {
	now := time.Date(2026, 10, 15, 20, 30, 5, 0, time.UTC)

	out := Format(FromPayload(dto.AnalysisPayload{}, OriginManual, now), now)
	assert.Contains(t, out, "Date: no date no time")
	assert.Contains(t, out, "🕐 2026-10-15 20:30:05")

	out = Format(FromPayload(dto.AnalysisPayload{Date: "2026-10-16", Time: "21:00"}, OriginManual, now), now)
	assert.Contains(t, out, "Date: 2026-10-16 21:00")
}

func TestFormat_Deterministic(t *testing.T) {
	now := time.Date(2026, 10, 15, 20, 30, 0, 0, time.UTC)
	rec := FromPayload(dto.AnalysisPayload{Match: "A vs B"}, OriginAutomation, now)

	assert.Equal(t, Format(rec, now), Format(rec, now))
}

func TestFormatBatch(t *testing.T) {
	now := time.Now()
	a := FromPayload(dto.AnalysisPayload{Match: "A vs B"}, OriginOddsAPI, now)
	b := FromPayload(dto.AnalysisPayload{Match: "C vs D"}, OriginOddsAPI, now)

	out := FormatBatch("NBA odds", []Record{a, b}, now)
	assert.Contains(t, out, "NBA odds")
	assert.Contains(t, out, "Match: A vs B")
	assert.Contains(t, out, "Match: C vs D")
}

func TestFromPayload_Origin(t *testing.T) {
	now := time.Now()

	rec := FromPayload(dto.AnalysisPayload{}, OriginAutomation, now)
	assert.Equal(t, OriginAutomation, rec.Origin)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, time.UTC, rec.ReceivedAt.Location())

	rec = FromPayload(dto.AnalysisPayload{Origin: "n8n"}, OriginAutomation, now)
	assert.Equal(t, "n8n", rec.Origin)
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := NewID()
		_, dup := seen[id]
		assert.False(t, dup, fmt.Sprintf("duplicate id %s", id))
		seen[id] = struct{}{}
	}
}

func TestHasValue(t *testing.T) {
	for v, want := range map[string]bool{
		"YES": true, "yes": true, " Sí ": true, "SI": true, "true": true,
		"NO": false, "POSSIBLE": false, "": false,
	} {
		assert.Equal(t, want, Record{Value: v}.HasValue(), v)
	}
}
