package odds

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/analysis-relay/internal/relay/analysis"
	"github.com/radieske/analysis-relay/internal/relay/dto"
)

// GameCache é opcional; nil desativa o cache
type GameCache interface {
	GetGames(ctx context.Context, sport string) ([]Game, bool, error)
	SetGames(ctx context.Context, sport string, games []Game) error
}

// Service combina o client com o cache
type Service struct {
	Client *Client
	Cache  GameCache
	Log    *zap.Logger
}

func NewService(c *Client, cache GameCache, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{Client: c, Cache: cache, Log: log}
}

// Configured indica se a chave do provedor existe
func (s *Service) Configured() bool {
	return s != nil && s.Client != nil && s.Client.APIKey != ""
}

// Games devolve os jogos do esporte, do cache quando possível
// Falhas de cache só geram log
func (s *Service) Games(ctx context.Context, sport string) ([]Game, bool, error) {
	if s.Cache != nil {
		games, ok, err := s.Cache.GetGames(ctx, sport)
		if err != nil {
			s.Log.Warn("odds cache get failed", zap.String("sport", sport), zap.Error(err))
		} else if ok {
			return games, true, nil
		}
	}

	games, err := s.Client.FetchOdds(ctx, sport)
	if err != nil {
		return nil, false, err
	}

	if s.Cache != nil {
		if err := s.Cache.SetGames(ctx, sport, games); err != nil {
			s.Log.Warn("odds cache set failed", zap.String("sport", sport), zap.Error(err))
		}
	}
	return games, false, nil
}

// ToRecords converte até max jogos em análises, usando só o primeiro
// bookmaker e o mercado h2h de cada jogo
func ToRecords(games []Game, league string, max int, now time.Time) []analysis.Record {
	if max > 0 && len(games) > max {
		games = games[:max]
	}

	out := make([]analysis.Record, 0, len(games))
	for _, g := range games {
		p := dto.AnalysisPayload{
			Match:  dto.Text(g.HomeTeam + " vs " + g.AwayTeam),
			League: dto.Text(league),
		}
		if !g.CommenceTime.IsZero() {
			ct := g.CommenceTime.UTC()
			p.Date = dto.Text(ct.Format("2006-01-02"))
			p.Time = dto.Text(ct.Format("15:04") + " UTC")
		}

		if len(g.Bookmakers) > 0 {
			bm := g.Bookmakers[0]
			p.Bookmaker = dto.Text(bm.Title)
			for _, m := range bm.Markets {
				if m.Key != marketH2H {
					continue
				}
				for _, o := range m.Outcomes {
					price := dto.Text(strconv.FormatFloat(o.Price, 'f', -1, 64))
					switch {
					case o.Name == g.HomeTeam:
						p.HomeOdds = price
					case o.Name == g.AwayTeam:
						p.AwayOdds = price
					case strings.EqualFold(o.Name, "draw"):
						p.DrawOdds = price
					}
				}
				break
			}
		}

		out = append(out, analysis.FromPayload(p, analysis.OriginOddsAPI, now))
	}
	return out
}
