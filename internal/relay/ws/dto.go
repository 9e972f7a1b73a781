package ws

import "github.com/radieske/analysis-relay/internal/relay/analysis"

// AllLeagues assina todas as ligas
const AllLeagues = "*"

// ClientMsg representa uma mensagem recebida do cliente WebSocket
// Type: subscribe | unsubscribe | ping
// League: obrigatório para subscribe/unsubscribe; "*" para todas
type ClientMsg struct {
	Type   string `json:"type"`
	League string `json:"league"`
}

// RecordUpdate é enviado aos clientes a cada análise ingerida
type RecordUpdate struct {
	League string          `json:"league"`
	Record analysis.Record `json:"record"`
}
