package events

import "time"

// Evento publicado no tópico "analysis_received" após cada ingestão
type AnalysisReceived struct {
	ID             string    `json:"id"`
	Match          string    `json:"match"`
	League         string    `json:"league"`
	Recommendation string    `json:"recommendation"`
	Confidence     string    `json:"confidence"`
	Value          string    `json:"value"`
	Origin         string    `json:"origin"` // "automation" | "manual" | ...
	Notified       bool      `json:"notified"`
	ReceivedAt     time.Time `json:"received_at"`
}
