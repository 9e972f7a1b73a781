package dto

// WebhookResponse é o ack do /webhook e dos gatilhos de diagnóstico
// Notificação e persistência reportam o resultado de forma independente
type WebhookResponse struct {
	Status       string `json:"status"`
	ID           string `json:"id"`
	Sample       string `json:"sample,omitempty"`
	Match        string `json:"match"`
	Notified     bool   `json:"notified"`
	NotifyError  string `json:"notify_error,omitempty"`
	Stored       bool   `json:"stored"`
	StorageError string `json:"storage_error,omitempty"`
	Total        int    `json:"total"`
}

type ErrorResponse struct {
	Status string `json:"status"` // sempre "error"
	Error  string `json:"error"`
}

type StatusResponse struct {
	Service            string   `json:"service"`
	Version            string   `json:"version"`
	Status             string   `json:"status"`
	TelegramConfigured bool     `json:"telegram_configured"`
	OddsConfigured     bool     `json:"odds_api_configured"`
	HistoryMax         int      `json:"history_max"`
	MinConfidence      float64  `json:"min_confidence"`
	Routes             []string `json:"routes"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Port      string `json:"port"`
	Timestamp string `json:"timestamp"`
}

type ResetResponse struct {
	Status string `json:"status"`
	Total  int    `json:"total"`
}
