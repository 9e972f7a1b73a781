package topics

const (
	// Análises recebidas pelo webhook
	AnalysisReceived = "analysis_received"
)
