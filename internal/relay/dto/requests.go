package dto

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Text aceita string, número ou booleano no JSON e guarda o valor como texto
// Strings não são alteradas; null ou string em branco ficam vazios (campo ausente)
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		// valor fornecido é mantido como veio; só texto em branco conta como ausente
		if strings.TrimSpace(s) == "" {
			s = ""
		}
		*t = Text(s)
		return nil
	}
	switch {
	case bytes.Equal(b, []byte("true")), bytes.Equal(b, []byte("false")):
		*t = Text(b)
		return nil
	case b[0] == '{' || b[0] == '[':
		// objetos e listas não são esperados; guarda o JSON cru para não perder o dado
		*t = Text(b)
		return nil
	}
	// número: mantém a representação original (1.85 continua 1.85)
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*t = Text(n.String())
	return nil
}

// Or devolve o texto ou o default quando vazio
func (t Text) Or(def string) string {
	if t == "" {
		return def
	}
	return string(t)
}

// AnalysisPayload é o corpo enviado pelo fluxo de automação ao /webhook
// Todos os campos são opcionais
type AnalysisPayload struct {
	Match          Text `json:"partido"`
	League         Text `json:"liga"`
	Date           Text `json:"fecha"`
	Time           Text `json:"hora"`
	HomeOdds       Text `json:"cuota_local"`
	AwayOdds       Text `json:"cuota_visitante"`
	DrawOdds       Text `json:"cuota_empate"`
	Recommendation Text `json:"recomendacion"`
	Confidence     Text `json:"confianza"`
	Stake          Text `json:"stake"`
	Value          Text `json:"valor_detectado"`
	Bookmaker      Text `json:"casa_apuestas"`
	Origin         Text `json:"origen"`
}
