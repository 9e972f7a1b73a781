package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	DefaultBaseURL = "https://api.telegram.org"
	timeout        = 10 * time.Second
	maxErrorBody   = 200
)

// ErrNotConfigured é o motivo reportado quando falta token ou chat id
const ErrNotConfigured = "telegram credentials not configured"

// Result é o desfecho de um envio; falhas nunca viram panic nem error
type Result struct {
	OK         bool   `json:"ok"`
	StatusCode int    `json:"status_code,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Client envia mensagens para um chat via Bot API
type Client struct {
	baseURL    string
	botToken   string
	chatID     string
	httpClient *http.Client
}

// NewClient cria o cliente; credenciais vazias são aceitas e
// resultam em falha reportada a cada Send
func NewClient(baseURL, botToken, chatID string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		botToken: botToken,
		chatID:   chatID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Configured indica se token e chat id estão presentes
func (c *Client) Configured() bool {
	return c.botToken != "" && c.chatID != ""
}

// Send faz um único POST em sendMessage, sem retry
func (c *Client) Send(ctx context.Context, text string) Result {
	if !c.Configured() {
		return Result{Error: ErrNotConfigured}
	}

	payload, err := json.Marshal(map[string]string{
		"chat_id": c.chatID,
		"text":    text,
	})
	if err != nil {
		return Result{Error: fmt.Sprintf("marshaling payload: %v", err)}
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return Result{Error: fmt.Sprintf("creating request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// o erro do net/http inclui a url, e portanto o token
		return Result{Error: fmt.Sprintf("sending request: %s", redact(err.Error(), c.botToken))}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return Result{OK: true, StatusCode: resp.StatusCode}
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return Result{
		StatusCode: resp.StatusCode,
		Error:      fmt.Sprintf("telegram API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(trimPartialRune(body)))),
	}
}

// trimPartialRune descarta a runa cortada pelo limite de leitura no fim do corpo
func trimPartialRune(b []byte) []byte {
	for i := 0; i < utf8.UTFMax-1 && len(b) > 0; i++ {
		if r, size := utf8.DecodeLastRune(b); r != utf8.RuneError || size > 1 {
			break
		}
		b = b[:len(b)-1]
	}
	return b
}

func redact(s, token string) string {
	if token == "" {
		return s
	}
	return strings.ReplaceAll(s, token, "***")
}
