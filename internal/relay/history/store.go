package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/radieske/analysis-relay/internal/relay/analysis"
)

const DefaultMaxEntries = 100

// Store mantém o histórico de análises num único arquivo JSON (array),
// do mais antigo para o mais recente, limitado a Max entradas.
//
// Cada operação lê o arquivo inteiro e, quando grava, reescreve o arquivo inteiro.
// mu serializa o ciclo ler-modificar-gravar dentro do processo; mais de um
// processo apontando para o mesmo arquivo continua podendo perder appends.
type Store struct {
	path string
	max  int
	log  *zap.Logger

	mu sync.Mutex
}

// New cria o store; max <= 0 usa DefaultMaxEntries
func New(path string, max int, log *zap.Logger) *Store {
	if max <= 0 {
		max = DefaultMaxEntries
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{path: path, max: max, log: log}
}

func (s *Store) Path() string { return s.path }
func (s *Store) Max() int     { return s.max }

// Append adiciona o registro, descarta os mais antigos acima do limite e
// reescreve o arquivo. Retorna o total resultante; o erro de gravação é
// registrado em log e devolvido só para diagnóstico do chamador.
func (s *Store) Append(rec analysis.Record) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := append(s.load(), rec)
	if over := len(entries) - s.max; over > 0 {
		entries = entries[over:]
	}

	if err := s.write(entries); err != nil {
		s.log.Error("history write failed",
			zap.String("path", s.path),
			zap.String("record_id", rec.ID),
			zap.Error(err),
		)
		return len(entries), err
	}
	return len(entries), nil
}

// Read devolve as últimas limit entradas (limit <= 0 devolve todas) e o total
// Arquivo ausente ou corrompido vale como histórico vazio
func (s *Store) Read(limit int) ([]analysis.Record, int) {
	s.mu.Lock()
	entries := s.load()
	s.mu.Unlock()

	total := len(entries)
	if limit > 0 && limit < total {
		entries = entries[total-limit:]
	}
	return entries, total
}

// Reset esvazia o histórico
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.write([]analysis.Record{}); err != nil {
		s.log.Error("history reset failed", zap.String("path", s.path), zap.Error(err))
		return err
	}
	return nil
}

// Check verifica se o arquivo é legível (ou ainda não existe); usado no /healthz
func (s *Store) Check() error {
	if _, err := os.Stat(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("stat history: %w", err)
	}
	return nil
}

// load lê o arquivo; qualquer falha resulta em histórico vazio
func (s *Store) load() []analysis.Record {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("history unreadable, treating as empty", zap.String("path", s.path), zap.Error(err))
		}
		return nil
	}

	var entries []analysis.Record
	if err := json.Unmarshal(data, &entries); err != nil {
		s.log.Warn("history corrupt, treating as empty", zap.String("path", s.path), zap.Error(err))
		return nil
	}
	return entries
}

func (s *Store) write(entries []analysis.Record) error {
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating history dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return nil
}
