package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/radieske/analysis-relay/internal/shared/kafka"
	"github.com/radieske/analysis-relay/pkg/contracts/events"
)

type messageWriter interface {
	kafka.MessageWriter
	Close() error
}

// KafkaPublisher publica cada análise ingerida no tópico configurado
type KafkaPublisher struct {
	writer messageWriter
	topic  string
	log    *zap.Logger
}

// NewKafkaPublisher cria o writer para o tópico; brokers no formato "a:9092,b:9092"
func NewKafkaPublisher(brokers, topic string, log *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: kafka.NewWriter(brokers, topic),
		topic:  topic,
		log:    log,
	}
}

// PublishAnalysis serializa o evento e envia com o ID como chave
func (p *KafkaPublisher) PublishAnalysis(ctx context.Context, e events.AnalysisReceived) error {
	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal analysis event: %w", err)
	}

	if err := kafka.WriteJSON(ctx, p.writer, e.ID, value); err != nil {
		p.log.Error("failed to publish analysis", zap.String("topic", p.topic), zap.Error(err))
		return err
	}

	p.log.Debug("published analysis", zap.String("topic", p.topic), zap.String("id", e.ID))
	return nil
}

// Close finaliza o writer e libera recursos associados.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
