package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitBrokers(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, splitBrokers(" a:9092, ,b:9092 "))
	assert.Nil(t, splitBrokers(""))
}

func TestNewWriter(t *testing.T) {
	w := NewWriter("localhost:9092", "analysis_received")
	defer w.Close()

	assert.Equal(t, "analysis_received", w.Topic)
	assert.Equal(t, "localhost:9092", w.Addr.String())
}
