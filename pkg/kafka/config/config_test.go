package kafka_config

import (
	"strings"
	"testing"
)

func TestLoad_DisabledWithoutBrokers(t *testing.T) {
	t.Setenv(EnvKafkaBrokers, "")

	cfg := Load()
	if cfg.Enabled() {
		t.Fatal("expected producer to be disabled")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled config should validate, got %v", err)
	}
	if cfg.Topic != DefaultKafkaTopic {
		t.Errorf("topic = %q, want %q", cfg.Topic, DefaultKafkaTopic)
	}
}

func TestLoad_Brokers(t *testing.T) {
	t.Setenv(EnvKafkaBrokers, " k1:9092, ,k2:9092 ")

	cfg := Load()
	if len(cfg.Brokers) != 2 || cfg.Brokers[0] != "k1:9092" || cfg.Brokers[1] != "k2:9092" {
		t.Fatalf("unexpected brokers %v", cfg.Brokers)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Brokers:              []string{"k:9092"},
		Topic:                "",
		ProducerMaxAttempts:  0,
		ProducerBatchTimeout: 0,
		ProducerRequireAcks:  2,
		ProducerCompression:  "brotli",
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"Topic", "ProducerMaxAttempts", "ProducerBatchTimeout", "ProducerCompression", "ProducerRequireAcks"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error missing %q: %v", want, err)
		}
	}
}
