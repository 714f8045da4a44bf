package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FLUENTLY_LLM_PROVIDER", "mock")
	t.Setenv("FLUENTLY_ADDR", "")
	t.Setenv("FLUENTLY_DB", "")
	t.Setenv("FLUENTLY_QUESTION_COUNT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("expected default addr, got %q", cfg.Addr)
	}
	if cfg.DBPath == "" {
		t.Error("expected a default DB path")
	}
	if cfg.QuestionCount != 8 {
		t.Errorf("expected default question count 8, got %d", cfg.QuestionCount)
	}
	if cfg.LLM.Provider != "mock" {
		t.Errorf("expected mock provider, got %q", cfg.LLM.Provider)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("FLUENTLY_LLM_PROVIDER", "mock")
	t.Setenv("FLUENTLY_ADDR", ":9999")
	t.Setenv("FLUENTLY_DB", "/tmp/fluently-test.db")
	t.Setenv("FLUENTLY_QUESTION_COUNT", "12")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != ":9999" || cfg.DBPath != "/tmp/fluently-test.db" || cfg.QuestionCount != 12 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestLoadRejectsBadQuestionCount(t *testing.T) {
	t.Setenv("FLUENTLY_LLM_PROVIDER", "mock")
	t.Setenv("FLUENTLY_QUESTION_COUNT", "2")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for out-of-range question count")
	}

	t.Setenv("FLUENTLY_QUESTION_COUNT", "99")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for out-of-range question count")
	}
}
