// Package fixtures provides the shared test inputs for the NURI Q&A
// backend: connection settings isolated from real infrastructure, a mock
// session id and sample questions in Korean and English.
//
// Every producer builds a new value on each call so tests running in
// parallel never share mutable state.
package fixtures

import (
	"nuriqa/internal/config"
	"nuriqa/internal/question"
)

// Standard connection values. They point at local infrastructure and a
// dedicated test database, never at production.
const (
	TestOpenAIAPIKey = "test-api-key"
	TestPostgresHost = "localhost"
	TestPostgresPort = 5432
	TestPostgresDB   = "test_nuri_qa_db"
	TestRedisHost    = "localhost"
	TestRedisPort    = 6379
)

// MockSessionIDValue is the fixed session id returned by MockSessionID.
const MockSessionIDValue = "550e8400-e29b-41d4-a716-446655440000"

// Sample questions.
const (
	SampleQuestionKoText = "NURI의 Tier 1 시장은 어디인가요?"
	SampleQuestionEnText = "What is NURI's business model?"
)

// TestConfig returns the flat test configuration. Ports are ints.
func TestConfig() map[string]any {
	return map[string]any{
		config.KeyOpenAIAPIKey: TestOpenAIAPIKey,
		config.KeyPostgresHost: TestPostgresHost,
		config.KeyPostgresPort: TestPostgresPort,
		config.KeyPostgresDB:   TestPostgresDB,
		config.KeyRedisHost:    TestRedisHost,
		config.KeyRedisPort:    TestRedisPort,
	}
}

// TestAppConfig returns TestConfig as a typed config. Fields outside the
// six settings keep config.Default values.
func TestAppConfig() *config.Config {
	cfg, err := config.FromSettings(TestConfig())
	if err != nil {
		// the constants above are valid
		panic("fixtures: invalid test config: " + err.Error())
	}
	return cfg
}

// MockSessionID returns a fixed session id in canonical UUID form.
func MockSessionID() string {
	return MockSessionIDValue
}

// SampleQuestionKo returns a Korean sample question.
func SampleQuestionKo() string {
	return SampleQuestionKoText
}

// SampleQuestionEn returns an English sample question.
func SampleQuestionEn() string {
	return SampleQuestionEnText
}

// SampleQuestions returns both sample questions tagged with their language.
func SampleQuestions() []question.Question {
	out := make([]question.Question, 0, 2)
	for _, text := range []string{SampleQuestionKo(), SampleQuestionEn()} {
		q, err := question.New(text)
		if err != nil {
			panic("fixtures: invalid sample question: " + err.Error())
		}
		out = append(out, q)
	}
	return out
}
