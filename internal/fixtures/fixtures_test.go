package fixtures

import (
	"regexp"
	"strings"
	"testing"
	"unicode"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/text/language"

	"nuriqa/internal/config"
	"nuriqa/internal/session"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

func TestTestConfigHasExactlySixKeys(t *testing.T) {
	cfg := TestConfig()
	require.Len(t, cfg, 6)
	for _, key := range config.SettingKeys {
		assert.Contains(t, cfg, key)
	}
}

func TestTestConfigValues(t *testing.T) {
	want := map[string]any{
		"OPENAI_API_KEY": "test-api-key",
		"POSTGRES_HOST":  "localhost",
		"POSTGRES_PORT":  5432,
		"POSTGRES_DB":    "test_nuri_qa_db",
		"REDIS_HOST":     "localhost",
		"REDIS_PORT":     6379,
	}
	if diff := cmp.Diff(want, TestConfig()); diff != "" {
		t.Fatalf("test config mismatch (-want +got):\n%s", diff)
	}
}

func TestTestConfigPortsAreValidInts(t *testing.T) {
	cfg := TestConfig()
	for _, key := range []string{config.KeyPostgresPort, config.KeyRedisPort} {
		port, ok := cfg[key].(int)
		require.True(t, ok, "%s should be an int, got %T", key, cfg[key])
		assert.True(t, config.ValidPort(port), "%s=%d out of range", key, port)
	}
}

func TestTestConfigReturnsIndependentCopies(t *testing.T) {
	a := TestConfig()
	b := TestConfig()
	require.Equal(t, a, b)

	a[config.KeyPostgresHost] = "elsewhere"
	delete(a, config.KeyRedisPort)
	a["EXTRA"] = true

	assert.Equal(t, "localhost", b[config.KeyPostgresHost])
	assert.Len(t, b, 6)
	assert.Equal(t, "localhost", TestConfig()[config.KeyPostgresHost])
	assert.NotContains(t, TestConfig(), "EXTRA")
}

func TestTestAppConfig(t *testing.T) {
	cfg := TestAppConfig()
	assert.Equal(t, "test-api-key", cfg.OpenAI.APIKey)
	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Equal(t, "test_nuri_qa_db", cfg.Postgres.DBName)
	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, 6379, cfg.Redis.Port)
	require.NoError(t, cfg.Validate())

	cfg.Redis.Port = 1
	assert.Equal(t, 6379, TestAppConfig().Redis.Port)
}

func TestMockSessionID(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", MockSessionID())
	}
	assert.Regexp(t, uuidPattern, MockSessionID())
	assert.True(t, session.IsCanonical(MockSessionID()))
}

func TestSampleQuestionKo(t *testing.T) {
	q := SampleQuestionKo()
	require.NotEmpty(t, q)
	assert.Equal(t, "NURI의 Tier 1 시장은 어디인가요?", q)
	assert.True(t, strings.HasSuffix(q, "?"))

	hangul := 0
	for _, r := range q {
		if unicode.Is(unicode.Hangul, r) {
			hangul++
		}
	}
	assert.Positive(t, hangul)
}

func TestSampleQuestionEn(t *testing.T) {
	q := SampleQuestionEn()
	assert.Equal(t, "What is NURI's business model?", q)
	assert.Equal(t, strings.TrimSpace(q), q)
}

func TestSampleQuestionsTagged(t *testing.T) {
	qs := SampleQuestions()
	require.Len(t, qs, 2)
	assert.Equal(t, SampleQuestionKoText, qs[0].Text)
	assert.Equal(t, language.Korean, qs[0].Lang)
	assert.Equal(t, SampleQuestionEnText, qs[1].Text)
	assert.Equal(t, language.English, qs[1].Lang)

	qs[0].Text = "changed"
	assert.Equal(t, SampleQuestionKoText, SampleQuestions()[0].Text)
}
