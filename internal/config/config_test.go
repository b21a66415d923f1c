package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// writeFile — утилита записи временного файла конфигурации.
func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

// chdir — смена текущего рабочего каталога с автоматическим откатом.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

// Полный корректный YAML (не зависит от дефолтов).
const sampleYAML = `
env: "prod"
http:
  host: "127.0.0.1"
  port: "8081"
grpc:
  host: "127.0.0.1"
  port: "6000"
db:
  url: "mongodb://localhost:27017/enrichment"
news:
  api_key: "serp-key"
  region: "Canada"
  links: 3
llm:
  api_key: "openai-key"
  model: "gpt-4.1-mini"
  word_limit: 15
enrichment:
  interval: "5m"
  pacing: "2s"
  max_articles: 4
  batch_limit: 100
  run_on_start: false
lock:
  redis_url: "redis://localhost:6379/0"
  ttl: "2m"
timeouts:
  interest: "90s"
`

// Минимально валидный YAML (только обязательные поля).
const minimalYAML = `
db:
  url: "mongodb://localhost/min"
news:
  api_key: "k1"
llm:
  api_key: "k2"
`

// Некорректный YAML — для проверки ошибок парсинга.
const brokenYAML = `
db:
  url: "mongodb://broken
news: [
`

// TestLoad_WithExplicitPath_OK — явный путь имеет высший приоритет, значения из файла применяются.
func TestLoad_WithExplicitPath_OK(t *testing.T) {
	cfgPath := writeFile(t, t.TempDir(), "config.yaml", sampleYAML)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, "127.0.0.1:8081", cfg.HTTP.Addr())
	require.Equal(t, "127.0.0.1:6000", cfg.GRPC.Addr())
	require.Equal(t, "mongodb://localhost:27017/enrichment", cfg.DB.URL)
	require.Equal(t, "serp-key", cfg.News.APIKey)
	require.Equal(t, "Canada", cfg.News.Region)
	require.Equal(t, 3, cfg.News.Links)
	require.Equal(t, "gpt-4.1-mini", cfg.LLM.Model)
	require.Equal(t, 15, cfg.LLM.WordLimit)
	require.Equal(t, 5*time.Minute, cfg.Enrichment.Interval)
	require.Equal(t, 2*time.Second, cfg.Enrichment.Pacing)
	require.Equal(t, 4, cfg.Enrichment.MaxArticles)
	require.Equal(t, 100, cfg.Enrichment.BatchLimit)
	require.False(t, cfg.Enrichment.RunOnStart)
	require.Equal(t, 90*time.Second, cfg.Timeouts.Interest)
	require.Equal(t, "redis://localhost:6379/0", cfg.Lock.RedisURL)
	require.Equal(t, "enrichment:run-lock", cfg.Lock.Key)
	require.Equal(t, 2*time.Minute, cfg.Lock.TTL)
}

// TestLoad_Defaults — минимальный файл получает значения по умолчанию.
func TestLoad_Defaults(t *testing.T) {
	cfgPath := writeFile(t, t.TempDir(), "min.yaml", minimalYAML)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "local", cfg.Env)
	require.Equal(t, "https://serpapi.com/search.json", cfg.News.Endpoint)
	require.Equal(t, "google", cfg.News.Engine)
	require.Equal(t, "USA", cfg.News.Region)
	require.Equal(t, 5, cfg.News.Links)
	require.Equal(t, "https://api.openai.com/v1/responses", cfg.LLM.Endpoint)
	require.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	require.Equal(t, "You are a helpful consultant.", cfg.LLM.Instructions)
	require.Equal(t, 20, cfg.LLM.WordLimit)
	require.Equal(t, time.Minute, cfg.Enrichment.Interval)
	require.Equal(t, time.Second, cfg.Enrichment.Pacing)
	require.Equal(t, 5, cfg.Enrichment.MaxArticles)
	require.Equal(t, 0, cfg.Enrichment.BatchLimit)
	require.True(t, cfg.Enrichment.RunOnStart)
	require.Equal(t, 5*time.Second, cfg.Timeouts.Service)
	require.Equal(t, 30*time.Second, cfg.Timeouts.Shutdown)
	require.Empty(t, cfg.Lock.RedisURL)
	require.Equal(t, time.Minute, cfg.Lock.TTL)
}

// TestLoad_ZeroValuesFromYAML — явные нули в файле не заменяются значениями по умолчанию.
func TestLoad_ZeroValuesFromYAML(t *testing.T) {
	cfgPath := writeFile(t, t.TempDir(), "zero.yaml", minimalYAML+`
enrichment:
  pacing: "0s"
  run_on_start: false
`)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	require.Zero(t, cfg.Enrichment.Pacing)
	require.False(t, cfg.Enrichment.RunOnStart)
	require.Equal(t, 5, cfg.Enrichment.MaxArticles)
}

// TestLoad_ZeroValuesFromEnv — ENV тоже может выключить паузу и стартовый проход.
func TestLoad_ZeroValuesFromEnv(t *testing.T) {
	cfgPath := writeFile(t, t.TempDir(), "config.yaml", minimalYAML)
	t.Setenv("ENRICH_PACING", "0s")
	t.Setenv("ENRICH_RUN_ON_START", "false")

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	require.Zero(t, cfg.Enrichment.Pacing)
	require.False(t, cfg.Enrichment.RunOnStart)
}

// TestLoad_WithExplicitPath_FileDoesNotExist — явный путь на несуществующий файл.
func TestLoad_WithExplicitPath_FileDoesNotExist(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "config file does not exist")
}

// TestLoad_WithExplicitPath_BrokenYAML — битый YAML по явному пути.
func TestLoad_WithExplicitPath_BrokenYAML(t *testing.T) {
	cfgPath := writeFile(t, t.TempDir(), "broken.yaml", brokenYAML)

	_, err := Load(cfgPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to read config")
}

// TestLoad_WithCONFIG_PATH_OK — путь берётся из CONFIG_PATH.
func TestLoad_WithCONFIG_PATH_OK(t *testing.T) {
	cfgPath := writeFile(t, t.TempDir(), "from_env_path.yaml", minimalYAML)
	t.Setenv("CONFIG_PATH", cfgPath)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "mongodb://localhost/min", cfg.DB.URL)
}

// TestLoad_LocalYAML — при отсутствии пути и CONFIG_PATH читается ./local.yaml.
func TestLoad_LocalYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "local.yaml", minimalYAML)
	chdir(t, dir)
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "k1", cfg.News.APIKey)
}

// TestLoad_EnvOverlay — ENV перекрывает значения из файла.
func TestLoad_EnvOverlay(t *testing.T) {
	cfgPath := writeFile(t, t.TempDir(), "config.yaml", minimalYAML)
	t.Setenv("ENRICH_PACING", "250ms")
	t.Setenv("NEWS_REGION", "Germany")

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	require.Equal(t, 250*time.Millisecond, cfg.Enrichment.Pacing)
	require.Equal(t, "Germany", cfg.News.Region)
}

// TestLoad_EnvOnly — без файлов конфигурация собирается из ENV.
func TestLoad_EnvOnly(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("DATABASE_URL", "mongodb://env/db")
	t.Setenv("SERP_API_KEY", "s")
	t.Setenv("OPENAI_API_KEY", "o")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "mongodb://env/db", cfg.DB.URL)
	require.Equal(t, 5, cfg.Enrichment.MaxArticles)
	require.Equal(t, time.Second, cfg.Enrichment.Pacing)
	require.True(t, cfg.Enrichment.RunOnStart)
}

// TestValidate — граничные значения отклоняются.
func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() Config {
		return Config{
			DB:         DBConfig{URL: "mongodb://x"},
			News:       NewsConfig{APIKey: "k", Links: 5},
			LLM:        LLMConfig{APIKey: "k", WordLimit: 20},
			Enrichment: EnrichmentConfig{Interval: time.Minute, Pacing: time.Second, MaxArticles: 5},
			Timeouts:   TimeoutConfig{Interest: time.Minute},
		}
	}

	base := valid()
	require.NoError(t, base.validate())

	cases := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"no db", func(c *Config) { c.DB.URL = "" }, "db.url"},
		{"no serp key", func(c *Config) { c.News.APIKey = "" }, "news.api_key"},
		{"no llm key", func(c *Config) { c.LLM.APIKey = "" }, "llm.api_key"},
		{"zero links", func(c *Config) { c.News.Links = 0 }, "news.links"},
		{"zero words", func(c *Config) { c.LLM.WordLimit = 0 }, "llm.word_limit"},
		{"tiny interval", func(c *Config) { c.Enrichment.Interval = time.Millisecond }, "enrichment.interval"},
		{"negative pacing", func(c *Config) { c.Enrichment.Pacing = -time.Second }, "enrichment.pacing"},
		{"zero max", func(c *Config) { c.Enrichment.MaxArticles = 0 }, "enrichment.max_articles"},
		{"huge max", func(c *Config) { c.Enrichment.MaxArticles = 51 }, "enrichment.max_articles"},
		{"negative batch", func(c *Config) { c.Enrichment.BatchLimit = -1 }, "enrichment.batch_limit"},
		{"zero interest timeout", func(c *Config) { c.Timeouts.Interest = 0 }, "timeouts.interest"},
		{"short lock ttl", func(c *Config) { c.Lock = LockConfig{RedisURL: "redis://r:6379/0", TTL: time.Second} }, "lock.ttl"},
	}

	for _, tc := range cases {
		c := valid()
		tc.mutate(&c)
		err := c.validate()
		require.Error(t, err, tc.name)
		require.Contains(t, err.Error(), tc.want, tc.name)
	}
}
