// config реализует конфигурацию enrichment-service: загрузка из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config — корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
type Config struct {
	Env        string           `yaml:"env" env:"ENV" env-default:"local"`
	HTTP       HTTPConfig       `yaml:"http"`
	GRPC       GRPCConfig       `yaml:"grpc"`
	DB         DBConfig         `yaml:"db"`
	News       NewsConfig       `yaml:"news"`
	LLM        LLMConfig        `yaml:"llm"`
	Enrichment EnrichmentConfig `yaml:"enrichment"`
	Lock       LockConfig       `yaml:"lock"`
	Timeouts   TimeoutConfig    `yaml:"timeouts"`
}

// TimeoutConfig — таймауты сервиса.
type TimeoutConfig struct {
	// Service — дедлайн обработки admin-запроса и unary gRPC-вызова.
	Service time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"5s"`
	// Interest — верхняя граница на обработку одного интереса (поиск + модель + запись).
	Interest time.Duration `yaml:"interest" env:"INTEREST_TIMEOUT" env-default:"2m"`
	// Shutdown — сколько ждать завершения текущего прохода при остановке.
	Shutdown time.Duration `yaml:"shutdown" env:"SHUTDOWN_TIMEOUT" env-default:"30s"`
}

// GRPCConfig — сетевые настройки gRPC-сервера (health).
type GRPCConfig struct {
	Host string `yaml:"host" env:"GRPC_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"GRPC_PORT" env-default:"50056"`
}

// HTTPConfig — admin HTTP (health/metrics/ручной запуск).
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"50086"`
}

// Addr возвращает адрес в формате host:port.
func (g GRPCConfig) Addr() string {
	return net.JoinHostPort(g.Host, g.Port)
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// DBConfig — настройки подключения к MongoDB.
type DBConfig struct {
	URL string `yaml:"url" env:"DATABASE_URL" env-required:"true"`
}

// NewsConfig — провайдер поиска новостей (SerpAPI, google news).
type NewsConfig struct {
	Endpoint string `yaml:"endpoint" env:"NEWS_ENDPOINT" env-default:"https://serpapi.com/search.json"`
	APIKey   string `yaml:"api_key"  env:"SERP_API_KEY"  env-required:"true"`
	Engine   string `yaml:"engine"   env:"NEWS_ENGINE"   env-default:"google"`
	// Region — значение location в запросе.
	Region string `yaml:"region" env:"NEWS_REGION" env-default:"USA"`
	// Links — сколько первых результатов отдаётся модели.
	Links int `yaml:"links" env:"NEWS_LINKS" env-default:"5"`
}

// LLMConfig — провайдер языковой модели (OpenAI Responses API).
type LLMConfig struct {
	Endpoint     string `yaml:"endpoint"     env:"LLM_ENDPOINT"     env-default:"https://api.openai.com/v1/responses"`
	APIKey       string `yaml:"api_key"      env:"OPENAI_API_KEY"   env-required:"true"`
	Model        string `yaml:"model"        env:"LLM_MODEL"        env-default:"gpt-4o-mini"`
	Instructions string `yaml:"instructions" env:"LLM_INSTRUCTIONS" env-default:"You are a helpful consultant."`
	// WordLimit — рекомендуемый моделью лимит слов на summary/key point.
	WordLimit int `yaml:"word_limit" env:"LLM_WORD_LIMIT" env-default:"20"`
}

// EnrichmentConfig — политика периодического обогащения интересов.
type EnrichmentConfig struct {
	Interval time.Duration `yaml:"interval" env:"ENRICH_INTERVAL" env-default:"1m"`
	// Pacing — пауза между интересами внутри прохода (лимиты провайдеров).
	// Значение по умолчанию задаёт defaults(): "0s" в YAML должен доживать до validate.
	Pacing time.Duration `yaml:"pacing" env:"ENRICH_PACING"`
	// MaxArticles — предел статей на интерес.
	MaxArticles int `yaml:"max_articles" env:"ENRICH_MAX_ARTICLES" env-default:"5"`
	// BatchLimit — сколько интересов брать за проход; 0 — без ограничения.
	BatchLimit int  `yaml:"batch_limit"  env:"ENRICH_BATCH_LIMIT"  env-default:"0"`
	// RunOnStart — первый проход сразу после старта; по умолчанию true (см. defaults()).
	RunOnStart bool `yaml:"run_on_start" env:"ENRICH_RUN_ON_START"`
}

// LockConfig — межпроцессная блокировка прохода в Redis.
// Пустой RedisURL — только внутрипроцессная сериализация.
type LockConfig struct {
	RedisURL string `yaml:"redis_url" env:"REDIS_URL"`
	Key      string `yaml:"key"       env:"LOCK_KEY" env-default:"enrichment:run-lock"`
	// TTL — срок жизни ключа; пока проход идёт, ключ продлевается каждые TTL/3.
	TTL time.Duration `yaml:"ttl" env:"LOCK_TTL" env-default:"1m"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
// После чтения файла накладываем ENV-переменные поверх значений из YAML.
func Load(path string) (*Config, error) {
	cfg := defaults()

	readFile := func(p string) (*Config, error) {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file does not exist: %s", p)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	var (
		c   *Config
		err error
	)

	switch {
	case path != "":
		c, err = readFile(path)
	case os.Getenv("CONFIG_PATH") != "":
		c, err = readFile(os.Getenv("CONFIG_PATH"))
	default:
		if _, statErr := os.Stat("local.yaml"); statErr == nil {
			c, err = readFile("local.yaml")
			break
		}

		if err = cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
		}
		c = &cfg
	}

	if err != nil {
		return nil, err
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// defaults возвращает значения, у которых нулевое значение осмысленно.
// cleanenv подставляет env-default в любое нулевое поле, в том числе
// явно заданное в YAML, поэтому такие поля заполняются до чтения источников:
// YAML и ENV перекрывают их, а отсутствующий ключ оставляет default.
func defaults() Config {
	return Config{
		Enrichment: EnrichmentConfig{
			Pacing:     time.Second,
			RunOnStart: true,
		},
	}
}

// validate — базовая валидация значений.
func (c *Config) validate() error {
	if c.DB.URL == "" {
		return fmt.Errorf("db.url is required")
	}

	if c.News.APIKey == "" {
		return fmt.Errorf("news.api_key is required")
	}

	if c.LLM.APIKey == "" {
		return fmt.Errorf("llm.api_key is required")
	}

	if c.News.Links <= 0 {
		return fmt.Errorf("news.links must be > 0")
	}

	if c.LLM.WordLimit <= 0 {
		return fmt.Errorf("llm.word_limit must be > 0")
	}

	if c.Enrichment.Interval < time.Second {
		return fmt.Errorf("enrichment.interval must be at least 1s")
	}

	if c.Enrichment.Pacing < 0 {
		return fmt.Errorf("enrichment.pacing must be >= 0")
	}

	if c.Enrichment.MaxArticles <= 0 || c.Enrichment.MaxArticles > 50 {
		return fmt.Errorf("enrichment.max_articles must be in [1, 50]")
	}

	if c.Enrichment.BatchLimit < 0 {
		return fmt.Errorf("enrichment.batch_limit must be >= 0")
	}

	if c.Timeouts.Interest <= 0 {
		return fmt.Errorf("timeouts.interest must be > 0")
	}

	if c.Lock.RedisURL != "" && c.Lock.TTL < 3*time.Second {
		return fmt.Errorf("lock.ttl must be at least 3s")
	}

	return nil
}
