package config

import (
	"os"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Exchange ExchangeConfig
	Pair     PairConfig
	Journal  JournalConfig
	Server   ServerConfig
	Runtime  RuntimeConfig
}

type ExchangeConfig struct {
	BaseUrl        string
	WSUrl          string
	AccessToken    string
	SecretKey      string
	TimeoutSeconds int
}

type PairConfig struct {
	QuoteCurrency  string
	TargetCurrency string
	MinNotional    float64
	MinQty         float64
	QtyStep        float64
}

type JournalConfig struct {
	Path string
}

type ServerConfig struct {
	ListenAddr string
}

type RuntimeConfig struct {
	RefreshIntervalMs int
	Log               LogConfig
}

type LogConfig struct {
	Level      string
	Format     string
	File       string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

func Load() (*Config, error) {

	cfg := &Config{}
	viper.AddConfigPath("configs")
	viper.SetConfigName("config")

	viper.SetDefault("exchange.base_url", "https://api.coinone.co.kr")
	viper.SetDefault("exchange.ws_url", "wss://stream.coinone.co.kr")
	viper.SetDefault("exchange.timeout_seconds", 10)
	viper.SetDefault("pair.quote_currency", "KRW")
	viper.SetDefault("pair.target_currency", "USDT")
	viper.SetDefault("pair.min_notional", 1000)
	viper.SetDefault("pair.min_qty", 0.001)
	viper.SetDefault("pair.qty_step", 1)
	viper.SetDefault("journal.path", "order_log.json")
	viper.SetDefault("server.listen_addr", ":8080")
	viper.SetDefault("runtime.refresh_interval_ms", 500)

	viper.ReadInConfig()

	cfg.Exchange = ExchangeConfig{
		BaseUrl:        viper.GetString("exchange.base_url"),
		WSUrl:          viper.GetString("exchange.ws_url"),
		AccessToken:    envSub("exchange.access_token"),
		SecretKey:      envSub("exchange.secret_key"),
		TimeoutSeconds: viper.GetInt("exchange.timeout_seconds"),
	}

	cfg.Pair = PairConfig{
		QuoteCurrency:  viper.GetString("pair.quote_currency"),
		TargetCurrency: viper.GetString("pair.target_currency"),
		MinNotional:    viper.GetFloat64("pair.min_notional"),
		MinQty:         viper.GetFloat64("pair.min_qty"),
		QtyStep:        viper.GetFloat64("pair.qty_step"),
	}

	cfg.Journal = JournalConfig{
		Path: viper.GetString("journal.path"),
	}

	cfg.Server = ServerConfig{
		ListenAddr: viper.GetString("server.listen_addr"),
	}

	cfg.Runtime = RuntimeConfig{
		RefreshIntervalMs: viper.GetInt("runtime.refresh_interval_ms"),
		Log: LogConfig{
			Level:      viper.GetString("runtime.log.level"),
			Format:     viper.GetString("runtime.log.format"),
			File:       viper.GetString("runtime.log.file"),
			MaxSize:    viper.GetInt("runtime.log.max_size"),
			MaxBackups: viper.GetInt("runtime.log.max_backups"),
			MaxAge:     viper.GetInt("runtime.log.max_age"),
			Compress:   viper.GetBool("runtime.log.compress"),
		},
	}

	return cfg, nil
}

func envSub(key string) string {
	val := viper.GetString(key)
	if val == "" {
		return ""
	}

	re := regexp.MustCompile(`\$\{(\w+)\}`)
	return re.ReplaceAllStringFunc(val, func(match string) string {
		envKey := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		return os.Getenv(envKey)
	})
}
