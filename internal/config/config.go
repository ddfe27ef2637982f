package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// デフォルト値
const (
	DefaultHost = "localhost"
	DefaultPort = 4000
)

// Config はアプリケーション全体の設定を保持する構造体
type Config struct {
	Server ServerConfig `yaml:"server"`
	Static StaticConfig `yaml:"static"`
}

// ServerConfig はHTTPサーバーの設定
type ServerConfig struct {
	Host string `yaml:"host"` // リッスンするホスト
	Port int    `yaml:"port"` // リッスンするポート番号

	// タイムアウト設定
	ReadTimeout     time.Duration `yaml:"read_timeout"`     // 読み込みタイムアウト
	WriteTimeout    time.Duration `yaml:"write_timeout"`    // 書き込みタイムアウト
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // シャットダウン待ち時間
}

// StaticConfig は静的ファイル配信の設定
type StaticConfig struct {
	// ベースディレクトリ。親ディレクトリも配信ルートになる
	BaseDir string `yaml:"base_dir"`

	// 解決後のパスをベースディレクトリか親ディレクトリの中に制限する
	Confine bool `yaml:"confine"`

	// 未知の拡張子はファイル内容からMIMEタイプを判定する
	SniffUnknown bool `yaml:"sniff_unknown"`
}

// Load は設定を読み込む
// デフォルト値、CONFIG_FILE のYAML、PORT 環境変数の順で上書きする
func Load() (*Config, error) {
	// .env は任意。存在する場合は正しい形式であること
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf(".env の読み込みに失敗: %w", err)
	}

	cfg, err := defaults()
	if err != nil {
		return nil, err
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.overlayFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyPortEnv()

	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile はデフォルト設定にYAMLファイルを重ねて読み込む
func LoadFile(path string) (*Config, error) {
	cfg, err := defaults()
	if err != nil {
		return nil, err
	}
	if err := cfg.overlayFile(path); err != nil {
		return nil, err
	}
	cfg.applyPortEnv()
	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// defaults は環境変数を反映したデフォルト設定を作成する
func defaults() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("作業ディレクトリの取得に失敗: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Host:            DefaultHost,
			Port:            DefaultPort,
			ReadTimeout:     0, // タイムアウトなし
			WriteTimeout:    0, // 大きなファイルを遅いクライアントに送るため無効化
			ShutdownTimeout: 5 * time.Second,
		},
		Static: StaticConfig{
			BaseDir:      getEnvOrDefault("STATIC_DIR", wd),
			Confine:      true,
			SniffUnknown: false,
		},
	}, nil
}

// overlayFile はYAMLファイルの内容を設定に重ねる
func (c *Config) overlayFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("設定ファイルの読み込みに失敗: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("設定ファイルの解析に失敗: %w", err)
	}
	return nil
}

// applyPortEnv は PORT 環境変数が有効な場合にポートを上書きする
func (c *Config) applyPortEnv() {
	c.Server.Port = getEnvAsPortOrDefault("PORT", c.Server.Port)
}

// finalize はパスを絶対パスにしてから検証する
func (c *Config) finalize() error {
	abs, err := filepath.Abs(c.Static.BaseDir)
	if err != nil {
		return fmt.Errorf("ベースディレクトリの解決に失敗: %w", err)
	}
	c.Static.BaseDir = abs

	if err := c.Validate(); err != nil {
		return fmt.Errorf("設定の検証に失敗: %w", err)
	}
	return nil
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	// サーバー設定の検証
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("無効なポート番号: %d", c.Server.Port)
	}

	if c.Static.BaseDir == "" {
		return errors.New("ベースディレクトリが設定されていません")
	}
	info, err := os.Stat(c.Static.BaseDir)
	if err != nil {
		return fmt.Errorf("ベースディレクトリにアクセスできません: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("ベースディレクトリではありません: %s", c.Static.BaseDir)
	}

	return nil
}

// ServerAddress はサーバーのリッスンアドレスを返す
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// ListenURL はブラウザで開くURLを返す
func (c *Config) ListenURL() string {
	return "http://" + c.ServerAddress()
}

// getEnvOrDefault は環境変数を取得し、設定されていない場合はデフォルト値を返す
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsPortOrDefault は環境変数をポート番号として取得する
// 未設定、整数でない、範囲外の場合はデフォルト値を返す
func getEnvAsPortOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if port, err := strconv.Atoi(value); err == nil && port > 0 && port <= 65535 {
			return port
		}
	}
	return defaultValue
}
