package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix 环境变量前缀，例如 POSTERBOT_MESSENGER_APP_SECRET
const EnvPrefix = "POSTERBOT"

// Config 是应用配置的根结构体。启动时构建一次，之后只读。
type Config struct {
	Gateway   GatewayConfig   `mapstructure:"gateway" yaml:"gateway"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
	Messenger MessengerConfig `mapstructure:"messenger" yaml:"messenger"`
	Responder ResponderConfig `mapstructure:"responder" yaml:"responder"`
	Analytics AnalyticsConfig `mapstructure:"analytics" yaml:"analytics"`
}

// GatewayConfig HTTP 服务配置
type GatewayConfig struct {
	Host            string        `mapstructure:"host" yaml:"host"`
	Port            int           `mapstructure:"port" yaml:"port"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes" yaml:"max_body_bytes"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// Addr returns host:port.
func (g GatewayConfig) Addr() string {
	return fmt.Sprintf("%s:%d", g.Host, g.Port)
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	File   string `mapstructure:"file" yaml:"file"`
}

// MessengerConfig Messenger 平台配置
type MessengerConfig struct {
	AppSecret        string        `mapstructure:"app_secret" yaml:"app_secret"`               // 校验 X-Hub-Signature 的 HMAC key
	VerifyToken      string        `mapstructure:"verify_token" yaml:"verify_token"`           // webhook 订阅校验 token
	PageAccessToken  string        `mapstructure:"page_access_token" yaml:"page_access_token"` // Send API 凭证
	GraphAPIURL      string        `mapstructure:"graph_api_url" yaml:"graph_api_url"`
	SendTimeout      time.Duration `mapstructure:"send_timeout" yaml:"send_timeout"`
	RequireSignature bool          `mapstructure:"require_signature" yaml:"require_signature"` // 生产环境应开启
}

// ResponderConfig 回复内容配置
type ResponderConfig struct {
	Mode         string `mapstructure:"mode" yaml:"mode"` // generic 或 images
	ImageBaseURL string `mapstructure:"image_base_url" yaml:"image_base_url"`
}

// AnalyticsConfig PostHog 配置，api key 为空表示关闭
type AnalyticsConfig struct {
	PosthogAPIKey   string `mapstructure:"posthog_api_key" yaml:"posthog_api_key"`
	PosthogEndpoint string `mapstructure:"posthog_endpoint" yaml:"posthog_endpoint"`
}

// Enabled reports whether analytics capture is configured.
func (a AnalyticsConfig) Enabled() bool {
	return a.PosthogAPIKey != ""
}

// Load 加载配置
// 优先级: ENV > 配置文件 > 默认值。配置文件不存在时忽略。
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return nil, err
		}
		v.SetConfigFile(expanded)
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("read config %s: %w", expanded, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// SaveTo 保存配置到指定路径 (0600，文件含密钥)
func SaveTo(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
