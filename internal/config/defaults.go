package config

import (
	"time"

	"github.com/spf13/viper"
)

// 默认值
const (
	DefaultHost         = "0.0.0.0"
	DefaultPort         = 5000
	DefaultGraphAPIURL  = "https://graph.facebook.com/v2.6"
	DefaultImageBaseURL = "https://rodnolan.github.io/posterific-static-images/"
	DefaultSendTimeout  = 5 * time.Second
	DefaultMaxBodyBytes = 1 << 20
)

// SetDefaults 设置所有配置项的默认值。
// 每个键都必须在这里出现，AutomaticEnv 才能在 Unmarshal 时覆盖它。
func SetDefaults(v *viper.Viper) {
	// Gateway
	v.SetDefault("gateway.host", DefaultHost)
	v.SetDefault("gateway.port", DefaultPort)
	v.SetDefault("gateway.max_body_bytes", DefaultMaxBodyBytes)
	v.SetDefault("gateway.read_timeout", 30*time.Second)
	v.SetDefault("gateway.shutdown_timeout", 10*time.Second)

	// Log
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")

	// Messenger，三个密钥没有默认值，必须由文件或环境变量提供
	v.SetDefault("messenger.app_secret", "")
	v.SetDefault("messenger.verify_token", "")
	v.SetDefault("messenger.page_access_token", "")
	v.SetDefault("messenger.graph_api_url", DefaultGraphAPIURL)
	v.SetDefault("messenger.send_timeout", DefaultSendTimeout)
	v.SetDefault("messenger.require_signature", false)

	// Responder
	v.SetDefault("responder.mode", "generic")
	v.SetDefault("responder.image_base_url", DefaultImageBaseURL)

	// Analytics
	v.SetDefault("analytics.posthog_api_key", "")
	v.SetDefault("analytics.posthog_endpoint", "")
}

// Default returns the configuration produced by the defaults alone.
func Default() *Config {
	return &Config{
		Gateway: GatewayConfig{
			Host:            DefaultHost,
			Port:            DefaultPort,
			MaxBodyBytes:    DefaultMaxBodyBytes,
			ReadTimeout:     30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{Level: "info", Format: "console"},
		Messenger: MessengerConfig{
			GraphAPIURL: DefaultGraphAPIURL,
			SendTimeout: DefaultSendTimeout,
		},
		Responder: ResponderConfig{
			Mode:         "generic",
			ImageBaseURL: DefaultImageBaseURL,
		},
	}
}
