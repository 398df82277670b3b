package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConfigMissing 缺少必填配置
var ErrConfigMissing = errors.New("missing required configuration")

// Missing returns the keys of required settings that are empty, in a
// stable order.
func (c *Config) Missing() []string {
	var missing []string
	if c.Messenger.AppSecret == "" {
		missing = append(missing, "messenger.app_secret")
	}
	if c.Messenger.VerifyToken == "" {
		missing = append(missing, "messenger.verify_token")
	}
	if c.Messenger.PageAccessToken == "" {
		missing = append(missing, "messenger.page_access_token")
	}
	return missing
}

// Validate 校验配置。所有问题一次性返回，缺失的密钥包装 ErrConfigMissing。
func (c *Config) Validate() error {
	var errs []error

	if missing := c.Missing(); len(missing) > 0 {
		errs = append(errs, fmt.Errorf("%w: %s", ErrConfigMissing, strings.Join(missing, ", ")))
	}

	if c.Gateway.Port < 1 || c.Gateway.Port > 65535 {
		errs = append(errs, fmt.Errorf("gateway.port %d out of range", c.Gateway.Port))
	}
	if c.Gateway.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("gateway.max_body_bytes must be positive"))
	}
	if c.Messenger.SendTimeout <= 0 {
		errs = append(errs, fmt.Errorf("messenger.send_timeout must be positive"))
	}

	switch c.Responder.Mode {
	case "", "generic", "images":
	default:
		errs = append(errs, fmt.Errorf("responder.mode %q: want generic or images", c.Responder.Mode))
	}

	switch c.Log.Format {
	case "", "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q: want console or json", c.Log.Format))
	}

	return errors.Join(errs...)
}
