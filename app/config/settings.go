package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/locality-resolver/app/services"
	"github.com/locality-resolver/internal/geocoder"
)

// SetDefaults registers runtime defaults and env bindings on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.shutdown_timeout", 15*time.Second)

	v.SetDefault("provider.base_url", geocoder.DefaultBaseURL)
	v.SetDefault("provider.api_key", "")
	v.SetDefault("provider.timeout", geocoder.DefaultTimeout)
	v.SetDefault("provider.user_agent", geocoder.DefaultUserAgent)
	v.SetDefault("provider.rate_limit", 2.0)
	v.SetDefault("provider.rate_burst", 2)
	v.SetDefault("provider.limiter_cache_size", 256)
	v.SetDefault("provider.breaker.enabled", false)
	v.SetDefault("provider.breaker.max_requests", 1)
	v.SetDefault("provider.breaker.interval", time.Minute)
	v.SetDefault("provider.breaker.timeout", 30*time.Second)
	v.SetDefault("provider.breaker.failure_threshold", 5)

	v.SetDefault("locality.config_path", "config/locality.yaml")
	v.SetDefault("locality.batch_max", services.DefaultBatchMax)
	v.SetDefault("locality.batch_concurrency", services.DefaultBatchConcurrency)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// LocationIQ's conventional variable name
	_ = v.BindEnv("provider.api_key", "PROVIDER_API_KEY", "LOCATIONIQ_API_KEY")
}

// ProviderOptions reads the geocoder client options from v.
func ProviderOptions(v *viper.Viper) geocoder.Options {
	return geocoder.Options{
		BaseURL:          v.GetString("provider.base_url"),
		Timeout:          v.GetDuration("provider.timeout"),
		UserAgent:        v.GetString("provider.user_agent"),
		RateLimit:        v.GetFloat64("provider.rate_limit"),
		RateBurst:        v.GetInt("provider.rate_burst"),
		LimiterCacheSize: v.GetInt("provider.limiter_cache_size"),
		Breaker: geocoder.BreakerOptions{
			Enabled:          v.GetBool("provider.breaker.enabled"),
			MaxRequests:      v.GetUint32("provider.breaker.max_requests"),
			Interval:         v.GetDuration("provider.breaker.interval"),
			Timeout:          v.GetDuration("provider.breaker.timeout"),
			FailureThreshold: v.GetUint32("provider.breaker.failure_threshold"),
		},
	}
}

// ServiceConfig reads the LocalityService settings from v.
func ServiceConfig(v *viper.Viper) services.LocalityServiceConfig {
	return services.LocalityServiceConfig{
		APIKey:           v.GetString("provider.api_key"),
		BatchMax:         v.GetInt("locality.batch_max"),
		BatchConcurrency: v.GetInt("locality.batch_concurrency"),
	}
}
