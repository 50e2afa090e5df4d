package server

import (
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/math_tutor/app/api/internal/conf"
	"github.com/iWorld-y/math_tutor/app/tutor/pkg/config"
	"github.com/iWorld-y/math_tutor/app/tutor/pkg/engine"
	tutorLogger "github.com/iWorld-y/math_tutor/app/tutor/pkg/logger"
)

// NewTutorEngine 初始化分析引擎
func NewTutorEngine(c *conf.Tutor, logger log.Logger) (*engine.Engine, func(), error) {
	cfg := TutorConfig(c)

	if err := tutorLogger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.NewHelper(logger).Errorf("Failed to init tutor logger: %v", err)
		_ = tutorLogger.InitLogger("info", "") // 降级处理
	}

	eng, err := engine.NewEngine(cfg)
	if err != nil {
		log.NewHelper(logger).Errorf("Failed to init engine: %v", err)
		return nil, nil, err
	}

	cleanup := func() {
		log.NewHelper(logger).Info("Cleaning up tutor engine")
	}
	return eng, cleanup, nil
}

// TutorConfig 将 internal/conf.Tutor 转换为 pkg/config.Config 并填充默认值
func TutorConfig(c *conf.Tutor) *config.Config {
	cfg := &config.Config{}
	if c != nil {
		if c.Llm != nil {
			cfg.LLM = config.LLMConfig{
				BaseURL:    c.Llm.BaseUrl,
				APIKey:     c.Llm.ApiKey,
				Model:      c.Llm.Model,
				MaxRetries: int(c.Llm.MaxRetries),
			}
			if d, err := time.ParseDuration(c.Llm.Timeout); err == nil {
				cfg.LLM.Timeout = d
			}
		}
		if c.Log != nil {
			cfg.Log = config.LogConfig{Level: c.Log.Level, File: c.Log.File}
		}
		if c.Concurrency != nil {
			cfg.Concurrency = config.ConcurrencyConfig{
				QPS: int(c.Concurrency.Qps),
				RPM: int(c.Concurrency.Rpm),
			}
		}
	}
	cfg.ApplyDefaults()
	return cfg
}
