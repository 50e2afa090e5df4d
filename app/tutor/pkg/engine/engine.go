package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/math_tutor/app/tutor/pkg/analysis"
	"github.com/iWorld-y/math_tutor/app/tutor/pkg/config"
	"github.com/iWorld-y/math_tutor/app/tutor/pkg/logger"
)

var (
	// ErrEmptyQuestion 题目为空
	ErrEmptyQuestion = errors.New("question is empty")
	// ErrEmptyCompletion 模型返回了空内容
	ErrEmptyCompletion = errors.New("empty completion from model")
)

// Engine 核心处理引擎：提示词 → LLM → 结构化转换
type Engine struct {
	cfg       *config.Config
	chatModel model.BaseChatModel
	limiter   *rate.Limiter
	converter *analysis.Converter
	baseDelay time.Duration
}

// Option 引擎选项
type Option func(*Engine)

// WithConverter 替换默认的转换器
func WithConverter(c *analysis.Converter) Option {
	return func(e *Engine) { e.converter = c }
}

// WithConfig 替换默认配置
func WithConfig(cfg *config.Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// WithBaseDelay 限流重试的初始退避时间
func WithBaseDelay(d time.Duration) Option {
	return func(e *Engine) { e.baseDelay = d }
}

// NewEngine 根据配置创建引擎实例
func NewEngine(cfg *config.Config) (*Engine, error) {
	ctx := context.Background()

	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
		Timeout: cfg.LLM.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}

	return New(chatModel, NewLimiter(cfg.Concurrency), WithConfig(cfg)), nil
}

// NewLimiter 按 RPM 和 QPS 创建限流器
func NewLimiter(c config.ConcurrencyConfig) *rate.Limiter {
	limit := rate.Limit(float64(c.RPM) / 60.0)
	return rate.NewLimiter(limit, c.QPS)
}

// New 使用已有的模型和限流器创建引擎
func New(cm model.BaseChatModel, limiter *rate.Limiter, opts ...Option) *Engine {
	e := &Engine{
		cfg:       config.Default(),
		chatModel: cm,
		limiter:   limiter,
		converter: analysis.NewConverter(),
		baseDelay: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.limiter == nil {
		e.limiter = NewLimiter(e.cfg.Concurrency)
	}
	return e
}

// Generate 调用模型生成 markdown 格式的分析文本
func (e *Engine) Generate(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}

	ctx, cancel := context.WithTimeout(ctx, e.cfg.LLM.Timeout)
	defer cancel()

	messages := []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(BuildPrompt(question)),
	}

	maxRetries := e.cfg.LLM.MaxRetries
	var lastErr error

	for i := 0; i <= maxRetries; i++ {
		if err := e.limiter.Wait(ctx); err != nil {
			return "", err
		}

		start := time.Now()
		resp, err := e.chatModel.Generate(ctx, messages)
		if err != nil {
			if isRateLimited(err) {
				lastErr = err
				if i < maxRetries {
					delay := e.baseDelay * time.Duration(1<<i)
					logger.Log.Warnf("模型限流，%v 后第 %d 次重试: %v", delay, i+1, err)
					if err := sleep(ctx, delay); err != nil {
						return "", err
					}
					continue
				}
			}
			return "", fmt.Errorf("generate: %w", err)
		}
		logger.Log.WithField("elapsed", time.Since(start).Round(time.Millisecond)).Debugf("模型返回 %d 字符", len(resp.Content))

		content := stripFence(resp.Content)
		if content == "" {
			return "", ErrEmptyCompletion
		}
		return content, nil
	}
	return "", fmt.Errorf("failed after %d retries: %w", maxRetries, lastErr)
}

// Analyze 生成分析文本并转换为结构化文档
func (e *Engine) Analyze(ctx context.Context, question string) (*analysis.Response, error) {
	markdown, err := e.Generate(ctx, question)
	if err != nil {
		return nil, err
	}

	resp := e.converter.Convert(question, markdown)
	entry := logger.Log.WithField("analysis_id", resp.AnalysisID)
	if resp.OK() {
		entry.Infof("分析完成，共 %d 小问", resp.StructuredResult.TotalSubquestions)
	} else {
		entry.Errorf("转换失败: %s", resp.Error)
	}
	return resp, nil
}

// Convert 只做 markdown 到结构化文档的转换
func (e *Engine) Convert(question, markdown string) *analysis.Response {
	return e.converter.Convert(question, markdown)
}

func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(strings.ToLower(msg), "too many requests")
}

func stripFence(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```markdown")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
