package usecase

import (
	"context"
	"strings"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/math_tutor/app/api/internal/domain"
	"github.com/iWorld-y/math_tutor/app/api/internal/repo"
	"github.com/iWorld-y/math_tutor/app/tutor/pkg/analysis"
)

var (
	ErrQuestionEmpty     = errors.BadRequest("QUESTION_EMPTY", "题目不能为空")
	ErrEngineUnavailable = errors.ServiceUnavailable("ENGINE_UNAVAILABLE", "analysis engine is not configured")
)

// Analyzer 由 engine.Engine 实现
type Analyzer interface {
	Analyze(ctx context.Context, question string) (*analysis.Response, error)
	Convert(question, markdown string) *analysis.Response
}

// AnalysisUseCase 题目分析业务逻辑
type AnalysisUseCase struct {
	analyzer Analyzer
	repo     repo.AnalysisRepo
	log      *log.Helper
}

// NewAnalysisUseCase 创建分析业务逻辑实例
func NewAnalysisUseCase(analyzer Analyzer, repo repo.AnalysisRepo, logger log.Logger) *AnalysisUseCase {
	return &AnalysisUseCase{analyzer: analyzer, repo: repo, log: log.NewHelper(logger)}
}

// Analyze 调用大模型分析题目，结果会被保存
func (uc *AnalysisUseCase) Analyze(ctx context.Context, question string) (*analysis.Response, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrQuestionEmpty
	}
	if uc.analyzer == nil {
		return nil, ErrEngineUnavailable
	}

	resp, err := uc.analyzer.Analyze(ctx, question)
	if err != nil {
		uc.log.WithContext(ctx).Errorf("analyze failed: %v", err)
		return nil, errors.InternalServer("ANALYZE_FAILED", err.Error()).WithCause(err)
	}
	uc.save(ctx, question, resp)
	return resp, nil
}

// Convert 只转换已有的 markdown 分析文本
func (uc *AnalysisUseCase) Convert(ctx context.Context, question, markdown string) (*analysis.Response, error) {
	var resp *analysis.Response
	if uc.analyzer != nil {
		resp = uc.analyzer.Convert(question, markdown)
	} else {
		resp = analysis.Convert(question, markdown)
	}
	uc.save(ctx, question, resp)
	return resp, nil
}

// List 分页列出分析摘要
func (uc *AnalysisUseCase) List(ctx context.Context, page, pageSize int) ([]*domain.AnalysisSummary, int, error) {
	return uc.repo.ListAnalyses(ctx, page, pageSize)
}

// Get 根据ID获取分析结果
func (uc *AnalysisUseCase) Get(ctx context.Context, id string) (*analysis.Response, error) {
	return uc.repo.GetAnalysis(ctx, id)
}

// 保存失败不影响本次请求
func (uc *AnalysisUseCase) save(ctx context.Context, question string, resp *analysis.Response) {
	if err := uc.repo.SaveAnalysis(ctx, question, resp); err != nil {
		uc.log.WithContext(ctx).Warnf("save analysis %s failed: %v", resp.AnalysisID, err)
	}
}
