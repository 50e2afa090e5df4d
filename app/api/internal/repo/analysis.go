package repo

import (
	"context"

	"github.com/iWorld-y/math_tutor/app/api/internal/domain"
	"github.com/iWorld-y/math_tutor/app/tutor/pkg/analysis"
)

// AnalysisRepo 分析记录仓库接口
type AnalysisRepo interface {
	// SaveAnalysis 保存一次分析的响应
	SaveAnalysis(ctx context.Context, question string, resp *analysis.Response) error
	// GetAnalysis 根据ID获取保存的响应
	GetAnalysis(ctx context.Context, id string) (*analysis.Response, error)
	// ListAnalyses 分页获取分析摘要列表
	ListAnalyses(ctx context.Context, page, pageSize int) ([]*domain.AnalysisSummary, int, error)
}
