package data

import (
	"context"
	stderrors "errors"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/math_tutor/app/api/internal/domain"
	"github.com/iWorld-y/math_tutor/app/api/internal/repo"
	"github.com/iWorld-y/math_tutor/app/tutor/pkg/analysis"
	"github.com/iWorld-y/math_tutor/app/tutor/pkg/storage"
)

var errStorageDisabled = errors.ServiceUnavailable("STORAGE_DISABLED", "analysis storage is not configured")

type analysisRepo struct {
	data *Data
	log  *log.Helper
}

func NewAnalysisRepo(data *Data, logger log.Logger) repo.AnalysisRepo {
	return &analysisRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *analysisRepo) SaveAnalysis(ctx context.Context, question string, resp *analysis.Response) error {
	if r.data.store == nil {
		r.log.WithContext(ctx).Debugf("storage disabled, skip saving analysis %s", resp.AnalysisID)
		return nil
	}
	return r.data.store.SaveAnalysis(ctx, question, resp)
}

func (r *analysisRepo) GetAnalysis(ctx context.Context, id string) (*analysis.Response, error) {
	if r.data.store == nil {
		return nil, errStorageDisabled
	}
	resp, err := r.data.store.GetAnalysis(ctx, id)
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return nil, errors.NotFound("ANALYSIS_NOT_FOUND", "analysis not found")
		}
		return nil, err
	}
	return resp, nil
}

func (r *analysisRepo) ListAnalyses(ctx context.Context, page, pageSize int) ([]*domain.AnalysisSummary, int, error) {
	if r.data.store == nil {
		return nil, 0, errStorageDisabled
	}
	rows, total, err := r.data.store.ListAnalyses(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]*domain.AnalysisSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, &domain.AnalysisSummary{
			ID:                row.ID,
			Question:          row.Question,
			Status:            row.Status,
			Difficulty:        row.Difficulty,
			TotalSubquestions: row.TotalSubquestions,
			CreatedAt:         row.CreatedAt,
		})
	}
	return summaries, total, nil
}
