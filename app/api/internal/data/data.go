package data

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/math_tutor/app/api/internal/conf"
	"github.com/iWorld-y/math_tutor/app/tutor/pkg/analysis"
	"github.com/iWorld-y/math_tutor/app/tutor/pkg/storage"
)

// analysisStore 由 storage.Storage 实现
type analysisStore interface {
	SaveAnalysis(ctx context.Context, question string, resp *analysis.Response) error
	GetAnalysis(ctx context.Context, id string) (*analysis.Response, error)
	ListAnalyses(ctx context.Context, page, pageSize int) ([]storage.Summary, int, error)
	Close() error
}

type Data struct {
	store analysisStore
}

func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	helper := log.NewHelper(logger)
	if c == nil || c.Database == nil || c.Database.Source == "" {
		helper.Warn("database source is empty, analyses will not be persisted")
		return &Data{}, func() {}, nil
	}

	driver := c.Database.Driver
	if driver == "" {
		driver = "postgres"
	}
	store, err := storage.Open(driver, c.Database.Source)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		helper.Info("closing the data resources")
		store.Close()
	}
	return &Data{store: store}, cleanup, nil
}
