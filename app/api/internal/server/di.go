package server

import (
	"github.com/google/wire"

	"github.com/iWorld-y/math_tutor/app/api/internal/data"
	"github.com/iWorld-y/math_tutor/app/api/internal/service"
	"github.com/iWorld-y/math_tutor/app/api/internal/usecase"
	"github.com/iWorld-y/math_tutor/app/tutor/pkg/engine"
)

// ProviderSet 是分析服务的依赖注入 Provider 集合
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,
	NewGRPCServer,
	NewTutorEngine,
	wire.Bind(new(usecase.Analyzer), new(*engine.Engine)),

	// Data providers
	data.NewData,
	data.NewAnalysisRepo,

	// UseCase providers
	usecase.NewAnalysisUseCase,

	// Service providers
	service.NewTutorService,
)
