package server

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/math_tutor/app/api/internal/conf"
	"github.com/iWorld-y/math_tutor/app/api/internal/service"
)

const (
	OperationAnalyzeProblem = "/math_tutor.v1.Tutor/AnalyzeProblem"
	OperationConvert        = "/math_tutor.v1.Tutor/Convert"
	OperationListAnalyses   = "/math_tutor.v1.Tutor/ListAnalyses"
	OperationGetAnalysis    = "/math_tutor.v1.Tutor/GetAnalysis"
	OperationHealth         = "/math_tutor.v1.Tutor/Health"
	OperationServiceInfo    = "/math_tutor.v1.Tutor/ServiceInfo"
)

func NewHTTPServer(c *conf.Server, s *service.TutorService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
	}
	if c != nil && c.Http != nil {
		if c.Http.Addr != "" {
			opts = append(opts, http.Address(c.Http.Addr))
		}
		if c.Http.Timeout != "" {
			if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
				opts = append(opts, http.Timeout(d))
			}
		}
	}

	srv := http.NewServer(opts...)
	RegisterTutorHTTPServer(srv, s)
	return srv
}

// RegisterTutorHTTPServer 注册分析服务的 HTTP 路由
func RegisterTutorHTTPServer(srv *http.Server, s *service.TutorService) {
	r := srv.Route("/api")
	r.POST("/analyze/problem/json", handler(OperationAnalyzeProblem, bindBody[service.AnalyzeRequest], s.AnalyzeProblem))
	r.POST("/convert", handler(OperationConvert, bindBody[service.ConvertRequest], s.Convert))
	r.GET("/analyses", handler(OperationListAnalyses, bindQuery[service.ListAnalysesRequest], s.ListAnalyses))
	r.GET("/analyses/{id}", handler(OperationGetAnalysis, bindVars[service.GetAnalysisRequest], s.GetAnalysis))
	r.GET("/health", handler(OperationHealth, bindNone[service.Empty], s.Health))
	r.GET("/service/info", handler(OperationServiceInfo, bindNone[service.Empty], s.ServiceInfo))
}

func handler[Req, Reply any](operation string, bind func(http.Context, *Req) error, call func(context.Context, *Req) (*Reply, error)) http.HandlerFunc {
	return func(ctx http.Context) error {
		var in Req
		if err := bind(ctx, &in); err != nil {
			return err
		}
		http.SetOperation(ctx, operation)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(ctx, req.(*Req))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func bindBody[T any](ctx http.Context, v *T) error  { return ctx.Bind(v) }
func bindQuery[T any](ctx http.Context, v *T) error { return ctx.BindQuery(v) }
func bindVars[T any](ctx http.Context, v *T) error  { return ctx.BindVars(v) }
func bindNone[T any](http.Context, *T) error        { return nil }
