package service

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/math_tutor/app/api/internal/usecase"
	"github.com/iWorld-y/math_tutor/app/tutor/pkg/analysis"
)

// ServiceName 服务名
const ServiceName = "math-tutor"

type AnalyzeRequest struct {
	Question string `json:"question"`
}

type ConvertRequest struct {
	Question string `json:"question"`
	Markdown string `json:"markdown"`
}

type ListAnalysesRequest struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

type AnalysisSummary struct {
	ID                string `json:"analysis_id"`
	Question          string `json:"question"`
	Status            string `json:"status"`
	Difficulty        string `json:"difficulty,omitempty"`
	TotalSubquestions int    `json:"total_subquestions"`
	CreatedAt         string `json:"created_at"`
}

type ListAnalysesReply struct {
	Analyses []*AnalysisSummary `json:"analyses"`
	Total    int                `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

type GetAnalysisRequest struct {
	ID string `json:"id"`
}

type Empty struct{}

type HealthReply struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

type ServiceInfoReply struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	FormatVersion string   `json:"format_version"`
	Endpoints     []string `json:"endpoints"`
}

// Endpoints HTTP 路由列表，server 按此注册
var Endpoints = []string{
	"POST /api/analyze/problem/json",
	"POST /api/convert",
	"GET /api/analyses",
	"GET /api/analyses/{id}",
	"GET /api/health",
	"GET /api/service/info",
}

type TutorService struct {
	uc  *usecase.AnalysisUseCase
	log *log.Helper
}

func NewTutorService(uc *usecase.AnalysisUseCase, logger log.Logger) *TutorService {
	return &TutorService{
		uc:  uc,
		log: log.NewHelper(logger),
	}
}

func (s *TutorService) AnalyzeProblem(ctx context.Context, req *AnalyzeRequest) (*analysis.Response, error) {
	return s.uc.Analyze(ctx, req.Question)
}

func (s *TutorService) Convert(ctx context.Context, req *ConvertRequest) (*analysis.Response, error) {
	return s.uc.Convert(ctx, req.Question, req.Markdown)
}

func (s *TutorService) ListAnalyses(ctx context.Context, req *ListAnalysesRequest) (*ListAnalysesReply, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 10
	}

	rows, total, err := s.uc.List(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	list := make([]*AnalysisSummary, 0, len(rows))
	for _, r := range rows {
		list = append(list, &AnalysisSummary{
			ID:                r.ID,
			Question:          r.Question,
			Status:            r.Status,
			Difficulty:        r.Difficulty,
			TotalSubquestions: r.TotalSubquestions,
			CreatedAt:         r.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	return &ListAnalysesReply{
		Analyses: list,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *TutorService) GetAnalysis(ctx context.Context, req *GetAnalysisRequest) (*analysis.Response, error) {
	return s.uc.Get(ctx, req.ID)
}

func (s *TutorService) Health(ctx context.Context, _ *Empty) (*HealthReply, error) {
	return &HealthReply{
		Status:    "healthy",
		Service:   ServiceName,
		Timestamp: time.Now().Format(time.RFC3339),
	}, nil
}

func (s *TutorService) ServiceInfo(ctx context.Context, _ *Empty) (*ServiceInfoReply, error) {
	return &ServiceInfoReply{
		Name:          ServiceName,
		Description:   "初中数学压轴题分析服务，输出结构化分析文档",
		FormatVersion: analysis.FormatVersion,
		Endpoints:     Endpoints,
	}, nil
}
