package server

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/math_tutor/app/api/internal/conf"
	"github.com/iWorld-y/math_tutor/app/api/internal/domain"
	"github.com/iWorld-y/math_tutor/app/api/internal/service"
	"github.com/iWorld-y/math_tutor/app/api/internal/usecase"
	"github.com/iWorld-y/math_tutor/app/tutor/pkg/analysis"
)

// memRepo 内存版分析仓库
type memRepo struct {
	items map[string]*analysis.Response
	order []string
}

func (m *memRepo) SaveAnalysis(ctx context.Context, question string, resp *analysis.Response) error {
	m.items[resp.AnalysisID] = resp
	m.order = append(m.order, resp.AnalysisID)
	return nil
}

func (m *memRepo) GetAnalysis(ctx context.Context, id string) (*analysis.Response, error) {
	resp, ok := m.items[id]
	if !ok {
		return nil, errors.NotFound("ANALYSIS_NOT_FOUND", "analysis not found")
	}
	return resp, nil
}

func (m *memRepo) ListAnalyses(ctx context.Context, page, pageSize int) ([]*domain.AnalysisSummary, int, error) {
	list := make([]*domain.AnalysisSummary, 0, len(m.order))
	for _, id := range m.order {
		list = append(list, &domain.AnalysisSummary{ID: id, Status: m.items[id].Status})
	}
	return list, len(m.order), nil
}

func newTestServer(t *testing.T) (*httptest.Server, *memRepo) {
	t.Helper()
	repo := &memRepo{items: map[string]*analysis.Response{}}
	uc := usecase.NewAnalysisUseCase(nil, repo, log.DefaultLogger)
	srv := NewHTTPServer(&conf.Server{Http: &conf.HTTP{Timeout: "5s"}}, service.NewTutorService(uc, log.DefaultLogger), log.DefaultLogger)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts, repo
}

func doJSON(t *testing.T, method, url, body string, out any) int {
	t.Helper()
	req, err := nethttp.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := nethttp.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s: %v", method, url, err)
		}
	}
	return resp.StatusCode
}

func TestConvertAndFetch(t *testing.T) {
	ts, repo := newTestServer(t)

	body := `{"question":"求最小值","markdown":"## 各问分析\n### 第一问分析\n**考点识别：**\n- p1\n\n## 解题建议\n1. s1"}`
	var resp analysis.Response
	if code := doJSON(t, "POST", ts.URL+"/api/convert", body, &resp); code != 200 {
		t.Fatalf("POST /api/convert status = %d", code)
	}
	if !resp.OK() || resp.StructuredResult.TotalSubquestions != 1 {
		t.Fatalf("convert resp = %+v", resp)
	}
	if len(repo.order) != 1 {
		t.Fatalf("saved %d analyses, want 1", len(repo.order))
	}

	var got analysis.Response
	if code := doJSON(t, "GET", ts.URL+"/api/analyses/"+resp.AnalysisID, "", &got); code != 200 {
		t.Fatalf("GET /api/analyses/{id} status = %d", code)
	}
	if got.AnalysisID != resp.AnalysisID {
		t.Errorf("fetched id = %q, want %q", got.AnalysisID, resp.AnalysisID)
	}

	var list service.ListAnalysesReply
	if code := doJSON(t, "GET", ts.URL+"/api/analyses?page=1&page_size=5", "", &list); code != 200 {
		t.Fatalf("GET /api/analyses status = %d", code)
	}
	if list.Total != 1 || list.PageSize != 5 || len(list.Analyses) != 1 {
		t.Errorf("list = %+v", list)
	}
}

func TestErrorStatus(t *testing.T) {
	ts, _ := newTestServer(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantCode   int
		wantReason string
	}{
		{name: "empty question", method: "POST", path: "/api/analyze/problem/json", body: `{"question":"  "}`, wantCode: 400, wantReason: "QUESTION_EMPTY"},
		{name: "no engine", method: "POST", path: "/api/analyze/problem/json", body: `{"question":"q"}`, wantCode: 503, wantReason: "ENGINE_UNAVAILABLE"},
		{name: "unknown id", method: "GET", path: "/api/analyses/missing", wantCode: 404, wantReason: "ANALYSIS_NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e struct {
				Reason string `json:"reason"`
			}
			if code := doJSON(t, tt.method, ts.URL+tt.path, tt.body, &e); code != tt.wantCode {
				t.Errorf("status = %d, want %d", code, tt.wantCode)
			}
			if e.Reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", e.Reason, tt.wantReason)
			}
		})
	}
}

func TestHealthAndInfo(t *testing.T) {
	ts, _ := newTestServer(t)

	var health service.HealthReply
	if code := doJSON(t, "GET", ts.URL+"/api/health", "", &health); code != 200 || health.Status != "healthy" {
		t.Errorf("health = %d %+v", code, health)
	}

	var info service.ServiceInfoReply
	if code := doJSON(t, "GET", ts.URL+"/api/service/info", "", &info); code != 200 {
		t.Fatalf("info status = %d", code)
	}
	if info.Name != service.ServiceName || info.FormatVersion != analysis.FormatVersion || len(info.Endpoints) != len(service.Endpoints) {
		t.Errorf("info = %+v", info)
	}
}

func TestTutorConfig(t *testing.T) {
	cfg := TutorConfig(&conf.Tutor{
		Llm:         &conf.LLM{BaseUrl: "http://llm", ApiKey: "k", Model: "m", Timeout: "30s"},
		Concurrency: &conf.Concurrency{Qps: 2},
	})
	if cfg.LLM.BaseURL != "http://llm" || cfg.LLM.Model != "m" || cfg.LLM.Timeout.Seconds() != 30 {
		t.Errorf("LLM = %+v", cfg.LLM)
	}
	if cfg.Concurrency.QPS != 2 || cfg.Concurrency.RPM != 60 {
		t.Errorf("Concurrency = %+v", cfg.Concurrency)
	}
	if cfg.Log.Level != "info" || cfg.LLM.MaxRetries != 3 {
		t.Errorf("defaults not applied: %+v", cfg)
	}

	if d := TutorConfig(nil); d.LLM.BaseURL == "" {
		t.Error("TutorConfig(nil) has no defaults")
	}
}
