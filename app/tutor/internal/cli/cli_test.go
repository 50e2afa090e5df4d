package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/iWorld-y/math_tutor/app/tutor/pkg/analysis"
)

const markdown = "## 题目分析\n### 题目背景\n绝对值问题\n## 各问分析\n### 第一问分析\n**考点识别：**\n- 绝对值\n\n**解题思路与步骤：**\n1. 画数轴\n2. 分段讨论\n\n## 解题建议\n1. 多画图"

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return ansiPattern.ReplaceAllString(out.String(), ""), err
}

func TestConvertStdin(t *testing.T) {
	out, err := run(t, markdown, "convert", "--question", "求最小值")
	if err != nil {
		t.Fatalf("convert error = %v", err)
	}

	var resp analysis.Response
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if !resp.OK() {
		t.Fatalf("Status = %q, error = %q", resp.Status, resp.Error)
	}
	doc := resp.StructuredResult
	if doc.Question != "求最小值" || doc.TotalSubquestions != 1 || doc.TotalSolutionSteps != 2 {
		t.Errorf("doc = %q/%d/%d", doc.Question, doc.TotalSubquestions, doc.TotalSolutionSteps)
	}
}

func TestConvertFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analysis.md")
	if err := os.WriteFile(path, []byte(markdown), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "", "convert", path, "--summary")
	if err != nil {
		t.Fatalf("convert error = %v", err)
	}
	for _, want := range []string{"success", "Sub questions: 1", "Steps: 2", "Suggestions: 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestConvertMissingFile(t *testing.T) {
	if _, err := run(t, "", "convert", filepath.Join(t.TempDir(), "missing.md")); err == nil {
		t.Error("convert on missing file: want error")
	}
}

func TestAnalyzeEmptyQuestion(t *testing.T) {
	_, err := run(t, "", "analyze", "--question", "   ")
	if err == nil || !strings.Contains(err.Error(), "题目为空") {
		t.Errorf("analyze error = %v, want empty question error", err)
	}
}

func TestAnalyzeSaveWithoutDB(t *testing.T) {
	_, err := run(t, "", "analyze", "--question", "q", "--save")
	if err == nil || !strings.Contains(err.Error(), "--save") {
		t.Errorf("analyze error = %v, want db config error", err)
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(out, "tutor dev") {
		t.Errorf("version = %q", out)
	}
}

func TestRenderSummaryError(t *testing.T) {
	var buf bytes.Buffer
	RenderSummary(&buf, &analysis.Response{Status: analysis.StatusError, AnalysisID: "x", Error: "boom"})

	out := ansiPattern.ReplaceAllString(buf.String(), "")
	if !strings.Contains(out, "boom") || !strings.Contains(out, "error") {
		t.Errorf("RenderSummary() = %q", out)
	}
}
