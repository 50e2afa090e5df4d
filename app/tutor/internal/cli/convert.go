package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/math_tutor/app/tutor/pkg/analysis"
)

func newConvertCmd() *cobra.Command {
	var (
		question string
		summary  bool
	)

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "把 markdown 格式的分析转换为结构化 JSON",
		Long:  `从文件读取 markdown 分析文本（不指定文件时读取标准输入），输出转换结果。`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			markdown, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			resp := analysis.Convert(question, markdown)
			if summary {
				RenderSummary(cmd.OutOrStdout(), resp)
				return nil
			}
			return writeJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVarP(&question, "question", "q", "", "题目原文")
	cmd.Flags().BoolVar(&summary, "summary", false, "输出摘要而不是 JSON")
	return cmd
}

func readInput(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}

	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(b), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
