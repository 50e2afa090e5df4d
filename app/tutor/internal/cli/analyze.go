package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/math_tutor/app/tutor/pkg/config"
	"github.com/iWorld-y/math_tutor/app/tutor/pkg/engine"
	"github.com/iWorld-y/math_tutor/app/tutor/pkg/logger"
	"github.com/iWorld-y/math_tutor/app/tutor/pkg/storage"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		configPath   string
		question     string
		questionFile string
		save         bool
		summary      bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "调用大模型分析题目并输出结构化结果",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if err := logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			if questionFile != "" {
				b, err := os.ReadFile(questionFile)
				if err != nil {
					return fmt.Errorf("read %s: %w", questionFile, err)
				}
				question = string(b)
			}
			question = strings.TrimSpace(question)
			if question == "" {
				return fmt.Errorf("题目为空，请使用 --question 或 --question-file 指定")
			}

			var store *storage.Storage
			if save {
				if !cfg.DB.Enabled() {
					return fmt.Errorf("--save 需要在配置文件中设置 db")
				}
				store, err = storage.NewStorage(cfg.DB)
				if err != nil {
					return err
				}
				defer store.Close()
			}

			eng, err := engine.NewEngine(cfg)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			resp, err := eng.Analyze(ctx, question)
			if err != nil {
				return fmt.Errorf("analyze: %w", err)
			}

			if store != nil {
				if err := store.SaveAnalysis(ctx, question, resp); err != nil {
					logger.Log.Errorf("保存分析结果失败: %v", err)
				} else {
					logger.Log.Infof("分析结果已保存: %s", resp.AnalysisID)
				}
			}

			if summary {
				RenderSummary(cmd.OutOrStdout(), resp)
				return nil
			}
			return writeJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "配置文件路径（不指定时使用默认配置）")
	cmd.Flags().StringVarP(&question, "question", "q", "", "题目原文")
	cmd.Flags().StringVar(&questionFile, "question-file", "", "从文件读取题目")
	cmd.Flags().BoolVar(&save, "save", false, "把结果保存到数据库")
	cmd.Flags().BoolVar(&summary, "summary", false, "输出摘要而不是 JSON")
	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
