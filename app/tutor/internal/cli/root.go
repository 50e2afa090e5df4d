package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/math_tutor/app/tutor/internal/version"
)

// NewRootCmd 创建 tutor 根命令
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tutor",
		Short: "初中数学压轴题分析工具",
		Long: `tutor 调用大模型按固定提纲分析数学压轴题，
并把 markdown 格式的分析转换为结构化 JSON 文档。`,
		SilenceUsage: true,
	}

	root.Version = version.Version
	root.SetVersionTemplate(fmt.Sprintf("tutor %s\n", version.String()))

	root.AddCommand(newConvertCmd(), newAnalyzeCmd(), newVersionCmd())
	return root
}

// Execute 运行根命令
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "打印版本信息",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tutor %s\n", version.String())
		},
	}
}
