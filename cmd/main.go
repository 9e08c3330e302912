package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mufactory/mu_facegate/pkg/adapter/io_asset/fbx"
	"github.com/mufactory/mu_facegate/pkg/adapter/io_asset/glb"
	"github.com/mufactory/mu_facegate/pkg/adapter/mpresenter"
	"github.com/mufactory/mu_facegate/pkg/adapter/mpresenter/messages"
	"github.com/mufactory/mu_facegate/pkg/domain/model"
	"github.com/mufactory/mu_facegate/pkg/infra/config"
	"github.com/mufactory/mu_facegate/pkg/shared/base/logging"
	"github.com/mufactory/mu_facegate/pkg/usecase/finteractor"
	"github.com/spf13/cobra"
)

// main は資産検証CLIを実行する。
func main() {
	if err := newRootCommand(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCommand はCLIルートコマンドを構築する。
func newRootCommand(out io.Writer) *cobra.Command {
	debugEnabled := false
	rootCommand := &cobra.Command{
		Use:           "mu_facegate",
		Short:         "アバター資産の正準パラメータ解決と構造検証を行うゲートCLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debugEnabled {
				logging.EnableDebug()
			}
		},
	}
	rootCommand.PersistentFlags().BoolVar(&debugEnabled, "debug", false, "DEBUGログを有効にする")
	rootCommand.AddCommand(newValidateCommand(out), newResolveCommand(out))
	return rootCommand
}

// newValidateCommand はvalidateサブコマンドを構築する。
func newValidateCommand(out io.Writer) *cobra.Command {
	stage := string(finteractor.GateStageDelivery)
	namesPath := ""
	asJSON := false
	validateCommand := &cobra.Command{
		Use:   "validate <asset>",
		Short: "資産ファイルを構造検証し段階別の合否を報告する",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(out, args[0], stage, namesPath, asJSON)
		},
	}
	validateCommand.Flags().StringVar(&stage, "stage", stage, "検証段階 (ingest|delivery)")
	validateCommand.Flags().StringVar(&namesPath, "names", "", "資産側モーフ名一覧ファイル(1行1名)")
	validateCommand.Flags().BoolVar(&asJSON, "json", false, "JSON形式で報告する")
	return validateCommand
}

// newResolveCommand はresolveサブコマンドを構築する。
func newResolveCommand(out io.Writer) *cobra.Command {
	namesPath := ""
	asJSON := false
	resolveCommand := &cobra.Command{
		Use:   "resolve",
		Short: "モーフ名一覧をブレンド正準名52件へ解決して報告する",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(out, namesPath, asJSON)
		},
	}
	resolveCommand.Flags().StringVar(&namesPath, "names", "", "資産側モーフ名一覧ファイル(1行1名)")
	resolveCommand.Flags().BoolVar(&asJSON, "json", false, "JSON形式で報告する")
	return resolveCommand
}

// runValidate はvalidateサブコマンド本体を実行する。
func runValidate(out io.Writer, assetPath string, stage string, namesPath string, asJSON bool) error {
	catalog, aliasTable, err := loadTables()
	if err != nil {
		return err
	}
	sourceNames, err := readSourceNames(namesPath)
	if err != nil {
		return err
	}

	var result *finteractor.GateResult
	switch stage {
	case string(finteractor.GateStageIngest):
		result, err = finteractor.RunIngestGate(finteractor.IngestGateRequest{
			AssetPath:   assetPath,
			SourceNames: sourceNames,
			Catalog:     catalog,
			AliasTable:  aliasTable,
			Inspector:   fbx.NewRepository(),
		})
	case string(finteractor.GateStageDelivery):
		result, err = finteractor.RunDeliveryGate(finteractor.DeliveryGateRequest{
			AssetPath:   assetPath,
			SourceNames: sourceNames,
			Catalog:     catalog,
			AliasTable:  aliasTable,
			Inspector:   glb.NewRepository(),
		})
	default:
		return fmt.Errorf(messages.MessageUnsupportedStage, stage)
	}
	if err != nil {
		return err
	}

	if asJSON {
		fmt.Fprintln(out, mpresenter.RenderGateResultJSON(result))
	} else {
		fmt.Fprintln(out, mpresenter.RenderGateResultText(result))
	}
	if !result.Summary.Passed() {
		return fmt.Errorf(messages.MessageValidationRejected, assetPath)
	}
	return nil
}

// runResolve はresolveサブコマンド本体を実行する。
func runResolve(out io.Writer, namesPath string, asJSON bool) error {
	if strings.TrimSpace(namesPath) == "" {
		return fmt.Errorf("%s", messages.MessageNamesFileRequired)
	}
	catalog, aliasTable, err := loadTables()
	if err != nil {
		return err
	}
	sourceNames, err := readSourceNames(namesPath)
	if err != nil {
		return err
	}
	resolution := finteractor.ResolveCanonicalNames(sourceNames, aliasTable, catalog)
	if asJSON {
		fmt.Fprintln(out, mpresenter.RenderResolutionJSON(resolution))
	} else {
		fmt.Fprintln(out, mpresenter.RenderResolutionText(resolution, catalog))
	}
	return nil
}

// loadTables は同梱の正準パラメータ台帳と別名対応表を読み込む。
func loadTables() (*model.ParameterCatalog, *model.AliasTable, error) {
	catalog, err := config.LoadDefaultCatalog()
	if err != nil {
		return nil, nil, err
	}
	aliasTable, err := config.LoadDefaultAliasTable(catalog)
	if err != nil {
		return nil, nil, err
	}
	return catalog, aliasTable, nil
}

// readSourceNames はモーフ名一覧ファイルを読み込む。空パスは空一覧として扱う。
func readSourceNames(namesPath string) ([]string, error) {
	if strings.TrimSpace(namesPath) == "" {
		return nil, nil
	}
	content, err := os.ReadFile(namesPath)
	if err != nil {
		return nil, fmt.Errorf("モーフ名一覧ファイルの読み取りに失敗しました: %w", err)
	}
	sourceNames := []string{}
	for _, line := range strings.Split(string(content), "\n") {
		name := strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if name == "" || strings.HasPrefix(name, "#") {
			continue
		}
		sourceNames = append(sourceNames, name)
	}
	return sourceNames, nil
}
