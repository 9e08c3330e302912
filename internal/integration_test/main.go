package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mufactory/mu_facegate/pkg/adapter/io_asset/fbx"
	"github.com/mufactory/mu_facegate/pkg/adapter/io_asset/glb"
	"github.com/mufactory/mu_facegate/pkg/adapter/mpresenter"
	"github.com/mufactory/mu_facegate/pkg/domain/model"
	"github.com/mufactory/mu_facegate/pkg/infra/config"
	"github.com/mufactory/mu_facegate/pkg/usecase/finteractor"
)

// batchConfig は一括検証の実行設定を表す。
type batchConfig struct {
	AssetDir  string
	NamesPath string
	DryRun    bool
	FailFast  bool
}

// gateEntry は1資産分の検証入力情報を表す。
type gateEntry struct {
	Index     int
	AssetPath string
	AssetName string
	Stage     finteractor.GateStage
}

// gateRunResult は1資産分の検証結果を表す。
type gateRunResult struct {
	Entry    gateEntry
	Status   string
	Duration time.Duration
	Err      error
	Result   *finteractor.GateResult
}

// gateProgressCollector はゲート処理の進捗イベントを収集する。
type gateProgressCollector struct {
	eventCounts map[finteractor.GateProgressEventType]int
}

// ReportGateProgress は進捗イベントの種別別件数を記録する。
func (c *gateProgressCollector) ReportGateProgress(event finteractor.GateProgressEvent) {
	if c.eventCounts == nil {
		c.eventCounts = map[finteractor.GateProgressEventType]int{}
	}
	c.eventCounts[event.Type]++
}

// main は資産ディレクトリ一括のゲート検証を実行する。
func main() {
	os.Exit(run())
}

// run は実行設定を解決して一括検証を実行し、終了コードを返す。
func run() int {
	batch, err := parseBatchConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "設定解析に失敗しました: %v\n", err)
		return 2
	}
	entries, err := buildGateEntries(batch.AssetDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "資産一覧の解決に失敗しました: %v\n", err)
		return 2
	}
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "検証対象資産がありません")
		return 2
	}

	results := executeBatchGates(batch, entries)
	printBatchSummary(results)

	for _, result := range results {
		if result.Status == "failed" {
			return 1
		}
	}
	return 0
}

// parseBatchConfig はコマンドライン引数から実行設定を構築する。
func parseBatchConfig() (batchConfig, error) {
	assetDir := flag.String("asset-dir", "", "検証対象資産(.fbx/.glb/.vrm)を含むディレクトリ")
	namesPath := flag.String("names", "", "資産側モーフ名一覧ファイル(1行1名)")
	dryRun := flag.Bool("dry-run", false, "実検証せず、入力解決と段階計画のみ表示する")
	failFast := flag.Bool("fail-fast", false, "不合格時に即時終了する")
	flag.Parse()

	trimmedAssetDir := strings.TrimSpace(*assetDir)
	if trimmedAssetDir == "" {
		return batchConfig{}, errors.New("asset-dir が空です")
	}
	return batchConfig{
		AssetDir:  filepath.Clean(trimmedAssetDir),
		NamesPath: strings.TrimSpace(*namesPath),
		DryRun:    *dryRun,
		FailFast:  *failFast,
	}, nil
}

// buildGateEntries は資産ディレクトリから検証対象エントリを生成する。
// 拡張子で段階を割り当てる(.fbx=取込、.glb/.vrm=配信)。
func buildGateEntries(assetDir string) ([]gateEntry, error) {
	dirEntries, err := os.ReadDir(assetDir)
	if err != nil {
		return nil, err
	}
	entries := []gateEntry{}
	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() {
			continue
		}
		assetName := dirEntry.Name()
		stage, supported := stageByExtension(assetName)
		if !supported {
			continue
		}
		entries = append(entries, gateEntry{
			Index:     len(entries) + 1,
			AssetPath: filepath.Join(assetDir, assetName),
			AssetName: assetName,
			Stage:     stage,
		})
	}
	return entries, nil
}

// stageByExtension は拡張子から検証段階を割り当てる。
func stageByExtension(assetName string) (finteractor.GateStage, bool) {
	switch strings.ToLower(filepath.Ext(assetName)) {
	case ".fbx":
		return finteractor.GateStageIngest, true
	case ".glb", ".vrm":
		return finteractor.GateStageDelivery, true
	default:
		return "", false
	}
}

// executeBatchGates は全資産の検証を順次実行する。
func executeBatchGates(batch batchConfig, entries []gateEntry) []gateRunResult {
	catalog, err := config.LoadDefaultCatalog()
	if err != nil {
		return []gateRunResult{{Status: "failed", Err: err}}
	}
	aliasTable, err := config.LoadDefaultAliasTable(catalog)
	if err != nil {
		return []gateRunResult{{Status: "failed", Err: err}}
	}
	sourceNames, err := readSourceNames(batch.NamesPath)
	if err != nil {
		return []gateRunResult{{Status: "failed", Err: err}}
	}

	results := make([]gateRunResult, 0, len(entries))
	total := len(entries)
	for _, entry := range entries {
		fmt.Printf("[%d/%d] 検証開始: asset=%s stage=%s\n", entry.Index, total, entry.AssetName, entry.Stage)
		result := runGateEntry(batch, entry, catalog, aliasTable, sourceNames)
		results = append(results, result)
		switch result.Status {
		case "passed":
			fmt.Printf("[%d/%d] 検証合格: asset=%s issues=%d elapsed=%s\n", entry.Index, total, entry.AssetName, result.Result.Summary.Len(), result.Duration.Round(time.Millisecond))
		case "dry_run":
			fmt.Printf("[%d/%d] DRY-RUN: asset=%s stage=%s\n", entry.Index, total, entry.AssetName, entry.Stage)
		default:
			fmt.Printf("[%d/%d] 検証不合格: asset=%s reason=%v\n", entry.Index, total, entry.AssetName, result.Err)
			if result.Result != nil {
				fmt.Println(mpresenter.RenderGateResultText(result.Result))
			}
			if batch.FailFast {
				return results
			}
		}
	}
	return results
}

// runGateEntry は1資産分の検証を実行する。
func runGateEntry(
	batch batchConfig,
	entry gateEntry,
	catalog *model.ParameterCatalog,
	aliasTable *model.AliasTable,
	sourceNames []string,
) gateRunResult {
	if batch.DryRun {
		return gateRunResult{Entry: entry, Status: "dry_run"}
	}

	collector := &gateProgressCollector{}
	startedAt := time.Now()
	var result *finteractor.GateResult
	var err error
	switch entry.Stage {
	case finteractor.GateStageIngest:
		result, err = finteractor.RunIngestGate(finteractor.IngestGateRequest{
			AssetPath:        entry.AssetPath,
			SourceNames:      sourceNames,
			Catalog:          catalog,
			AliasTable:       aliasTable,
			Inspector:        fbx.NewRepository(),
			ProgressReporter: collector,
		})
	default:
		result, err = finteractor.RunDeliveryGate(finteractor.DeliveryGateRequest{
			AssetPath:        entry.AssetPath,
			SourceNames:      sourceNames,
			Catalog:          catalog,
			AliasTable:       aliasTable,
			Inspector:        glb.NewRepository(),
			ProgressReporter: collector,
		})
	}
	elapsed := time.Since(startedAt)

	if err != nil {
		return gateRunResult{Entry: entry, Status: "failed", Duration: elapsed, Err: err}
	}
	if !result.Summary.Passed() {
		return gateRunResult{
			Entry:    entry,
			Status:   "failed",
			Duration: elapsed,
			Err:      fmt.Errorf("errors=%d", result.Summary.ErrorCount()),
			Result:   result,
		}
	}
	return gateRunResult{Entry: entry, Status: "passed", Duration: elapsed, Result: result}
}

// printBatchSummary は一括検証の集計を表示する。
func printBatchSummary(results []gateRunResult) {
	passed := 0
	failed := 0
	skipped := 0
	for _, result := range results {
		switch result.Status {
		case "passed":
			passed++
		case "dry_run":
			skipped++
		default:
			failed++
		}
	}
	fmt.Printf("一括検証集計: total=%d passed=%d failed=%d dryRun=%d\n", len(results), passed, failed, skipped)
}

// readSourceNames はモーフ名一覧ファイルを読み込む。空パスは空一覧として扱う。
func readSourceNames(namesPath string) ([]string, error) {
	if namesPath == "" {
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
