package finteractor

import (
	"fmt"
	"strings"

	"github.com/mufactory/mu_facegate/pkg/domain/model"
	"github.com/mufactory/mu_facegate/pkg/shared/base/logging"
)

const (
	gateInfoStartFormat        = "ゲート実行開始: stage=%s asset=%s sources=%d"
	gateInfoManifestFormat     = "ゲート実行ステップ: 内容要約構築完了 stage=%s morphs=%d skeleton=%t materials=%t"
	gateWarnParseFailureFormat = "ゲート実行ステップ: 構造解析失敗 stage=%s err=%v"
	gateInfoDoneFormat         = "ゲート実行完了: stage=%s asset=%s passed=%t issues=%d"
)

// RunIngestGate は取込段階ゲートを実行する。
// 構造解析と正準名解決は互いに独立に実行し、解析が失敗しても解決結果は報告へ含める。
func RunIngestGate(request IngestGateRequest) (*GateResult, error) {
	if err := validateGateInputs(request.AssetPath, request.Catalog, request.AliasTable, request.Inspector == nil); err != nil {
		return nil, err
	}
	if !request.Inspector.CanInspect(request.AssetPath) {
		return nil, fmt.Errorf("取込段階の入力形式が未対応です: %s", request.AssetPath)
	}
	logGateInfo(gateInfoStartFormat, GateStageIngest, request.AssetPath, len(request.SourceNames))

	resolution := ResolveCanonicalNames(request.SourceNames, request.AliasTable, request.Catalog)
	reportGateProgress(request.ProgressReporter, GateProgressEvent{
		Type:          GateProgressEventTypeNamesResolved,
		Stage:         GateStageIngest,
		ResolvedCount: resolution.ResolvedCount(),
	})

	var manifest *model.StructuralManifest
	var parseErr error
	estimated, err := request.Inspector.Estimate(request.AssetPath, model.BlendTargetParameterCount)
	if err != nil {
		parseErr = err
		logGateWarn(gateWarnParseFailureFormat, GateStageIngest, err)
	} else {
		manifest = &estimated.StructuralManifest
		logGateInfo(gateInfoManifestFormat, GateStageIngest, manifest.MorphTargetCount, manifest.HasSkeleton, manifest.HasMaterials)
	}
	reportGateProgress(request.ProgressReporter, GateProgressEvent{
		Type:       GateProgressEventTypeManifestBuilt,
		Stage:      GateStageIngest,
		MorphCount: manifestMorphCount(manifest),
	})

	return buildGateResult(GateStageIngest, request.AssetPath, manifest, parseErr, resolution, request.ProgressReporter), nil
}

// RunDeliveryGate は配信段階ゲートを実行する。
func RunDeliveryGate(request DeliveryGateRequest) (*GateResult, error) {
	if err := validateGateInputs(request.AssetPath, request.Catalog, request.AliasTable, request.Inspector == nil); err != nil {
		return nil, err
	}
	if !request.Inspector.CanInspect(request.AssetPath) {
		return nil, fmt.Errorf("配信段階の入力形式が未対応です: %s", request.AssetPath)
	}
	logGateInfo(gateInfoStartFormat, GateStageDelivery, request.AssetPath, len(request.SourceNames))

	resolution := ResolveCanonicalNames(request.SourceNames, request.AliasTable, request.Catalog)
	reportGateProgress(request.ProgressReporter, GateProgressEvent{
		Type:          GateProgressEventTypeNamesResolved,
		Stage:         GateStageDelivery,
		ResolvedCount: resolution.ResolvedCount(),
	})

	var manifest *model.StructuralManifest
	var parseErr error
	inspected, err := request.Inspector.Inspect(request.AssetPath)
	if err != nil {
		parseErr = err
		logGateWarn(gateWarnParseFailureFormat, GateStageDelivery, err)
	} else {
		manifest = &inspected
		logGateInfo(gateInfoManifestFormat, GateStageDelivery, manifest.MorphTargetCount, manifest.HasSkeleton, manifest.HasMaterials)
	}
	reportGateProgress(request.ProgressReporter, GateProgressEvent{
		Type:       GateProgressEventTypeManifestBuilt,
		Stage:      GateStageDelivery,
		MorphCount: manifestMorphCount(manifest),
	})

	return buildGateResult(GateStageDelivery, request.AssetPath, manifest, parseErr, resolution, request.ProgressReporter), nil
}

// buildGateResult は集約結果を構築してゲート実行結果へまとめる。
func buildGateResult(
	stage GateStage,
	assetPath string,
	manifest *model.StructuralManifest,
	parseErr error,
	resolution model.ResolutionResult,
	reporter IGateProgressReporter,
) *GateResult {
	summary := model.NewValidationSummary()
	if parseErr != nil {
		summary.Append(BuildParseFailureIssue(parseErr))
	}
	summary.Append(BuildStageSummary(stage, manifest, resolution, model.BlendTargetParameterCount).Issues()...)
	reportGateProgress(reporter, GateProgressEvent{
		Type:       GateProgressEventTypeSummaryBuilt,
		Stage:      stage,
		IssueCount: summary.Len(),
	})
	logGateInfo(gateInfoDoneFormat, stage, assetPath, summary.Passed(), summary.Len())
	return &GateResult{
		Stage:      stage,
		AssetPath:  assetPath,
		Manifest:   manifest,
		Resolution: resolution,
		Summary:    summary,
	}
}

// validateGateInputs はゲート実行要求の必須項目を検証する。
func validateGateInputs(assetPath string, catalog *model.ParameterCatalog, aliasTable *model.AliasTable, inspectorMissing bool) error {
	if strings.TrimSpace(assetPath) == "" {
		return fmt.Errorf("資産パスが未指定です")
	}
	if catalog == nil {
		return fmt.Errorf("正準パラメータ台帳が未設定です")
	}
	if aliasTable == nil {
		return fmt.Errorf("別名対応表が未設定です")
	}
	if inspectorMissing {
		return fmt.Errorf("構造解析の実装が未設定です")
	}
	return nil
}

// manifestMorphCount は要約のモーフ数を返す。未構築時は0を返す。
func manifestMorphCount(manifest *model.StructuralManifest) int {
	if manifest == nil {
		return 0
	}
	return manifest.MorphTargetCount
}

// logGateInfo はゲート実行のINFOログを出力する。
func logGateInfo(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Info(format, params...)
}

// logGateWarn はゲート実行のWARNログを出力する。
func logGateWarn(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Warn(format, params...)
}
