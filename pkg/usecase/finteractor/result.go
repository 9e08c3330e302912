package finteractor

import (
	"github.com/mufactory/mu_facegate/pkg/domain/model"
	"github.com/mufactory/mu_facegate/pkg/usecase/port/foutput"
)

// GateStage は検証ゲートの対象段階を表す。
type GateStage string

const (
	// GateStageIngest は入力側メッシュ交換資産の取込段階を表す。
	GateStageIngest GateStage = "ingest"
	// GateStageDelivery は出力側Web配信資産の配信段階を表す。
	GateStageDelivery GateStage = "delivery"
)

// GateProgressEventType はゲート処理の進捗イベント種別を表す。
type GateProgressEventType string

const (
	// GateProgressEventTypeNamesResolved は正準名解決完了イベントを表す。
	GateProgressEventTypeNamesResolved GateProgressEventType = "names_resolved"
	// GateProgressEventTypeManifestBuilt は内容要約構築完了イベントを表す。
	GateProgressEventTypeManifestBuilt GateProgressEventType = "manifest_built"
	// GateProgressEventTypeSummaryBuilt は検証集約完了イベントを表す。
	GateProgressEventTypeSummaryBuilt GateProgressEventType = "summary_built"
)

// GateProgressEvent はゲート処理の進捗イベントを表す。
type GateProgressEvent struct {
	Type          GateProgressEventType
	Stage         GateStage
	ResolvedCount int
	MorphCount    int
	IssueCount    int
}

// IGateProgressReporter はゲート処理の進捗通知契約を表す。
type IGateProgressReporter interface {
	// ReportGateProgress はゲート処理進捗を通知する。
	ReportGateProgress(event GateProgressEvent)
}

// IngestGateRequest は取込段階ゲートの実行要求を表す。
type IngestGateRequest struct {
	AssetPath        string
	SourceNames      []string
	Catalog          *model.ParameterCatalog
	AliasTable       *model.AliasTable
	Inspector        foutput.IEstimateInspector
	ProgressReporter IGateProgressReporter
}

// DeliveryGateRequest は配信段階ゲートの実行要求を表す。
type DeliveryGateRequest struct {
	AssetPath        string
	SourceNames      []string
	Catalog          *model.ParameterCatalog
	AliasTable       *model.AliasTable
	Inspector        foutput.IExactInspector
	ProgressReporter IGateProgressReporter
}

// GateResult は1資産分のゲート実行結果を表す。
type GateResult struct {
	Stage      GateStage
	AssetPath  string
	Manifest   *model.StructuralManifest // 構造解析失敗時はnil
	Resolution model.ResolutionResult
	Summary    *model.ValidationSummary
}

// reportGateProgress はゲート進捗イベントを通知する。
func reportGateProgress(reporter IGateProgressReporter, event GateProgressEvent) {
	if reporter == nil {
		return
	}
	reporter.ReportGateProgress(event)
}
