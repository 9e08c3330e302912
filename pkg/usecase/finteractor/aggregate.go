package finteractor

import (
	"fmt"

	"github.com/mufactory/mu_facegate/pkg/domain/model"
	"github.com/mufactory/mu_facegate/pkg/shared/base/logging"
	"github.com/tiendc/go-deepcopy"
)

const (
	// morphCountWarningRatio はモーフ数検査で警告止まりとする下限比率を表す。
	morphCountWarningRatio = 0.9
	// deliveryByteSizeCeiling は配信段階のファイルサイズ上限(バイト)を表す。
	deliveryByteSizeCeiling = 25 * 1024 * 1024

	aggregateInfoDoneFormat = "検証集約完了: stage=%s issues=%d errors=%d warnings=%d passed=%t"

	issueMorphCountExactFormat    = "モーフ数が期待値と一致しました: count=%d"
	issueMorphCountNearFormat     = "モーフ数が期待値と一致しません(許容範囲内): count=%d expected=%d"
	issueMorphCountShortFormat    = "モーフ数が許容下限を下回ります: count=%d expected=%d"
	issueUnresolvedFormat         = "未解決の正準パラメータがあります: count=%d"
	issueResolutionCompleteFormat = "正準パラメータは全件解決済みです: resolved=%d"
	issueSkeletonMissingMessage   = "スケルトンが含まれていません"
	issueMaterialsMissingMessage  = "材質が含まれていません"
	issueCompressionAbsentMessage = "圧縮拡張が適用されていません"
	issueByteSizeExceededFormat   = "ファイルサイズが上限を超えています: size=%d limit=%d"
	issueParseFailureFormat       = "資産構造の解析に失敗しました: %v"
)

// stagePolicy は段階別の検査方針を表す。
type stagePolicy struct {
	requireFullResolution bool
	checkCompression      bool
	byteSizeCeiling       int // 0は上限検査なし
}

// gateStagePolicies は段階ごとの検査方針を保持する。
var gateStagePolicies = map[GateStage]stagePolicy{
	GateStageIngest: {
		requireFullResolution: true,
	},
	GateStageDelivery: {
		requireFullResolution: true,
		checkCompression:      true,
		byteSizeCeiling:       deliveryByteSizeCeiling,
	},
}

// MorphCountDetail はモーフ数検査指摘の詳細を表す。
type MorphCountDetail struct {
	Count    int
	Expected int
}

// UnresolvedDetail は未解決検査指摘の詳細を表す。
type UnresolvedDetail struct {
	MissingNames    []string
	CompoundChoices map[string][]string
}

// ByteSizeDetail はファイルサイズ検査指摘の詳細を表す。
type ByteSizeDetail struct {
	ByteSize int
	Ceiling  int
}

// BuildStageSummary は内容要約と解決結果を段階別方針で1つの集約結果へ統合する。
// 指摘は途中打ち切りせず、適用可能な検査をすべて1回の実行で報告する。
func BuildStageSummary(
	stage GateStage,
	manifest *model.StructuralManifest,
	resolution model.ResolutionResult,
	expectedMorphCount int,
) *model.ValidationSummary {
	policy := gateStagePolicies[stage]
	summary := model.NewValidationSummary()
	if manifest != nil {
		appendManifestIssues(summary, policy, *manifest, expectedMorphCount)
	}
	appendResolutionIssues(summary, policy, resolution)
	logAggregateInfo(
		aggregateInfoDoneFormat,
		stage,
		summary.Len(),
		summary.ErrorCount(),
		summary.WarningCount(),
		summary.Passed(),
	)
	return summary
}

// BuildParseFailureIssue は構造解析失敗をError指摘へ変換する。
// 解析失敗は設定で緩和されることのない、常にError級の指摘として扱う。
func BuildParseFailureIssue(parseErr error) model.ValidationIssue {
	return model.ValidationIssue{
		Severity: model.SeverityError,
		Message:  fmt.Sprintf(issueParseFailureFormat, parseErr),
	}
}

// appendManifestIssues は内容要約に対する検査指摘を追加する。
func appendManifestIssues(
	summary *model.ValidationSummary,
	policy stagePolicy,
	manifest model.StructuralManifest,
	expectedMorphCount int,
) {
	summary.Append(buildMorphCountIssue(manifest.MorphTargetCount, expectedMorphCount))
	if !manifest.HasSkeleton {
		summary.Append(model.ValidationIssue{Severity: model.SeverityWarning, Message: issueSkeletonMissingMessage})
	}
	if !manifest.HasMaterials {
		summary.Append(model.ValidationIssue{Severity: model.SeverityWarning, Message: issueMaterialsMissingMessage})
	}
	if policy.checkCompression && !manifest.UsesCompressionExtension {
		summary.Append(model.ValidationIssue{Severity: model.SeverityWarning, Message: issueCompressionAbsentMessage})
	}
	if policy.byteSizeCeiling > 0 && manifest.ByteSize > policy.byteSizeCeiling {
		summary.Append(model.ValidationIssue{
			Severity: model.SeverityError,
			Message:  fmt.Sprintf(issueByteSizeExceededFormat, manifest.ByteSize, policy.byteSizeCeiling),
			Detail:   ByteSizeDetail{ByteSize: manifest.ByteSize, Ceiling: policy.byteSizeCeiling},
		})
	}
}

// buildMorphCountIssue はモーフ数検査指摘を構築する。
// 期待値一致はInfo、比率9割以上はWarning、それ未満はErrorとする。
func buildMorphCountIssue(count int, expected int) model.ValidationIssue {
	detail := MorphCountDetail{Count: count, Expected: expected}
	if count == expected {
		return model.ValidationIssue{
			Severity: model.SeverityInfo,
			Message:  fmt.Sprintf(issueMorphCountExactFormat, count),
			Detail:   detail,
		}
	}
	if expected > 0 && float64(count) >= morphCountWarningRatio*float64(expected) {
		return model.ValidationIssue{
			Severity: model.SeverityWarning,
			Message:  fmt.Sprintf(issueMorphCountNearFormat, count, expected),
			Detail:   detail,
		}
	}
	return model.ValidationIssue{
		Severity: model.SeverityError,
		Message:  fmt.Sprintf(issueMorphCountShortFormat, count, expected),
		Detail:   detail,
	}
}

// appendResolutionIssues は正準名解決結果に対する検査指摘を追加する。
// 詳細ペイロードは解決結果と参照を共有しないよう深い複製を添付する。
func appendResolutionIssues(
	summary *model.ValidationSummary,
	policy stagePolicy,
	resolution model.ResolutionResult,
) {
	if resolution.FullyResolved() {
		summary.Append(model.ValidationIssue{
			Severity: model.SeverityInfo,
			Message:  fmt.Sprintf(issueResolutionCompleteFormat, resolution.ResolvedCount()),
		})
		return
	}
	severity := model.SeverityWarning
	if policy.requireFullResolution {
		severity = model.SeverityError
	}
	detail := UnresolvedDetail{}
	if err := deepcopy.Copy(&detail.MissingNames, resolution.Unresolved); err != nil {
		detail.MissingNames = append([]string(nil), resolution.Unresolved...)
	}
	if err := deepcopy.Copy(&detail.CompoundChoices, resolution.CompoundChoices); err != nil {
		detail.CompoundChoices = nil
	}
	summary.Append(model.ValidationIssue{
		Severity: severity,
		Message:  fmt.Sprintf(issueUnresolvedFormat, len(resolution.Unresolved)),
		Detail:   detail,
	})
}

// logAggregateInfo は検証集約のINFOログを出力する。
func logAggregateInfo(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Info(format, params...)
}
