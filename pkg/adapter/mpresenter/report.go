// Package mpresenter は検証結果の人間可読/機械可読表示を提供する。
package mpresenter

import (
	"fmt"
	"strings"

	"github.com/mufactory/mu_facegate/pkg/adapter/mpresenter/messages"
	"github.com/mufactory/mu_facegate/pkg/domain/model"
	"github.com/mufactory/mu_facegate/pkg/usecase/finteractor"
	"github.com/ohler55/ojg/oj"
)

const jsonIndent = 2

// RenderGateResultText はゲート実行結果をテキスト報告へ整形する。
func RenderGateResultText(result *finteractor.GateResult) string {
	if result == nil || result.Summary == nil {
		return ""
	}
	lines := []string{
		fmt.Sprintf(messages.ReportHeaderFormat, result.Stage, result.AssetPath),
	}
	for _, issue := range result.Summary.Issues() {
		lines = append(lines, fmt.Sprintf("[%s] %s", severityLabel(issue.Severity), issue.Message))
		if detail, ok := issue.Detail.(finteractor.UnresolvedDetail); ok {
			for _, missingName := range detail.MissingNames {
				lines = append(lines, "  - "+missingName)
			}
		}
	}
	lines = append(lines, fmt.Sprintf(
		messages.ReportCountsFormat,
		result.Summary.ErrorCount(),
		result.Summary.WarningCount(),
		result.Summary.InfoCount(),
	))
	if result.Summary.Passed() {
		lines = append(lines, messages.ReportPassedLine)
	} else {
		lines = append(lines, messages.ReportFailedLine)
	}
	return strings.Join(lines, "\n")
}

// RenderGateResultJSON はゲート実行結果をJSON報告へ整形する。
func RenderGateResultJSON(result *finteractor.GateResult) string {
	if result == nil || result.Summary == nil {
		return "{}"
	}
	issues := make([]map[string]any, 0, result.Summary.Len())
	for _, issue := range result.Summary.Issues() {
		entry := map[string]any{
			"severity": string(issue.Severity),
			"message":  issue.Message,
		}
		if issue.Detail != nil {
			entry["detail"] = issue.Detail
		}
		issues = append(issues, entry)
	}
	payload := map[string]any{
		"stage":        string(result.Stage),
		"asset":        result.AssetPath,
		"passed":       result.Summary.Passed(),
		"errorCount":   result.Summary.ErrorCount(),
		"warningCount": result.Summary.WarningCount(),
		"infoCount":    result.Summary.InfoCount(),
		"issues":       issues,
		"resolution":   resolutionPayload(result.Resolution),
	}
	if result.Manifest != nil {
		payload["manifest"] = manifestPayload(*result.Manifest)
	}
	return oj.JSON(payload, jsonIndent)
}

// RenderResolutionText は正準名解決結果をテキスト報告へ整形する。
func RenderResolutionText(resolution model.ResolutionResult, catalog *model.ParameterCatalog) string {
	lines := []string{
		fmt.Sprintf(messages.ResolutionHeaderFormat, resolution.ResolvedCount(), len(resolution.Unresolved)),
	}
	for _, canonicalName := range catalog.BlendTargetNames() {
		if chosenName, resolved := resolution.Resolved[canonicalName]; resolved {
			lines = append(lines, fmt.Sprintf(messages.ResolutionMappingFormat, canonicalName, chosenName))
			continue
		}
		lines = append(lines, fmt.Sprintf(messages.ResolutionMissingFormat, canonicalName))
	}
	for _, canonicalName := range catalog.BlendTargetNames() {
		candidates := resolution.CompoundChoices[canonicalName]
		if len(candidates) < 2 {
			continue
		}
		lines = append(lines, fmt.Sprintf(messages.ResolutionCompoundFormat, canonicalName, strings.Join(candidates, ",")))
	}
	return strings.Join(lines, "\n")
}

// RenderResolutionJSON は正準名解決結果をJSON報告へ整形する。
func RenderResolutionJSON(resolution model.ResolutionResult) string {
	return oj.JSON(resolutionPayload(resolution), jsonIndent)
}

// resolutionPayload は解決結果のJSON表現を構築する。
func resolutionPayload(resolution model.ResolutionResult) map[string]any {
	return map[string]any{
		"resolved":        resolution.Resolved,
		"unresolved":      resolution.Unresolved,
		"compoundChoices": resolution.CompoundChoices,
		"fullyResolved":   resolution.FullyResolved(),
	}
}

// manifestPayload は内容要約のJSON表現を構築する。
func manifestPayload(manifest model.StructuralManifest) map[string]any {
	payload := map[string]any{
		"format":                   string(manifest.Format),
		"byteSize":                 manifest.ByteSize,
		"morphTargetCount":         manifest.MorphTargetCount,
		"hasSkeleton":              manifest.HasSkeleton,
		"hasMaterials":             manifest.HasMaterials,
		"usesCompressionExtension": manifest.UsesCompressionExtension,
	}
	if manifest.DeclaredTotalLength != nil {
		payload["declaredTotalLength"] = *manifest.DeclaredTotalLength
	}
	return payload
}

// severityLabel は深刻度の表示ラベルを返す。
func severityLabel(severity model.IssueSeverity) string {
	switch severity {
	case model.SeverityError:
		return messages.SeverityLabelError
	case model.SeverityWarning:
		return messages.SeverityLabelWarning
	default:
		return messages.SeverityLabelInfo
	}
}
