package finteractor

import (
	"strings"

	"github.com/mufactory/mu_facegate/pkg/domain/model"
	"github.com/mufactory/mu_facegate/pkg/shared/base/logging"
)

const (
	resolveInfoStartFormat  = "正準名解決開始: sources=%d aliases=%d targets=%d"
	resolveInfoDoneFormat   = "正準名解決完了: resolved=%d unresolved=%d compound=%d"
	resolveDebugPickFormat  = "正準名解決詳細: canonical=%s chosen=%s exact=%t candidates=%d"
	resolveDebugMissFormat  = "正準名解決詳細: canonical=%s status=unresolved candidates=%d"
	resolveDebugAuditFormat = "正準名解決候補: canonical=%s candidates=%s"
)

// ResolveCanonicalNames は資産側モーフ名集合をブレンド正準名52件へ解決する。
// 完全一致を常に別名より優先し、別名は表順で最初の候補を採用する(表順=管理上の優先度)。
// 入出力のみに依存する純関数で、同一入力に対し常に同一の結果を返す。
func ResolveCanonicalNames(
	sourceNames []string,
	aliasTable *model.AliasTable,
	catalog *model.ParameterCatalog,
) model.ResolutionResult {
	sourceSet := buildSourceNameSet(sourceNames)
	aliasEntries := aliasTable.Entries()
	canonicalNames := catalog.BlendTargetNames()
	logResolveInfo(resolveInfoStartFormat, len(sourceSet), len(aliasEntries), len(canonicalNames))

	result := model.ResolutionResult{
		Resolved:        make(map[string]string, len(canonicalNames)),
		Unresolved:      []string{},
		CompoundChoices: make(map[string][]string, len(canonicalNames)),
	}

	compoundCount := 0
	for _, canonicalName := range canonicalNames {
		candidates := collectAliasCandidates(canonicalName, aliasEntries, sourceSet)
		result.CompoundChoices[canonicalName] = candidates
		if len(candidates) > 1 {
			compoundCount++
			logResolveDebug(resolveDebugAuditFormat, canonicalName, strings.Join(candidates, ","))
		}

		if _, exact := sourceSet[canonicalName]; exact {
			result.Resolved[canonicalName] = canonicalName
			logResolveDebug(resolveDebugPickFormat, canonicalName, canonicalName, true, len(candidates))
			continue
		}
		if len(candidates) > 0 {
			result.Resolved[canonicalName] = candidates[0]
			logResolveDebug(resolveDebugPickFormat, canonicalName, candidates[0], false, len(candidates))
			continue
		}
		result.Unresolved = append(result.Unresolved, canonicalName)
		logResolveDebug(resolveDebugMissFormat, canonicalName, len(candidates))
	}

	logResolveInfo(resolveInfoDoneFormat, len(result.Resolved), len(result.Unresolved), compoundCount)
	return result
}

// buildSourceNameSet は資産側モーフ名を正規化して集合化する。
func buildSourceNameSet(sourceNames []string) map[string]struct{} {
	sourceSet := make(map[string]struct{}, len(sourceNames))
	for _, name := range sourceNames {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		sourceSet[trimmed] = struct{}{}
	}
	return sourceSet
}

// collectAliasCandidates は指定正準名に対する採用候補元名を表順で集める。
// 同一元名の重複行は冗長として1件に畳む。
func collectAliasCandidates(
	canonicalName string,
	aliasEntries []model.AliasEntry,
	sourceSet map[string]struct{},
) []string {
	candidates := []string{}
	seen := map[string]struct{}{}
	for _, entry := range aliasEntries {
		if entry.CanonicalName != canonicalName {
			continue
		}
		if _, present := sourceSet[entry.SourceName]; !present {
			continue
		}
		if _, duplicated := seen[entry.SourceName]; duplicated {
			continue
		}
		seen[entry.SourceName] = struct{}{}
		candidates = append(candidates, entry.SourceName)
	}
	return candidates
}

// logResolveInfo は正準名解決のINFOログを出力する。
func logResolveInfo(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Info(format, params...)
}

// logResolveDebug は正準名解決のDEBUGログを出力する。
func logResolveDebug(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Debug(format, params...)
}
