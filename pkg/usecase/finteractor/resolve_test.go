package finteractor

import (
	"reflect"
	"testing"

	"github.com/mufactory/mu_facegate/pkg/domain/model"
	"github.com/mufactory/mu_facegate/pkg/infra/config"
)

// loadTablesForTest は同梱台帳と別名対応表を読み込む。
func loadTablesForTest(t *testing.T) (*model.ParameterCatalog, *model.AliasTable) {
	t.Helper()
	catalog, err := config.LoadDefaultCatalog()
	if err != nil {
		t.Fatalf("catalog load failed: %v", err)
	}
	aliasTable, err := config.LoadDefaultAliasTable(catalog)
	if err != nil {
		t.Fatalf("alias table load failed: %v", err)
	}
	return catalog, aliasTable
}

// TestResolveCanonicalNamesPrefersExactMatch は完全一致の別名優先を検証する。
func TestResolveCanonicalNamesPrefersExactMatch(t *testing.T) {
	catalog, aliasTable := loadTablesForTest(t)
	sources := []string{"eyeBlink_L", "eyeBlinkLeft"}

	result := ResolveCanonicalNames(sources, aliasTable, catalog)

	chosen, exists := result.Resolved["eyeBlinkLeft"]
	if !exists {
		t.Fatalf("eyeBlinkLeft should be resolved")
	}
	if chosen != "eyeBlinkLeft" {
		t.Fatalf("chosen mismatch: got=%s want=%s", chosen, "eyeBlinkLeft")
	}
	// 完全一致が勝った場合も別名候補は監査記録へ残る
	if candidates := result.CompoundChoices["eyeBlinkLeft"]; len(candidates) != 1 || candidates[0] != "eyeBlink_L" {
		t.Fatalf("candidates mismatch: got=%v want=[eyeBlink_L]", candidates)
	}
}

// TestResolveCanonicalNamesCompoundPicksFirstTableEntry は複数候補時の表順先頭採用を検証する。
func TestResolveCanonicalNamesCompoundPicksFirstTableEntry(t *testing.T) {
	catalog, aliasTable := loadTablesForTest(t)
	// 逆順で与えても表順が採用順を決める
	sources := []string{"lipFunneler", "lipsFunnel"}

	result := ResolveCanonicalNames(sources, aliasTable, catalog)

	chosen, exists := result.Resolved["mouthFunnel"]
	if !exists {
		t.Fatalf("mouthFunnel should be resolved")
	}
	if chosen != "lipsFunnel" {
		t.Fatalf("chosen mismatch: got=%s want=%s", chosen, "lipsFunnel")
	}
	candidates := result.CompoundChoices["mouthFunnel"]
	if !reflect.DeepEqual(candidates, []string{"lipsFunnel", "lipFunneler"}) {
		t.Fatalf("candidates order mismatch: got=%v want=[lipsFunnel lipFunneler]", candidates)
	}
}

// TestResolveCanonicalNamesCoversAllBlendTargets は解決済と未解決の網羅性を検証する。
func TestResolveCanonicalNamesCoversAllBlendTargets(t *testing.T) {
	catalog, aliasTable := loadTablesForTest(t)
	sources := []string{"eyeBlink_L", "eyeBlink_R", "Fcl_MTH_A", "lipsPucker", "unknownMorph"}

	result := ResolveCanonicalNames(sources, aliasTable, catalog)

	if len(result.Resolved)+len(result.Unresolved) != model.BlendTargetParameterCount {
		t.Fatalf("coverage mismatch: resolved=%d unresolved=%d want total=%d",
			len(result.Resolved), len(result.Unresolved), model.BlendTargetParameterCount)
	}
	for _, missing := range result.Unresolved {
		if _, duplicated := result.Resolved[missing]; duplicated {
			t.Fatalf("resolved and unresolved overlap: %s", missing)
		}
	}
	if len(result.CompoundChoices) != model.BlendTargetParameterCount {
		t.Fatalf("compound choices coverage mismatch: got=%d want=%d",
			len(result.CompoundChoices), model.BlendTargetParameterCount)
	}
}

// TestResolveCanonicalNamesRoundTrip は正準名そのままの入力の全件解決を検証する。
func TestResolveCanonicalNamesRoundTrip(t *testing.T) {
	catalog, aliasTable := loadTablesForTest(t)
	sources := catalog.BlendTargetNames()

	result := ResolveCanonicalNames(sources, aliasTable, catalog)

	if !result.FullyResolved() {
		t.Fatalf("round trip should resolve all: unresolved=%v", result.Unresolved)
	}
	for canonicalName, chosen := range result.Resolved {
		if canonicalName != chosen {
			t.Fatalf("round trip mapping mismatch: canonical=%s chosen=%s", canonicalName, chosen)
		}
	}
	for canonicalName, candidates := range result.CompoundChoices {
		if len(candidates) > 1 {
			t.Fatalf("round trip should not produce compound candidates: canonical=%s candidates=%v", canonicalName, candidates)
		}
	}

	// 純関数性: 同一入力に対し常に同一の結果
	again := ResolveCanonicalNames(sources, aliasTable, catalog)
	if !reflect.DeepEqual(result, again) {
		t.Fatalf("resolution should be deterministic")
	}
}

// TestResolveCanonicalNamesEmptySources は空入力時の未解決順序を検証する。
func TestResolveCanonicalNamesEmptySources(t *testing.T) {
	catalog, aliasTable := loadTablesForTest(t)

	result := ResolveCanonicalNames(nil, aliasTable, catalog)

	if len(result.Resolved) != 0 {
		t.Fatalf("resolved should be empty: got=%d", len(result.Resolved))
	}
	if !reflect.DeepEqual(result.Unresolved, catalog.BlendTargetNames()) {
		t.Fatalf("unresolved should follow catalog order")
	}
}

// TestResolveCanonicalNamesDeduplicatesCandidates は同一別名重複行の畳み込みを検証する。
func TestResolveCanonicalNamesDeduplicatesCandidates(t *testing.T) {
	catalog, _ := loadTablesForTest(t)
	aliasTable, err := model.NewAliasTable([]model.AliasEntry{
		{SourceName: "lipsFunnel", CanonicalName: "mouthFunnel"},
		{SourceName: "lipsFunnel", CanonicalName: "mouthFunnel"},
	}, catalog)
	if err != nil {
		t.Fatalf("alias table build failed: %v", err)
	}

	result := ResolveCanonicalNames([]string{"lipsFunnel"}, aliasTable, catalog)

	if candidates := result.CompoundChoices["mouthFunnel"]; len(candidates) != 1 {
		t.Fatalf("duplicate rows should collapse: got=%v", candidates)
	}
	if chosen := result.Resolved["mouthFunnel"]; chosen != "lipsFunnel" {
		t.Fatalf("chosen mismatch: got=%s want=%s", chosen, "lipsFunnel")
	}
}

// TestResolveCanonicalNamesTrimsSourceNames は入力名の空白除去と空行無視を検証する。
func TestResolveCanonicalNamesTrimsSourceNames(t *testing.T) {
	catalog, aliasTable := loadTablesForTest(t)
	sources := []string{"  jawOpen  ", "", "   "}

	result := ResolveCanonicalNames(sources, aliasTable, catalog)

	if chosen := result.Resolved["jawOpen"]; chosen != "jawOpen" {
		t.Fatalf("trimmed source should resolve: got=%s", chosen)
	}
	if len(result.Resolved) != 1 {
		t.Fatalf("resolved count mismatch: got=%d want=%d", len(result.Resolved), 1)
	}
}
