package config

import (
	"errors"
	"testing"

	"github.com/mufactory/mu_facegate/pkg/domain/model"
)

// TestLoadDefaultCatalog は同梱正準パラメータ表の読込を検証する。
func TestLoadDefaultCatalog(t *testing.T) {
	catalog, err := LoadDefaultCatalog()
	if err != nil {
		t.Fatalf("default catalog load failed: %v", err)
	}

	if catalog.Len() != model.CanonicalParameterCount {
		t.Fatalf("len mismatch: got=%d want=%d", catalog.Len(), model.CanonicalParameterCount)
	}

	first, err := catalog.ParameterAt(0)
	if err != nil {
		t.Fatalf("parameterAt(0) failed: %v", err)
	}
	if first.Name != "eyeBlinkLeft" {
		t.Fatalf("first name mismatch: got=%s want=%s", first.Name, "eyeBlinkLeft")
	}

	headParam, err := catalog.ParameterAt(model.BlendTargetParameterCount)
	if err != nil {
		t.Fatalf("parameterAt(%d) failed: %v", model.BlendTargetParameterCount, err)
	}
	if headParam.Name != "head" || headParam.Kind != model.ParameterKindRotationAxis {
		t.Fatalf("rotation boundary mismatch: got=%+v", headParam)
	}
}

// TestLoadDefaultAliasTable は同梱別名対応表の読込を検証する。
func TestLoadDefaultAliasTable(t *testing.T) {
	catalog, err := LoadDefaultCatalog()
	if err != nil {
		t.Fatalf("default catalog load failed: %v", err)
	}
	table, err := LoadDefaultAliasTable(catalog)
	if err != nil {
		t.Fatalf("default alias table load failed: %v", err)
	}
	if table.Len() == 0 {
		t.Fatalf("alias table should not be empty")
	}

	foundSuffix := false
	foundMeshPrefixed := false
	for _, entry := range table.Entries() {
		if entry.SourceName == "eyeBlink_L" && entry.CanonicalName == "eyeBlinkLeft" {
			foundSuffix = true
		}
		if entry.SourceName == "CC_Base_Body.jawOpen" && entry.CanonicalName == "jawOpen" && entry.HasMeshPrefix {
			foundMeshPrefixed = true
		}
	}
	if !foundSuffix {
		t.Fatalf("suffix alias eyeBlink_L not found")
	}
	if !foundMeshPrefixed {
		t.Fatalf("mesh prefixed alias CC_Base_Body.jawOpen not found")
	}
}

// TestLoadAliasTableRejectsUnknownCanonical は未登録正準名参照の拒否を検証する。
func TestLoadAliasTableRejectsUnknownCanonical(t *testing.T) {
	catalog, err := LoadDefaultCatalog()
	if err != nil {
		t.Fatalf("default catalog load failed: %v", err)
	}
	src := []byte(`version = "test"

alias "eyeBlink_C" {
  canonical = "eyeBlinkCenter"
}
`)
	if _, err := LoadAliasTable("broken.hcl", src, catalog); !errors.Is(err, model.ErrAliasCanonicalUnknown) {
		t.Fatalf("error mismatch: got=%v", err)
	}
}

// TestLoadCatalogRejectsMalformedSource は解析不能なHCLの拒否を検証する。
func TestLoadCatalogRejectsMalformedSource(t *testing.T) {
	if _, err := LoadCatalog("broken.hcl", []byte(`version = `)); err == nil {
		t.Fatalf("malformed source should fail")
	}
}

// TestLoadCatalogRejectsShortTable はパラメータ数不足の拒否を検証する。
func TestLoadCatalogRejectsShortTable(t *testing.T) {
	src := []byte(`version = "test"
blend_parameters = ["eyeBlinkLeft"]
rotation_parameters = ["head", "leftEye", "rightEye"]
`)
	if _, err := LoadCatalog("short.hcl", src); !errors.Is(err, model.ErrCatalogInvalid) {
		t.Fatalf("error mismatch: got=%v", err)
	}
}
