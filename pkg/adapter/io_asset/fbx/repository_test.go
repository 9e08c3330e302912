package fbx

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mufactory/mu_facegate/pkg/domain/model"
)

// buildTextAssetForTest はテキスト変種の交換資産バイト列を組み立てる。
func buildTextAssetForTest(bodyLines ...string) []byte {
	lines := append([]string{"; FBX 7.7.0 project file"}, bodyLines...)
	return []byte(strings.Join(lines, "\n"))
}

// TestSniffFormatIdentifiesVariants は変種識別を検証する。
func TestSniffFormatIdentifiesVariants(t *testing.T) {
	cases := []struct {
		label       string
		sourceBytes []byte
		want        bool
	}{
		{"empty", nil, false},
		{"zero bytes", []byte{0x00, 0x00, 0x00, 0x00}, false},
		{"binary signature", append([]byte("Kaydara FBX Binary  "), 0x00, 0x1A, 0x00), true},
		{"text marker", []byte("; FBX 7.7.0 project file"), true},
		{"marker outside window", append([]byte(strings.Repeat("x", 60)), []byte("FBX")...), false},
		{"unrelated text", []byte("glTF asset"), false},
	}
	for _, testCase := range cases {
		if got := SniffFormat(testCase.sourceBytes); got != testCase.want {
			t.Fatalf("sniff mismatch for %s: got=%v want=%v", testCase.label, got, testCase.want)
		}
	}
}

// TestEstimateManifestRejectsOtherFormat は形式不一致の失敗を検証する。
// ゼロ内容の要約と混同させないため、要約は返らない。
func TestEstimateManifestRejectsOtherFormat(t *testing.T) {
	if _, err := EstimateManifest([]byte("glTF binary payload"), model.BlendTargetParameterCount); !errors.Is(err, ErrNotMeshInterchange) {
		t.Fatalf("error mismatch: got=%v", err)
	}
	if _, err := EstimateManifest(nil, model.BlendTargetParameterCount); !errors.Is(err, ErrNotMeshInterchange) {
		t.Fatalf("empty buffer error mismatch: got=%v", err)
	}
}

// TestEstimateManifestCountsMorphChannels はチャネルキーワードの頻度推定を検証する。
func TestEstimateManifestCountsMorphChannels(t *testing.T) {
	sourceBytes := buildTextAssetForTest(
		`Deformer: "BlendShapeChannel::eyeBlinkLeft"`,
		`Deformer: "BlendShapeChannel::eyeBlinkRight"`,
		`Deformer: "BlendShapeChannel::jawOpen"`,
		`Material: "Material::Skin", "Phong"`,
		`Model: "Model::Neck", "LimbNode"`,
	)

	estimated, err := EstimateManifest(sourceBytes, model.BlendTargetParameterCount)
	if err != nil {
		t.Fatalf("estimate failed: %v", err)
	}
	if estimated.Format != model.AssetFormatMeshInterchange {
		t.Fatalf("format mismatch: got=%s want=%s", estimated.Format, model.AssetFormatMeshInterchange)
	}
	if estimated.MorphTargetCount != 3 {
		t.Fatalf("morph count mismatch: got=%d want=%d", estimated.MorphTargetCount, 3)
	}
	if !estimated.HasMaterials {
		t.Fatalf("materials should be detected")
	}
	if !estimated.HasSkeleton {
		t.Fatalf("skeleton should be detected")
	}
	if estimated.UsesCompressionExtension {
		t.Fatalf("compression flag should stay false for interchange assets")
	}
	if estimated.DeclaredTotalLength != nil {
		t.Fatalf("declared length should stay nil for interchange assets")
	}
}

// TestEstimateManifestFallsBackToShapeKeyword はチャネル表記がない旧出力の代替推定を検証する。
func TestEstimateManifestFallsBackToShapeKeyword(t *testing.T) {
	sourceBytes := buildTextAssetForTest(
		`Geometry: "Shape::eyeBlinkLeft"`,
		`Geometry: "Shape::eyeBlinkRight"`,
	)

	estimated, err := EstimateManifest(sourceBytes, model.BlendTargetParameterCount)
	if err != nil {
		t.Fatalf("estimate failed: %v", err)
	}
	if estimated.MorphTargetCount != 2 {
		t.Fatalf("fallback morph count mismatch: got=%d want=%d", estimated.MorphTargetCount, 2)
	}
	if estimated.HasSkeleton {
		t.Fatalf("skeleton should not be detected")
	}
}

// TestRepositoryCanInspect は拡張子判定を検証する。
func TestRepositoryCanInspect(t *testing.T) {
	repository := NewRepository()
	cases := []struct {
		path string
		want bool
	}{
		{"avatar.fbx", true},
		{"AVATAR.FBX", true},
		{"avatar.glb", false},
		{"avatar", false},
	}
	for _, testCase := range cases {
		if got := repository.CanInspect(testCase.path); got != testCase.want {
			t.Fatalf("canInspect mismatch for %s: got=%v want=%v", testCase.path, got, testCase.want)
		}
	}
}

// TestRepositoryEstimateReadsFile はファイル経由の近似解析を検証する。
func TestRepositoryEstimateReadsFile(t *testing.T) {
	sourceBytes := buildTextAssetForTest(
		`Deformer: "BlendShapeChannel::jawOpen"`,
		`Material: "Material::Skin", "Lambert"`,
	)
	assetPath := filepath.Join(t.TempDir(), "avatar.fbx")
	if err := os.WriteFile(assetPath, sourceBytes, 0o644); err != nil {
		t.Fatalf("asset write failed: %v", err)
	}

	estimated, err := NewRepository().Estimate(assetPath, model.BlendTargetParameterCount)
	if err != nil {
		t.Fatalf("estimate failed: %v", err)
	}
	if estimated.MorphTargetCount != 1 {
		t.Fatalf("morph count mismatch: got=%d want=%d", estimated.MorphTargetCount, 1)
	}
	if estimated.ByteSize != len(sourceBytes) {
		t.Fatalf("byte size mismatch: got=%d want=%d", estimated.ByteSize, len(sourceBytes))
	}
}

// TestRepositoryEstimateRejectsMissingFile は不存在ファイルの失敗を検証する。
func TestRepositoryEstimateRejectsMissingFile(t *testing.T) {
	if _, err := NewRepository().Estimate(filepath.Join(t.TempDir(), "missing.fbx"), model.BlendTargetParameterCount); err == nil {
		t.Fatalf("missing file should fail")
	}
}
