// Package config は正準パラメータ表と別名対応表の読込を提供する。
// 両表はバージョン付きHCL資源として同梱し、起動時に検証して台帳へ変換する。
package config

import (
	"embed"
	"fmt"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/mufactory/mu_facegate/pkg/domain/model"
	"github.com/mufactory/mu_facegate/pkg/shared/base/logging"
)

const (
	embeddedCatalogFileName = "catalog.hcl"
	embeddedAliasFileName   = "aliases.hcl"
)

// embeddedConfigFiles は同梱する既定の台帳HCL資源を保持する。
//
//go:embed catalog.hcl aliases.hcl
var embeddedConfigFiles embed.FS

// catalogFile は正準パラメータ表HCLの構造を表す。
type catalogFile struct {
	Version            string   `hcl:"version"`
	BlendParameters    []string `hcl:"blend_parameters"`
	RotationParameters []string `hcl:"rotation_parameters"`
}

// aliasFile は別名対応表HCLの構造を表す。
type aliasFile struct {
	Version string       `hcl:"version"`
	Aliases []aliasBlock `hcl:"alias,block"`
}

// aliasBlock は別名対応1件のHCLブロックを表す。
type aliasBlock struct {
	Source       string `hcl:"source,label"`
	Canonical    string `hcl:"canonical"`
	MeshPrefixed bool   `hcl:"mesh_prefixed,optional"`
}

// LoadCatalog はHCLバイト列から正準パラメータ台帳を構築する。
func LoadCatalog(fileName string, src []byte) (*model.ParameterCatalog, error) {
	parsed := catalogFile{}
	if err := hclsimple.Decode(fileName, src, nil, &parsed); err != nil {
		return nil, fmt.Errorf("正準パラメータ表の解析に失敗しました: %s: %w", fileName, err)
	}
	catalog, err := model.NewParameterCatalog(parsed.BlendParameters, parsed.RotationParameters)
	if err != nil {
		return nil, fmt.Errorf("正準パラメータ表の検証に失敗しました: %s: %w", fileName, err)
	}
	logConfigInfo("正準パラメータ表読込完了: file=%s version=%s parameters=%d", fileName, parsed.Version, catalog.Len())
	return catalog, nil
}

// LoadDefaultCatalog は同梱の正準パラメータ台帳を構築する。
func LoadDefaultCatalog() (*model.ParameterCatalog, error) {
	src, err := embeddedConfigFiles.ReadFile(embeddedCatalogFileName)
	if err != nil {
		return nil, fmt.Errorf("同梱正準パラメータ表の読込に失敗しました: %w", err)
	}
	return LoadCatalog(embeddedCatalogFileName, src)
}

// LoadAliasTable はHCLバイト列から別名対応表を構築する。
// 台帳に存在しない正準名を参照するエントリはここで構成不正として拒否する。
func LoadAliasTable(fileName string, src []byte, catalog *model.ParameterCatalog) (*model.AliasTable, error) {
	parsed := aliasFile{}
	if err := hclsimple.Decode(fileName, src, nil, &parsed); err != nil {
		return nil, fmt.Errorf("別名対応表の解析に失敗しました: %s: %w", fileName, err)
	}
	entries := make([]model.AliasEntry, 0, len(parsed.Aliases))
	for _, block := range parsed.Aliases {
		entries = append(entries, model.AliasEntry{
			SourceName:    block.Source,
			CanonicalName: block.Canonical,
			HasMeshPrefix: block.MeshPrefixed,
		})
	}
	table, err := model.NewAliasTable(entries, catalog)
	if err != nil {
		return nil, fmt.Errorf("別名対応表の検証に失敗しました: %s: %w", fileName, err)
	}
	logConfigInfo("別名対応表読込完了: file=%s version=%s aliases=%d", fileName, parsed.Version, table.Len())
	return table, nil
}

// LoadDefaultAliasTable は同梱の別名対応表を構築する。
func LoadDefaultAliasTable(catalog *model.ParameterCatalog) (*model.AliasTable, error) {
	src, err := embeddedConfigFiles.ReadFile(embeddedAliasFileName)
	if err != nil {
		return nil, fmt.Errorf("同梱別名対応表の読込に失敗しました: %w", err)
	}
	return LoadAliasTable(embeddedAliasFileName, src, catalog)
}

// logConfigInfo は台帳読込のINFOログを出力する。
func logConfigInfo(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Info(format, params...)
}
