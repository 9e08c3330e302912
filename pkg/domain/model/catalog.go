package model

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// BlendTargetParameterCount は正準ブレンドパラメータ数を表す。
	BlendTargetParameterCount = 52
	// RotationAxisParameterCount は正準回転パラメータ数を表す。
	RotationAxisParameterCount = 3
	// CanonicalParameterCount は正準パラメータ総数を表す。
	CanonicalParameterCount = BlendTargetParameterCount + RotationAxisParameterCount
)

// ParameterKind は正準パラメータ種別を表す。
type ParameterKind string

const (
	// ParameterKindBlendTarget はブレンドターゲット種別を表す。
	ParameterKindBlendTarget ParameterKind = "blend_target"
	// ParameterKindRotationAxis は回転軸種別を表す。
	ParameterKindRotationAxis ParameterKind = "rotation_axis"
)

// ParameterCategory は正準パラメータの部位カテゴリを表す。
type ParameterCategory string

const (
	// CategoryEye は目カテゴリを表す。
	CategoryEye ParameterCategory = "eye"
	// CategoryJaw は顎カテゴリを表す。
	CategoryJaw ParameterCategory = "jaw"
	// CategoryMouth は口カテゴリを表す。
	CategoryMouth ParameterCategory = "mouth"
	// CategoryBrow は眉カテゴリを表す。
	CategoryBrow ParameterCategory = "brow"
	// CategoryCheek は頬カテゴリを表す。
	CategoryCheek ParameterCategory = "cheek"
	// CategoryNose は鼻カテゴリを表す。
	CategoryNose ParameterCategory = "nose"
	// CategoryRotation は回転カテゴリを表す。
	CategoryRotation ParameterCategory = "rotation"
)

var (
	// ErrParameterIndexOutOfRange は正準パラメータindexの範囲外エラーを表す。
	ErrParameterIndexOutOfRange = errors.New("正準パラメータindexが範囲外です")
	// ErrParameterNotFound は正準パラメータ名の未登録エラーを表す。
	ErrParameterNotFound = errors.New("正準パラメータ名が未登録です")
	// ErrParameterCategoryUnknown はカテゴリ規則不一致エラーを表す。
	ErrParameterCategoryUnknown = errors.New("正準パラメータのカテゴリ規則に一致しません")
	// ErrCatalogInvalid は正準パラメータ表の構成不正エラーを表す。
	ErrCatalogInvalid = errors.New("正準パラメータ表の構成が不正です")
)

// rotationAxisNames は回転パラメータの宣言順固定名を保持する。
var rotationAxisNames = [RotationAxisParameterCount]string{"head", "leftEye", "rightEye"}

// tongueOutParameterName は口カテゴリへ例外的に属する正準名を表す。
const tongueOutParameterName = "tongueOut"

// CanonicalParameter は正準出力パラメータ1件を表す。
type CanonicalParameter struct {
	Index    int
	Name     string
	Kind     ParameterKind
	Category ParameterCategory
}

// ParameterCatalog は正準パラメータ55件の読み取り専用台帳を表す。
type ParameterCatalog struct {
	parameters  []CanonicalParameter
	indexByName map[string]int
}

// NewParameterCatalog はブレンド名52件と回転名3件から台帳を構築する。
func NewParameterCatalog(blendNames []string, rotationNames []string) (*ParameterCatalog, error) {
	if len(blendNames) != BlendTargetParameterCount {
		return nil, fmt.Errorf("%w: ブレンドパラメータ数 got=%d want=%d", ErrCatalogInvalid, len(blendNames), BlendTargetParameterCount)
	}
	if len(rotationNames) != RotationAxisParameterCount {
		return nil, fmt.Errorf("%w: 回転パラメータ数 got=%d want=%d", ErrCatalogInvalid, len(rotationNames), RotationAxisParameterCount)
	}
	for axisIndex, axisName := range rotationAxisNames {
		if rotationNames[axisIndex] != axisName {
			return nil, fmt.Errorf("%w: 回転パラメータ順序 index=%d got=%s want=%s", ErrCatalogInvalid, axisIndex, rotationNames[axisIndex], axisName)
		}
	}

	catalog := &ParameterCatalog{
		parameters:  make([]CanonicalParameter, 0, CanonicalParameterCount),
		indexByName: make(map[string]int, CanonicalParameterCount),
	}
	for _, name := range blendNames {
		category, err := blendCategoryByName(name)
		if err != nil {
			return nil, fmt.Errorf("%w: name=%s: %w", ErrCatalogInvalid, name, err)
		}
		if err := catalog.appendParameter(name, ParameterKindBlendTarget, category); err != nil {
			return nil, err
		}
	}
	for _, name := range rotationNames {
		if err := catalog.appendParameter(name, ParameterKindRotationAxis, CategoryRotation); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

// appendParameter は台帳へ1件追加する。名前重複は構成不正として拒否する。
func (c *ParameterCatalog) appendParameter(name string, kind ParameterKind, category ParameterCategory) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("%w: 空の正準パラメータ名", ErrCatalogInvalid)
	}
	if _, exists := c.indexByName[trimmed]; exists {
		return fmt.Errorf("%w: 正準パラメータ名が重複しています: %s", ErrCatalogInvalid, trimmed)
	}
	index := len(c.parameters)
	c.parameters = append(c.parameters, CanonicalParameter{
		Index:    index,
		Name:     trimmed,
		Kind:     kind,
		Category: category,
	})
	c.indexByName[trimmed] = index
	return nil
}

// Len は登録済み正準パラメータ数を返す。
func (c *ParameterCatalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.parameters)
}

// ParameterAt はindex指定で正準パラメータを返す。
func (c *ParameterCatalog) ParameterAt(index int) (CanonicalParameter, error) {
	if c == nil || index < 0 || index >= len(c.parameters) {
		return CanonicalParameter{}, fmt.Errorf("%w: index=%d", ErrParameterIndexOutOfRange, index)
	}
	return c.parameters[index], nil
}

// IndexOf は正準パラメータ名からindexを返す。
func (c *ParameterCatalog) IndexOf(name string) (int, error) {
	if c == nil {
		return 0, fmt.Errorf("%w: name=%s", ErrParameterNotFound, name)
	}
	index, exists := c.indexByName[name]
	if !exists {
		return 0, fmt.Errorf("%w: name=%s", ErrParameterNotFound, name)
	}
	return index, nil
}

// CategoryOf は正準パラメータ名からカテゴリを返す。
func (c *ParameterCatalog) CategoryOf(name string) (ParameterCategory, error) {
	index, err := c.IndexOf(name)
	if err != nil {
		return "", err
	}
	return c.parameters[index].Category, nil
}

// Contains は正準パラメータ名の登録有無を返す。
func (c *ParameterCatalog) Contains(name string) bool {
	if c == nil {
		return false
	}
	_, exists := c.indexByName[name]
	return exists
}

// IsBlendTarget は指定名がブレンドターゲット種別かを返す。
func (c *ParameterCatalog) IsBlendTarget(name string) bool {
	if c == nil {
		return false
	}
	index, exists := c.indexByName[name]
	if !exists {
		return false
	}
	return c.parameters[index].Kind == ParameterKindBlendTarget
}

// BlendTargetNames はブレンドターゲット正準名を宣言順で返す。
func (c *ParameterCatalog) BlendTargetNames() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, BlendTargetParameterCount)
	for _, parameter := range c.parameters {
		if parameter.Kind != ParameterKindBlendTarget {
			continue
		}
		names = append(names, parameter.Name)
	}
	return names
}

// blendCategoryByName はブレンド正準名へ接頭辞規則を順に適用しカテゴリを返す。
func blendCategoryByName(name string) (ParameterCategory, error) {
	switch {
	case strings.HasPrefix(name, "eye"):
		return CategoryEye, nil
	case strings.HasPrefix(name, "jaw"):
		return CategoryJaw, nil
	case strings.HasPrefix(name, "mouth"), name == tongueOutParameterName:
		return CategoryMouth, nil
	case strings.HasPrefix(name, "brow"):
		return CategoryBrow, nil
	case strings.HasPrefix(name, "cheek"):
		return CategoryCheek, nil
	case strings.HasPrefix(name, "nose"):
		return CategoryNose, nil
	default:
		return "", fmt.Errorf("%w: name=%s", ErrParameterCategoryUnknown, name)
	}
}
