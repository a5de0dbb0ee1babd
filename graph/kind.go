package graph

import (
	"errors"
	"fmt"

	"github.com/pivolan/frame_preview/domain/models"
)

var (
	ErrUnknownKind          = errors.New("unknown chart kind")
	ErrUnknownDType         = errors.New("unknown dtype")
	ErrNoAvailableChartKind = errors.New("no available chart kind")
)

// Kind is one of the supported preview visualizations.
type Kind int

const (
	KindBar Kind = iota
	KindLine
	KindScatter
	KindCategoricalBar
	KindHistogram
)

// Kinds lists every chart kind in menu order.
var Kinds = []Kind{KindBar, KindCategoricalBar, KindHistogram, KindLine, KindScatter}

var kindNames = map[Kind]string{
	KindBar:            "Bar",
	KindLine:           "Line",
	KindScatter:        "Scatter",
	KindCategoricalBar: "CategoricalBar",
	KindHistogram:      "Histogram",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Preferences maps a semantic dtype to the chart kinds to try, best first.
type Preferences map[models.SemanticDType][]Kind

func DefaultPreferences() Preferences {
	return Preferences{
		models.DTypeBoolean:   {KindCategoricalBar, KindHistogram},
		models.DTypeDate:      {KindCategoricalBar, KindHistogram},
		models.DTypeNum:       {KindHistogram, KindCategoricalBar, KindBar, KindLine},
		models.DTypeString:    {KindCategoricalBar},
		models.DTypeUndefined: {KindBar},
	}
}

// Allows reports whether kind is in the preference chain of dtype.
func (p Preferences) Allows(dtype models.SemanticDType, kind Kind) bool {
	for _, k := range p[dtype] {
		if k == kind {
			return true
		}
	}
	return false
}

// Resolve returns the first kind of the dtype's preference chain that has a
// registered constructor. The order comes from prefs, never from registry.
func Resolve(dtype models.SemanticDType, prefs Preferences, registry Registry) (Kind, error) {
	chain, ok := prefs[dtype]
	if !ok {
		return 0, fmt.Errorf("%w '%s'", ErrUnknownDType, dtype)
	}
	for _, k := range chain {
		if _, ok := registry[k]; ok {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w for dtype '%s'", ErrNoAvailableChartKind, dtype)
}
