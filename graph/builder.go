package graph

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/pivolan/frame_preview/domain/models"
)

// Builder picks and constructs the chart of a column.
type Builder struct {
	Preferences Preferences
	Registry    Registry
	Options     Options
	Logger      log.FieldLogger
}

func NewBuilder(prefs Preferences, registry Registry, opts Options, logger log.FieldLogger) *Builder {
	if prefs == nil {
		prefs = DefaultPreferences()
	}
	if registry == nil {
		registry = DefaultRegistry()
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Builder{Preferences: prefs, Registry: registry, Options: opts, Logger: logger}
}

// Build walks the preference chain of d and returns the first chart that
// constructs successfully.
func (b *Builder) Build(values []string, index []models.IndexDescriptor, d models.SemanticDType) (*Chart, error) {
	chain, ok := b.Preferences[d]
	if !ok {
		return nil, fmt.Errorf("%w '%s'", ErrUnknownDType, d)
	}
	b.warnMultiIndex(index)

	var lastErr error
	for _, k := range chain {
		factory, ok := b.Registry[k]
		if !ok {
			b.Logger.WithField("kind", k).Debug("chart kind not registered")
			continue
		}
		c, err := factory(values, index, d, b.Options)
		if err != nil {
			b.Logger.WithFields(log.Fields{"kind": k, "dtype": d}).WithError(err).Debug("chart kind rejected the data")
			lastErr = err
			continue
		}
		return c, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w for dtype '%s': %v", ErrNoAvailableChartKind, d, lastErr)
	}
	return nil, fmt.Errorf("%w for dtype '%s'", ErrNoAvailableChartKind, d)
}

// BuildKind constructs kind directly, bypassing the preference chain.
func (b *Builder) BuildKind(kind Kind, values []string, index []models.IndexDescriptor, d models.SemanticDType) (*Chart, error) {
	factory, ok := b.Registry[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s is not registered", ErrUnknownKind, kind)
	}
	b.warnMultiIndex(index)
	return factory(values, index, d, b.Options)
}

func (b *Builder) warnMultiIndex(index []models.IndexDescriptor) {
	if len(index) > 1 {
		b.Logger.WithField("levels", len(index)).Warn("multi-index is not supported, using level 0")
	}
}
