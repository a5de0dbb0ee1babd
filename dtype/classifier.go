package dtype

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/pivolan/frame_preview/domain/models"
)

// DefaultTag is the map key consulted for unrecognized tags.
const DefaultTag = "default"

var ErrUnknownTypeTag = errors.New("unknown type tag")

// Map groups raw type tags into semantic categories.
type Map map[string]models.SemanticDType

func (m Map) add(tags []string, target models.SemanticDType) {
	for _, tag := range tags {
		m[tag] = target
	}
}

// DefaultMap is the tag table of pandas dtypes.
func DefaultMap() Map {
	m := Map{}
	m.add([]string{"int8", "int16", "int32", "int64", "float8", "float16", "float32", "float64"}, models.DTypeNum)
	m.add([]string{"datetime8[ns]", "datetime16[ns]", "datetime32[ns]", "datetime64[ns]"}, models.DTypeDate)
	// no dedicated category for durations yet
	m.add([]string{"timedelta8[ns]", "timedelta16[ns]", "timedelta32[ns]", "timedelta64[ns]"}, models.DTypeString)
	m.add([]string{"object", "string"}, models.DTypeString)
	m.add([]string{"bool"}, models.DTypeBoolean)
	m.add([]string{DefaultTag}, models.DTypeNum)
	return m
}

// Classifier maps raw type tags to semantic dtypes.
type Classifier struct {
	m      Map
	strict bool
	logger log.FieldLogger
}

// NewClassifier builds a classifier over m. In strict mode unrecognized tags
// are an error instead of falling back to the default category.
func NewClassifier(m Map, strict bool, logger log.FieldLogger) *Classifier {
	if m == nil {
		m = DefaultMap()
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Classifier{m: m, strict: strict, logger: logger}
}

func (c *Classifier) Classify(tag string) (models.SemanticDType, error) {
	if d, ok := c.m[tag]; ok && tag != DefaultTag {
		return d, nil
	}
	if c.strict {
		return "", fmt.Errorf("%w: %q", ErrUnknownTypeTag, tag)
	}

	fallback, ok := c.m[DefaultTag]
	if !ok {
		fallback = models.DTypeNum
	}
	c.logger.WithFields(log.Fields{"tag": tag, "dtype": fallback}).
		Warn("unrecognized type tag, using default category")
	return fallback, nil
}
