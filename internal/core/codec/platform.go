// Package codec converts domain summaries to and from their serialized forms.
package codec

import (
	"fmt"

	"go.trai.ch/unify/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	targetFeaturesUnknown = "unknown"
	targetFeaturesAll     = "all"
)

// PlatformDoc is the serialized form of a platform summary.
// TargetFeatures holds "unknown", "all" or a list of feature names.
type PlatformDoc struct {
	Triple         string   `toml:"triple" yaml:"triple" validate:"required"`
	TargetFeatures any      `toml:"target-features" yaml:"target-features,omitempty"`
	Flags          []string `toml:"flags,omitempty" yaml:"flags,omitempty"`
}

// EncodePlatform converts a platform summary into its document form.
func EncodePlatform(s *domain.PlatformSummary) *PlatformDoc {
	if s == nil {
		return nil
	}
	doc := &PlatformDoc{Triple: s.Triple, Flags: s.Flags}
	switch s.TargetFeatures.Mode {
	case domain.FeaturesAll:
		doc.TargetFeatures = targetFeaturesAll
	case domain.FeaturesList:
		features := s.TargetFeatures.Features
		if features == nil {
			features = []string{}
		}
		doc.TargetFeatures = features
	default:
		doc.TargetFeatures = targetFeaturesUnknown
	}
	return doc
}

// DecodePlatform converts a platform document into a platform summary.
func DecodePlatform(doc *PlatformDoc) (*domain.PlatformSummary, error) {
	if doc == nil {
		return nil, nil
	}
	s := &domain.PlatformSummary{Triple: doc.Triple, Flags: doc.Flags}
	switch v := doc.TargetFeatures.(type) {
	case nil:
		s.TargetFeatures.Mode = domain.FeaturesUnknown
	case string:
		switch v {
		case targetFeaturesUnknown:
			s.TargetFeatures.Mode = domain.FeaturesUnknown
		case targetFeaturesAll:
			s.TargetFeatures.Mode = domain.FeaturesAll
		default:
			return nil, zerr.With(zerr.Wrap(domain.ErrPlatformParse, "invalid target-features"), "target_features", v)
		}
	case []string:
		s.TargetFeatures = domain.TargetFeatures{Mode: domain.FeaturesList, Features: v}
	case []any:
		features := make([]string, 0, len(v))
		for _, f := range v {
			name, ok := f.(string)
			if !ok {
				return nil, zerr.With(zerr.Wrap(domain.ErrPlatformParse, "target feature must be a string"), "target_feature", fmt.Sprint(f))
			}
			features = append(features, name)
		}
		s.TargetFeatures = domain.TargetFeatures{Mode: domain.FeaturesList, Features: features}
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrPlatformParse, "invalid target-features"), "target_features", fmt.Sprint(v))
	}
	return s, nil
}
