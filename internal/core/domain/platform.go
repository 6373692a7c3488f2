package domain

import (
	"regexp"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// TargetFeaturesMode describes how much is known about a platform's target features.
type TargetFeaturesMode uint8

const (
	// FeaturesUnknown means target features are not known; feature-gated cfg predicates evaluate to false.
	FeaturesUnknown TargetFeaturesMode = iota
	// FeaturesAll means every target feature is assumed enabled.
	FeaturesAll
	// FeaturesList means exactly the listed target features are enabled.
	FeaturesList
)

// TargetFeatures is the set of target features enabled on a platform.
type TargetFeatures struct {
	Mode     TargetFeaturesMode
	Features []string
}

// Has reports whether the named target feature is enabled.
func (t TargetFeatures) Has(feature string) bool {
	switch t.Mode {
	case FeaturesAll:
		return true
	case FeaturesList:
		return slices.Contains(t.Features, feature)
	default:
		return false
	}
}

// Platform is a live platform used to evaluate target-specific dependencies.
type Platform struct {
	Triple         string
	TargetFeatures TargetFeatures
	// Flags are additional cfg flags set on the platform.
	Flags []string
	// Custom is true for platforms defined by a JSON target spec rather than a triple.
	Custom bool
}

// PlatformSummary is the serializable form of a Platform.
type PlatformSummary struct {
	Triple         string
	TargetFeatures TargetFeatures
	Flags          []string
}

var tripleRe = regexp.MustCompile(`^[a-z0-9_.]+(-[a-z0-9_.]+){1,3}$`)

// NewPlatformSummary converts a live platform into its summary form.
// Flags and target features are stored sorted and deduplicated.
func NewPlatformSummary(p *Platform) (*PlatformSummary, error) {
	if p.Custom {
		return nil, zerr.With(zerr.Wrap(ErrPlatformSummary, "custom platforms are not supported"), "triple", p.Triple)
	}
	flags := slices.Clone(p.Flags)
	slices.Sort(flags)
	return &PlatformSummary{
		Triple: p.Triple,
		TargetFeatures: TargetFeatures{
			Mode:     p.TargetFeatures.Mode,
			Features: sortedUnique(p.TargetFeatures.Features),
		},
		Flags: slices.Compact(flags),
	}, nil
}

// ToPlatform parses the summary back into a live platform.
func (s *PlatformSummary) ToPlatform() (*Platform, error) {
	if !tripleRe.MatchString(s.Triple) {
		return nil, zerr.With(ErrPlatformParse, "triple", s.Triple)
	}
	return &Platform{
		Triple:         s.Triple,
		TargetFeatures: TargetFeatures{Mode: s.TargetFeatures.Mode, Features: slices.Clone(s.TargetFeatures.Features)},
		Flags:          slices.Clone(s.Flags),
	}, nil
}

// Arch returns the architecture component of the triple.
func (p *Platform) Arch() string {
	arch, _, _ := strings.Cut(p.Triple, "-")
	return arch
}

// components returns vendor, os and env parsed from the triple.
// Three-component triples such as aarch64-linux-android omit the vendor.
func (p *Platform) components() (vendor, os, env string) {
	parts := strings.Split(p.Triple, "-")
	switch len(parts) {
	case 2:
		return "unknown", parts[1], ""
	case 3:
		if knownOS(parts[1]) {
			return "unknown", parts[1], parts[2]
		}
		return parts[1], parts[2], ""
	case 4:
		return parts[1], parts[2], parts[3]
	default:
		return "", "", ""
	}
}

func knownOS(s string) bool {
	switch s {
	case "linux", "windows", "darwin", "freebsd", "netbsd", "openbsd", "android", "ios", "none", "wasi":
		return true
	}
	return false
}

// OS returns the target_os cfg value of the platform.
func (p *Platform) OS() string {
	_, os, env := p.components()
	switch {
	case os == "darwin":
		return "macos"
	case os == "linux" && strings.HasPrefix(env, "android"):
		return "android"
	}
	return os
}

// Family returns the target_family cfg value of the platform.
func (p *Platform) Family() string {
	switch p.OS() {
	case "windows":
		return "windows"
	case "unknown", "none", "":
		if strings.HasPrefix(p.Arch(), "wasm") {
			return "wasm"
		}
		return ""
	default:
		return "unix"
	}
}

// Eval reports whether a dependency target expression matches this platform.
// A nil platform matches every expression.
func (p *Platform) Eval(expr string) (bool, error) {
	if p == nil || expr == "" {
		return true, nil
	}
	expr = strings.TrimSpace(expr)
	if !strings.HasPrefix(expr, "cfg(") {
		return expr == p.Triple, nil
	}
	if !strings.HasSuffix(expr, ")") {
		return false, zerr.With(ErrInvalidTargetExpr, "expr", expr)
	}
	ev := &cfgEval{p: p, src: expr[len("cfg(") : len(expr)-1]}
	ok, err := ev.expr()
	if err != nil {
		return false, zerr.With(err, "expr", expr)
	}
	ev.skipSpace()
	if ev.pos != len(ev.src) {
		return false, zerr.With(ErrInvalidTargetExpr, "expr", expr)
	}
	return ok, nil
}

type cfgEval struct {
	p   *Platform
	src string
	pos int
}

func (e *cfgEval) skipSpace() {
	for e.pos < len(e.src) && (e.src[e.pos] == ' ' || e.src[e.pos] == '\t') {
		e.pos++
	}
}

func (e *cfgEval) ident() string {
	e.skipSpace()
	start := e.pos
	for e.pos < len(e.src) {
		c := e.src[e.pos]
		if c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' {
			e.pos++
			continue
		}
		break
	}
	return e.src[start:e.pos]
}

func (e *cfgEval) consume(c byte) bool {
	e.skipSpace()
	if e.pos < len(e.src) && e.src[e.pos] == c {
		e.pos++
		return true
	}
	return false
}

func (e *cfgEval) str() (string, error) {
	if !e.consume('"') {
		return "", ErrInvalidTargetExpr
	}
	end := strings.IndexByte(e.src[e.pos:], '"')
	if end < 0 {
		return "", ErrInvalidTargetExpr
	}
	s := e.src[e.pos : e.pos+end]
	e.pos += end + 1
	return s, nil
}

func (e *cfgEval) list() ([]bool, error) {
	if !e.consume('(') {
		return nil, ErrInvalidTargetExpr
	}
	var res []bool
	if e.consume(')') {
		return res, nil
	}
	for {
		v, err := e.expr()
		if err != nil {
			return nil, err
		}
		res = append(res, v)
		if e.consume(')') {
			return res, nil
		}
		if !e.consume(',') {
			return nil, ErrInvalidTargetExpr
		}
	}
}

func (e *cfgEval) expr() (bool, error) {
	name := e.ident()
	if name == "" {
		return false, ErrInvalidTargetExpr
	}
	switch name {
	case "all", "any", "not":
		vals, err := e.list()
		if err != nil {
			return false, err
		}
		switch name {
		case "all":
			return !slices.Contains(vals, false), nil
		case "any":
			return slices.Contains(vals, true), nil
		default:
			if len(vals) != 1 {
				return false, ErrInvalidTargetExpr
			}
			return !vals[0], nil
		}
	}
	if e.consume('=') {
		val, err := e.str()
		if err != nil {
			return false, err
		}
		return e.keyValue(name, val), nil
	}
	return e.flag(name), nil
}

func (e *cfgEval) keyValue(key, val string) bool {
	vendor, _, env := e.p.components()
	switch key {
	case "target_os":
		return e.p.OS() == val
	case "target_arch":
		return e.p.Arch() == val
	case "target_family":
		return e.p.Family() == val
	case "target_env":
		return env == val || strings.HasPrefix(env, val)
	case "target_vendor":
		return vendor == val
	case "target_feature":
		return e.p.TargetFeatures.Has(val)
	case "feature":
		return false
	default:
		return false
	}
}

func (e *cfgEval) flag(name string) bool {
	switch name {
	case "unix", "windows":
		return e.p.Family() == name
	}
	return slices.Contains(e.p.Flags, name)
}

func sortedUnique(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	out := slices.Clone(s)
	slices.Sort(out)
	return slices.Compact(out)
}
