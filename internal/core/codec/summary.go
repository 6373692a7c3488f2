package codec

import (
	"bytes"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/unify/internal/core/domain"
	"go.trai.ch/zerr"
)

// IDDoc is the serialized form of a package identity.
// Exactly one of WorkspacePath, Path, CratesIO and External is set.
type IDDoc struct {
	Name          string `toml:"name" yaml:"name" validate:"required"`
	Version       string `toml:"version" yaml:"version" validate:"required"`
	WorkspacePath string `toml:"workspace-path,omitempty" yaml:"workspace-path,omitempty"`
	Path          string `toml:"path,omitempty" yaml:"path,omitempty"`
	CratesIO      bool   `toml:"crates-io,omitempty" yaml:"crates-io,omitempty"`
	External      string `toml:"external,omitempty" yaml:"external,omitempty"`
}

type featuresOnlyDoc struct {
	Name          string   `toml:"name"`
	Version       string   `toml:"version"`
	WorkspacePath string   `toml:"workspace-path,omitempty"`
	Path          string   `toml:"path,omitempty"`
	CratesIO      bool     `toml:"crates-io,omitempty"`
	External      string   `toml:"external,omitempty"`
	Features      []string `toml:"features"`
}

type packageDoc struct {
	Name          string   `toml:"name"`
	Version       string   `toml:"version"`
	WorkspacePath string   `toml:"workspace-path,omitempty"`
	Path          string   `toml:"path,omitempty"`
	CratesIO      bool     `toml:"crates-io,omitempty"`
	External      string   `toml:"external,omitempty"`
	Status        string   `toml:"status"`
	Features      []string `toml:"features"`
}

type optionsDoc struct {
	Version            string            `toml:"version"`
	IncludeDev         bool              `toml:"include-dev"`
	ProcMacrosOnTarget bool              `toml:"proc-macros-on-target"`
	HostPlatform       *PlatformDoc      `toml:"host-platform,omitempty"`
	TargetPlatform     *PlatformDoc      `toml:"target-platform,omitempty"`
	OmittedPackages    []IDDoc           `toml:"omitted-packages,omitempty"`
	FeaturesOnly       []featuresOnlyDoc `toml:"features-only,omitempty"`
}

type summaryDoc struct {
	Metadata       *optionsDoc  `toml:"metadata,omitempty"`
	TargetPackages []packageDoc `toml:"target-package,omitempty"`
	HostPackages   []packageDoc `toml:"host-package,omitempty"`
}

// EncodeID converts an identity into its document form.
func EncodeID(id domain.SummaryID) IDDoc {
	doc := IDDoc{Name: id.Name, Version: id.VersionString()}
	switch src := id.Source.(type) {
	case domain.WorkspaceSource:
		doc.WorkspacePath = src.Path
	case domain.PathSource:
		doc.Path = src.Path
	case domain.RegistrySource:
		doc.CratesIO = true
	case domain.ExternalSource:
		doc.External = src.URL
	}
	return doc
}

// DecodeID converts an identity document into a SummaryID.
func DecodeID(doc IDDoc) (domain.SummaryID, error) {
	var (
		src domain.SummarySource
		n   int
	)
	if doc.WorkspacePath != "" {
		src, n = domain.WorkspaceSource{Path: doc.WorkspacePath}, n+1
	}
	if doc.Path != "" {
		src, n = domain.PathSource{Path: doc.Path}, n+1
	}
	if doc.CratesIO {
		src, n = domain.RegistrySource{}, n+1
	}
	if doc.External != "" {
		src, n = domain.ExternalSource{URL: doc.External}, n+1
	}
	if n != 1 {
		return domain.SummaryID{}, zerr.With(zerr.Wrap(domain.ErrUnknownSource, "expected exactly one source key"), "package", doc.Name)
	}
	return domain.NewSummaryID(doc.Name, doc.Version, src)
}

// EncodeSummary serializes a build summary as TOML.
// Identical logical content always yields identical bytes.
func EncodeSummary(s *domain.BuildSummary) ([]byte, error) {
	doc := summaryDoc{
		TargetPackages: encodePackages(s.TargetPackages),
		HostPackages:   encodePackages(s.HostPackages),
	}
	if s.Metadata != nil {
		meta, err := encodeOptions(s.Metadata)
		if err != nil {
			return nil, err
		}
		doc.Metadata = meta
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(false)
	if err := enc.Encode(doc); err != nil {
		return nil, zerr.Wrap(err, domain.ErrSummaryEncodeFailed.Error())
	}
	return buf.Bytes(), nil
}

// DecodeSummary parses a TOML build summary.
func DecodeSummary(data []byte) (*domain.BuildSummary, error) {
	var doc summaryDoc
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, zerr.Wrap(err, domain.ErrSummaryDecodeFailed.Error())
	}

	s := &domain.BuildSummary{}
	if doc.Metadata != nil {
		meta, err := decodeOptions(doc.Metadata)
		if err != nil {
			return nil, err
		}
		s.Metadata = meta
	}
	var err error
	if s.TargetPackages, err = decodePackages(doc.TargetPackages); err != nil {
		return nil, err
	}
	if s.HostPackages, err = decodePackages(doc.HostPackages); err != nil {
		return nil, err
	}
	return s, nil
}

func encodeOptions(o *domain.OptionsSummary) (*optionsDoc, error) {
	version, err := o.Version.MarshalText()
	if err != nil {
		return nil, err
	}
	doc := &optionsDoc{
		Version:            string(version),
		IncludeDev:         o.IncludeDev,
		ProcMacrosOnTarget: o.ProcMacrosOnTarget,
		HostPlatform:       EncodePlatform(o.HostPlatform),
		TargetPlatform:     EncodePlatform(o.TargetPlatform),
	}
	for _, id := range o.OmittedPackages {
		doc.OmittedPackages = append(doc.OmittedPackages, EncodeID(id))
	}
	for _, fo := range o.FeaturesOnly {
		id := EncodeID(fo.ID)
		doc.FeaturesOnly = append(doc.FeaturesOnly, featuresOnlyDoc{
			Name:          id.Name,
			Version:       id.Version,
			WorkspacePath: id.WorkspacePath,
			Path:          id.Path,
			CratesIO:      id.CratesIO,
			External:      id.External,
			Features:      nonNil(fo.Features),
		})
	}
	return doc, nil
}

func decodeOptions(doc *optionsDoc) (*domain.OptionsSummary, error) {
	version, err := domain.ParseResolverVersion(doc.Version)
	if err != nil {
		return nil, err
	}
	o := &domain.OptionsSummary{
		Version:            version,
		IncludeDev:         doc.IncludeDev,
		ProcMacrosOnTarget: doc.ProcMacrosOnTarget,
	}
	if o.HostPlatform, err = DecodePlatform(doc.HostPlatform); err != nil {
		return nil, zerr.Wrap(err, "parsing host platform")
	}
	if o.TargetPlatform, err = DecodePlatform(doc.TargetPlatform); err != nil {
		return nil, zerr.Wrap(err, "parsing target platform")
	}
	for _, idDoc := range doc.OmittedPackages {
		id, err := DecodeID(idDoc)
		if err != nil {
			return nil, err
		}
		o.OmittedPackages = append(o.OmittedPackages, id)
	}
	for _, fo := range doc.FeaturesOnly {
		id, err := DecodeID(IDDoc{
			Name:          fo.Name,
			Version:       fo.Version,
			WorkspacePath: fo.WorkspacePath,
			Path:          fo.Path,
			CratesIO:      fo.CratesIO,
			External:      fo.External,
		})
		if err != nil {
			return nil, err
		}
		o.FeaturesOnly = append(o.FeaturesOnly, domain.FeaturesOnlySummary{ID: id, Features: fo.Features})
	}
	return o, nil
}

func encodePackages(m domain.PackageMap) []packageDoc {
	entries := m.Entries()
	docs := make([]packageDoc, 0, len(entries))
	for _, e := range entries {
		id := EncodeID(e.ID)
		docs = append(docs, packageDoc{
			Name:          id.Name,
			Version:       id.Version,
			WorkspacePath: id.WorkspacePath,
			Path:          id.Path,
			CratesIO:      id.CratesIO,
			External:      id.External,
			Status:        e.Info.Role.String(),
			Features:      nonNil(e.Info.Features),
		})
	}
	return docs
}

func decodePackages(docs []packageDoc) (domain.PackageMap, error) {
	m := domain.NewPackageMap()
	for _, d := range docs {
		id, err := DecodeID(IDDoc{
			Name:          d.Name,
			Version:       d.Version,
			WorkspacePath: d.WorkspacePath,
			Path:          d.Path,
			CratesIO:      d.CratesIO,
			External:      d.External,
		})
		if err != nil {
			return domain.PackageMap{}, err
		}
		role, err := domain.ParseRole(d.Status)
		if err != nil {
			return domain.PackageMap{}, zerr.With(err, "package", d.Name)
		}
		if m.Insert(id, domain.PackageInfo{Role: role, Features: d.Features}) {
			return domain.PackageMap{}, zerr.With(domain.ErrDuplicatePackage, "package", id.String())
		}
	}
	return m, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
