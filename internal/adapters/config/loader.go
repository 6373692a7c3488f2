// Package config provides the configuration loader for unify.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"go.trai.ch/unify/internal/core/codec"
	"go.trai.ch/unify/internal/core/domain"
	"go.trai.ch/unify/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger   ports.Logger
	validate *validator.Validate
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{
		Logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Load reads the configuration of the workspace rooted at root.
func (l *Loader) Load(root string) (*domain.Config, error) {
	path := filepath.Join(root, domain.ConfigPath)

	var file File
	if err := readAndUnmarshalYAML(path, &file); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	if err := l.validate.Struct(file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigInvalid.Error()), "path", path)
	}

	cfg, err := l.toDomain(&file)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return cfg, nil
}

func (l *Loader) toDomain(file *File) (*domain.Config, error) {
	depFormat, ok := domain.ParseDepFormat(file.DepFormat)
	if !ok {
		return nil, zerr.With(domain.ErrConfigInvalid, "dep_format", file.DepFormat)
	}

	version := domain.ResolverV2
	if file.Resolver.Version != "" {
		v, err := domain.ParseResolverVersion(file.Resolver.Version)
		if err != nil {
			return nil, err
		}
		version = v
	}

	host, err := codec.DecodePlatform(file.Resolver.HostPlatform)
	if err != nil {
		return nil, zerr.Wrap(err, "parsing host platform")
	}
	target, err := codec.DecodePlatform(file.Resolver.TargetPlatform)
	if err != nil {
		return nil, zerr.Wrap(err, "parsing target platform")
	}

	omitted := make([]domain.OmittedPackage, 0, len(file.Resolver.OmittedPackages))
	for _, o := range file.Resolver.OmittedPackages {
		omitted = append(omitted, domain.OmittedPackage(o))
	}

	cfg := &domain.Config{
		UnificationPackage: file.UnificationPackage,
		DepFormat:          depFormat,
		Resolver: domain.ResolverConfig{
			Version:            version,
			IncludeDev:         file.Resolver.IncludeDev,
			ProcMacrosOnTarget: file.Resolver.ProcMacrosOnTarget,
			HostPlatform:       host,
			TargetPlatform:     target,
			OmittedPackages:    omitted,
		},
		FeaturesOnly:  file.FeaturesOnly,
		Excludes:      file.Excludes,
		ExactVersions: file.Output.ExactVersions,
	}

	if cfg.IsExcluded(cfg.UnificationPackage) {
		l.Logger.Warn(fmt.Sprintf("unification package %s is listed in excludes, ignoring", cfg.UnificationPackage))
	}
	return cfg, nil
}

// Template renders the initial configuration for a new unification package.
func Template(packageName string) (string, error) {
	file := File{
		UnificationPackage: packageName,
		DepFormat:          "version-and-path",
		Resolver:           ResolverDTO{Version: "2"},
	}

	var buf bytes.Buffer
	buf.WriteString(domain.ConfigComment)
	buf.WriteByte('\n')

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(file); err != nil {
		return "", zerr.Wrap(err, "failed to render config")
	}
	if err := enc.Close(); err != nil {
		return "", zerr.Wrap(err, "failed to render config")
	}
	return buf.String(), nil
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is built from the workspace root
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	dec := yaml.NewDecoder(bytes.NewReader(configFile))
	dec.KnownFields(true)
	if parseErr := dec.Decode(target); parseErr != nil && !errors.Is(parseErr, io.EOF) {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
