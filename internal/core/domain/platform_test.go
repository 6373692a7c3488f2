package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/unify/internal/core/domain"
)

func TestPlatform_Eval(t *testing.T) {
	linux := &domain.Platform{
		Triple:         "x86_64-unknown-linux-gnu",
		TargetFeatures: domain.TargetFeatures{Mode: domain.FeaturesList, Features: []string{"sse2"}},
	}
	windows := &domain.Platform{Triple: "x86_64-pc-windows-msvc"}
	android := &domain.Platform{Triple: "aarch64-linux-android"}

	tests := []struct {
		name string
		p    *domain.Platform
		expr string
		want bool
	}{
		{name: "empty matches", p: linux, expr: "", want: true},
		{name: "nil platform matches", p: nil, expr: "cfg(windows)", want: true},
		{name: "exact triple", p: linux, expr: "x86_64-unknown-linux-gnu", want: true},
		{name: "other triple", p: linux, expr: "x86_64-pc-windows-msvc", want: false},
		{name: "unix", p: linux, expr: "cfg(unix)", want: true},
		{name: "windows on linux", p: linux, expr: "cfg(windows)", want: false},
		{name: "windows on windows", p: windows, expr: "cfg(windows)", want: true},
		{name: "target_os", p: linux, expr: `cfg(target_os = "linux")`, want: true},
		{name: "android os", p: android, expr: `cfg(target_os = "android")`, want: true},
		{name: "target_env", p: windows, expr: `cfg(target_env = "msvc")`, want: true},
		{name: "target_arch", p: android, expr: `cfg(target_arch = "aarch64")`, want: true},
		{name: "target_feature", p: linux, expr: `cfg(target_feature = "sse2")`, want: true},
		{name: "missing target_feature", p: linux, expr: `cfg(target_feature = "avx2")`, want: false},
		{name: "not", p: linux, expr: "cfg(not(windows))", want: true},
		{name: "any", p: linux, expr: `cfg(any(windows, target_os = "linux"))`, want: true},
		{name: "all", p: linux, expr: `cfg(all(unix, target_arch = "aarch64"))`, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.p.Eval(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlatform_Eval_Invalid(t *testing.T) {
	p := &domain.Platform{Triple: "x86_64-unknown-linux-gnu"}
	for _, expr := range []string{"cfg(", "cfg(not(unix, windows))", `cfg(target_os = linux)`, "cfg(unix) extra)"} {
		_, err := p.Eval(expr)
		assert.Error(t, err, expr)
	}
}

func TestPlatformSummary(t *testing.T) {
	_, err := domain.NewPlatformSummary(&domain.Platform{Triple: "custom", Custom: true})
	assert.ErrorContains(t, err, domain.ErrPlatformSummary.Error())

	s, err := domain.NewPlatformSummary(&domain.Platform{Triple: "wasm32-unknown-unknown", Flags: []string{"b", "a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, s.Flags)

	_, err = (&domain.PlatformSummary{Triple: "Not Valid"}).ToPlatform()
	assert.ErrorContains(t, err, domain.ErrPlatformParse.Error())
}
