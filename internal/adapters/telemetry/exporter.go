package telemetry

import (
	"io"
	"os"

	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/zerr"
)

// EnvTrace selects the span exporter. Only "stdout" is supported.
const EnvTrace = "UNIFY_TRACE"

// ExporterFromEnv returns the exporter selected by EnvTrace, writing to w.
// It returns nil when tracing is not enabled.
func ExporterFromEnv(w io.Writer) (sdktrace.SpanExporter, error) {
	switch v := os.Getenv(EnvTrace); v {
	case "", "off", "none":
		return nil, nil
	case "stdout":
		exp, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, zerr.Wrap(err, "failed to create trace exporter")
		}
		return exp, nil
	default:
		return nil, zerr.With(zerr.New("unsupported trace exporter"), EnvTrace, v)
	}
}
