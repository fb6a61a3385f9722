package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/NonmaskableInt/alpaca-mcp/internal/tools"
)

func TestValidateTransport(t *testing.T) {
	assert.NoError(t, ValidateTransport(TransportStdio))
	assert.NoError(t, ValidateTransport(TransportSSE))
	assert.NoError(t, ValidateTransport(TransportStreamableHTTP))
	assert.EqualError(t, ValidateTransport("grpc"),
		`unsupported transport "grpc" (expected stdio, sse or streamable-http)`)
}

func TestResolveTransport(t *testing.T) {
	tests := []struct {
		name       string
		base       string
		explicit   string
		sse        bool
		streamable bool
		want       string
	}{
		{name: "keeps configured default", base: TransportStdio, want: TransportStdio},
		{name: "explicit wins over shorthands", base: TransportStdio, explicit: TransportSSE, streamable: true, want: TransportSSE},
		{name: "sse shorthand", base: TransportStdio, sse: true, want: TransportSSE},
		{name: "streamable shorthand", base: TransportStdio, streamable: true, want: TransportStreamableHTTP},
		{name: "sse shorthand wins over streamable", base: TransportStdio, sse: true, streamable: true, want: TransportSSE},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveTransport(tt.base, tt.explicit, tt.sse, tt.streamable))
		})
	}
}

func TestNewRejectsUnknownTransport(t *testing.T) {
	adapter := tools.NewAdapter(nil, nil, zap.NewNop())
	_, err := New(adapter, Options{Transport: "carrier-pigeon"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported transport")
}

func TestNewBuildsStdioServer(t *testing.T) {
	adapter := tools.NewAdapter(nil, nil, zap.NewNop())
	srv, err := New(adapter, Options{Transport: TransportStdio})
	require.NoError(t, err)
	require.NotNil(t, srv)
}
