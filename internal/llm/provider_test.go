package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProvider is a test implementation of the Provider interface.
type mockProvider struct {
	name        string
	describeErr error
	description string
}

func (m *mockProvider) Name() string { return m.name }

func (m *mockProvider) Describe(ctx context.Context, abcText string) (string, error) {
	if m.describeErr != nil {
		return "", m.describeErr
	}
	return m.description, nil
}

func TestProviderInterface(t *testing.T) {
	mock := &mockProvider{name: "mock", description: "A lively reel in D major."}

	assert.Equal(t, "mock", mock.Name())

	desc, err := mock.Describe(context.Background(), "K:D\nDEF\n")
	require.NoError(t, err)
	assert.Equal(t, "A lively reel in D major.", desc)
}

func TestProviderInterfacePropagatesErrors(t *testing.T) {
	mock := &mockProvider{name: "mock", describeErr: errors.New("provider unavailable")}

	_, err := mock.Describe(context.Background(), "K:D\n")
	require.Error(t, err)
}
