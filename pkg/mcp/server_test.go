package mcp

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mholzen/lifo/pkg/collections"
)

func TestParseExposeList(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"", allTools},
		{"all", allTools},
		{"read", []string{ToolIsEmpty}},
		{"write", []string{ToolPush, ToolPop, ToolDrop}},
		{"read, write", []string{ToolIsEmpty, ToolPush, ToolPop, ToolDrop}},
		{"POP,push,stack_pop", []string{ToolPop, ToolPush}},
		{"stack_drop", []string{ToolDrop}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseExposeList(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseExposeList_Unknown(t *testing.T) {
	_, err := ParseExposeList("read,peek")
	assert.EqualError(t, err, "unknown tool or group in --expose: peek")
}

func TestNewServer_RequiresSession(t *testing.T) {
	_, err := NewServer(Config{Expose: "all"})
	assert.Error(t, err)
}

func TestNewServer(t *testing.T) {
	server, err := NewServer(Config{Expose: "write", Version: "test", Session: NewSession(collections.NewStack())})
	require.NoError(t, err)
	assert.NotNil(t, server)
}

func TestNewHTTPHandler(t *testing.T) {
	handler, err := NewHTTPHandler(HTTPConfig{Config: Config{Session: NewSession(collections.NewStack())}})
	require.NoError(t, err)
	assert.NotNil(t, handler)

	_, err = NewHTTPHandler(HTTPConfig{Config: Config{Expose: "bogus", Session: NewSession(collections.NewStack())}})
	assert.Error(t, err)
}

func TestSession_ConcurrentPushes(t *testing.T) {
	session := NewSession(collections.NewStack())

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				session.Push(int32(w*1000 + i))
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, 8000, session.Drop())
	assert.True(t, session.IsEmpty())
}
