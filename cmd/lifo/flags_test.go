package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/mholzen/lifo/pkg/collections"
)

func TestGetGlobalFlags_Defaults(t *testing.T) {
	var found bool
	for _, f := range getGlobalFlags() {
		if sf, ok := f.(*cli.StringFlag); ok && sf.Name == "log-level" {
			found = true
			assert.Equal(t, "info", sf.Value)
		}
	}
	assert.True(t, found, "global flags should include log-level")
}

func TestVariantFlag_Default(t *testing.T) {
	var variant string

	cmd := &cli.Command{
		Flags: []cli.Flag{getVariantFlag()},
		Action: func(ctx context.Context, c *cli.Command) error {
			variant = c.String("variant")
			return nil
		},
	}

	err := cmd.Run(context.Background(), []string{"test"})
	assert.NoError(t, err)
	assert.Equal(t, "linked", variant)
}

func TestNewStack(t *testing.T) {
	s, err := newStack("linked")
	require.NoError(t, err)
	assert.IsType(t, &collections.Stack{}, s)

	s, err = newStack("arena")
	require.NoError(t, err)
	assert.IsType(t, &collections.ArenaStack{}, s)

	_, err = newStack("")
	assert.Error(t, err)
}

func TestValidateFormat(t *testing.T) {
	assert.NoError(t, validateFormat("text"))
	assert.NoError(t, validateFormat("json"))
	assert.Error(t, validateFormat("markdown"))
}
