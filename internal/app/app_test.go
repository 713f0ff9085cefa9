// Package app_test contains unit tests for the app package.
package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bauradar/baugesuche-crawler/internal/app"
)

func TestNewApp(t *testing.T) {
	a, err := app.NewApp(context.Background())
	require.NoError(t, err)
	defer a.Close()

	assert.NotNil(t, a.GetLogger())
	assert.NotEmpty(t, a.RunID())
}

func TestNewApp_RunIDsAreUnique(t *testing.T) {
	a, err := app.NewApp(context.Background())
	require.NoError(t, err)
	defer a.Close()

	b, err := app.NewApp(context.Background())
	require.NoError(t, err)
	defer b.Close()

	assert.NotEqual(t, a.RunID(), b.RunID())
}
