package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiready/aiready/internal/domain"
	"github.com/aiready/aiready/internal/domain/patterns"
)

func TestScanService_CheckName(t *testing.T) {
	svc, _ := newScanService(t)

	issue, flagged := svc.CheckName(domain.LanguagePython, "getUserData", domain.KindFunction)
	require.True(t, flagged)
	assert.Equal(t, domain.IssueConventionMix, issue.Kind)
	assert.Equal(t, "get_user_data", issue.Suggestion)
	assert.Empty(t, issue.File)

	_, flagged = svc.CheckName(domain.LanguagePython, "get_user_data", domain.KindFunction)
	assert.False(t, flagged)
}

func TestScanService_Patterns(t *testing.T) {
	svc, _ := newScanService(t)

	ps, err := svc.Patterns(context.Background(), "proj", "users.py")
	require.NoError(t, err)
	require.Len(t, ps, 3)
	assert.Equal(t, "users.py", ps[0].File)
	assert.Equal(t, "def get_user(user_id)", ps[0].Signature)
}

func TestScanService_PatternsErrors(t *testing.T) {
	svc, _ := newScanService(t)
	ctx := context.Background()

	_, err := svc.Patterns(ctx, "proj", "notes.txt")
	assert.ErrorIs(t, err, domain.ErrUnsupportedLanguage)

	_, err = svc.Patterns(ctx, "proj", "missing.py")
	assert.ErrorIs(t, err, domain.ErrUnreadableFile)

	_, err = svc.Patterns(ctx, "proj", "broken.py")
	assert.ErrorIs(t, err, domain.ErrParseFailure)
}

func TestScanService_FindPattern(t *testing.T) {
	svc, _ := newScanService(t)
	ctx := context.Background()

	a, err := svc.FindPattern(ctx, "proj", "users.py", "get_user")
	require.NoError(t, err)
	b, err := svc.FindPattern(ctx, "proj", "users.py", "fetch_user")
	require.NoError(t, err)
	assert.Greater(t, patterns.Similarity(a, b), 0.75)

	_, err = svc.FindPattern(ctx, "proj", "users.py", "nope")
	assert.ErrorContains(t, err, `no function or class "nope"`)
}
