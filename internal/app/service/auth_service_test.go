package service

import (
	"context"
	"testing"
	"time"

	"medicamp_api/internal/common"
	"medicamp_api/internal/common/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueToken(t *testing.T) {
	tokens := security.NewTokenAuth("test-secret", 30*time.Minute)
	svc := NewAuthService(tokens)

	resp, err := svc.IssueToken(context.Background(), TokenRequest{Email: " alice@example.com "})
	require.NoError(t, err)

	email, err := tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", email)
}

func TestIssueToken_RequiresEmail(t *testing.T) {
	svc := NewAuthService(security.NewTokenAuth("test-secret", time.Minute))

	_, err := svc.IssueToken(context.Background(), TokenRequest{})

	assert.ErrorIs(t, err, common.ErrBadRequest)
}
