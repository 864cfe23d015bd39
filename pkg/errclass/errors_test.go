package errclass_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/glare-project/glare/pkg/errclass"
	"github.com/stretchr/testify/assert"
)

func TestErrorString(t *testing.T) {
	assert.Equal(t, "E_TRANSPORT", errclass.ErrTransport.Error())

	withMsg := errclass.ErrTransport.WithMessage("connection refused")
	assert.Equal(t, "E_TRANSPORT: connection refused", withMsg.Error())
}

func TestErrorsIs_MatchesByCode(t *testing.T) {
	err := errclass.ErrParse.WithMessagef("unrecognized listing shape: %s", "object")
	assert.True(t, errors.Is(err, errclass.ErrParse))
	assert.False(t, errors.Is(err, errclass.ErrTransport))
}

func TestErrorsIs_ThroughWrapping(t *testing.T) {
	inner := errclass.ErrRepoIndex.WithMessage("pack file missing")
	wrapped := fmt.Errorf("list snapshot files: %w", inner)
	assert.True(t, errors.Is(wrapped, errclass.ErrRepoIndex))
}

func TestHintPreservedByWithMessage(t *testing.T) {
	err := errclass.ErrRepoIndex.WithMessage("pack file missing")
	assert.NotEmpty(t, err.Hint)
	assert.Equal(t, errclass.ErrRepoIndex.Hint, err.Hint)
}
