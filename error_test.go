package pagemeta_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/pagemeta"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := pagemeta.Errorf(pagemeta.EINVALIDURL, "URL %q has no host", "foo")

	assert.Equal(t, pagemeta.EINVALIDURL, pagemeta.ErrorCode(err))
	assert.Equal(t, "URL \"foo\" has no host", pagemeta.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, pagemeta.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, pagemeta.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("wrapped: %w", pagemeta.Errorf(pagemeta.ERULE, "bad selector"))

	assert.Equal(t, pagemeta.ERULE, pagemeta.ErrorCode(err))
	assert.Equal(t, "bad selector", pagemeta.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, pagemeta.EINTERNAL, pagemeta.ErrorCode(err))
	assert.Equal(t, "Internal error.", pagemeta.ErrorMessage(err))
}
