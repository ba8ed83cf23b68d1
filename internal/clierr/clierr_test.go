package clierr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap_KeepsCodeOfWrappedError(t *testing.T) {
	inner := Newf(TaskNotFound, "task not found: %s", "abc")

	got := Wrap(StoreError, "updating task", fmt.Errorf("reading: %w", inner))

	assert.Equal(t, TaskNotFound, got.Code)
	assert.Equal(t, "updating task: reading: task not found: abc", got.Error())
	assert.True(t, errors.Is(got, inner))
}

func TestWrap_PlainCause(t *testing.T) {
	got := Wrap(StoreError, "creating task", errors.New("disk full"))

	assert.Equal(t, StoreError, got.Code)
	assert.Equal(t, StoreError, CodeOf(fmt.Errorf("outer: %w", got)))
	assert.Equal(t, "", CodeOf(errors.New("plain")))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 2, New(InternalError, "boom").ExitCode())
	assert.Equal(t, 1, New(InvalidTitle, "empty").ExitCode())
}
