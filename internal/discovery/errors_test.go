package discovery

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCriticalWalkError(t *testing.T) {
	assert.False(t, IsCriticalWalkError(nil))
	assert.False(t, IsCriticalWalkError(errors.New("no such file or directory")))
	assert.True(t, IsCriticalWalkError(errors.New("open /x: Permission denied")))
	assert.True(t, IsCriticalWalkError(fmt.Errorf("stat: Invalid argument")))
}

func TestCriticalWalkError_AggregatesPaths(t *testing.T) {
	agg := &CriticalWalkError{}
	agg.Add("a/secret.txt", errors.New("Permission denied"))
	agg.Add("b/strange", errors.New("Invalid argument"))

	assert.Equal(t, 2, agg.Len())
	msg := agg.Error()
	assert.Contains(t, msg, "2 critical error(s)")
	assert.Contains(t, msg, "a/secret.txt")
	assert.Contains(t, msg, "b/strange")
}
