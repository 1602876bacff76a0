package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoverToError(t *testing.T) {
	t.Run("panic becomes a clean error", func(t *testing.T) {
		err := func() (err error) {
			defer recoverToError(&err)
			panic("no builder for node")
		}()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "a critical internal error occurred")
		assert.Contains(t, err.Error(), "no builder for node")
	})

	t.Run("no panic leaves the result untouched", func(t *testing.T) {
		err := func() (err error) {
			defer recoverToError(&err)
			return nil
		}()
		assert.NoError(t, err)
	})
}
