package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombineNil(t *testing.T) {
	err := New("error")
	require.Equal(t, err, Combine(err, nil))
	require.Equal(t, err, Combine(nil, err))
	require.Nil(t, Combine(nil, nil))
}

func TestCombineFlattens(t *testing.T) {
	err0 := New("error0")
	err1 := New("error1")
	err2 := New("error2")

	errs := Combine(Combine(err0, err1), err2).(Errors)
	require.Len(t, errs, 3)
	assert.Equal(t, err0, errs[0])
	assert.Equal(t, err1, errs[1])
	assert.Equal(t, err2, errs[2])
	assert.Equal(t, "error0\nerror1\nerror2", errs.Error())
}

func TestCombineDoesNotAlias(t *testing.T) {
	base := Combine(New("a"), New("b"))
	first := Combine(base, New("c")).(Errors)
	second := Combine(base, New("d")).(Errors)
	assert.Equal(t, "c", first[2].Error())
	assert.Equal(t, "d", second[2].Error())
}

func TestDefer(t *testing.T) {
	closeErr := New("close failed")
	run := func() (err error) {
		defer Defer(&err, func() error { return closeErr })
		return nil
	}
	assert.Equal(t, closeErr, run())
}

func TestWrapf(t *testing.T) {
	base := New("boom")
	err := Wrapf(base, "stage %s", "load")
	assert.Equal(t, "stage load: boom", err.Error())
	assert.True(t, Is(err, base))

	assert.Nil(t, WrapfOrNil(nil, "ignored"))
	assert.EqualError(t, Wrapf(nil, "no cause %d", 1), "no cause 1")
}
