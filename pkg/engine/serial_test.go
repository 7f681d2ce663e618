package engine

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSerOut(t *testing.T) {
	for in, want := range map[string]SerOut{
		"None": SerOutNone,
		"none": SerOutNone,
		"All":  SerOutAll,
		" ALL": SerOutAll,
	} {
		got, err := ParseSerOut(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseSerOut("USB")
	assert.Error(t, err)
	assert.Equal(t, "None", SerOutNone.String())
	assert.Equal(t, "All", SerOutAll.String())
}

func TestSerialOutDefaultsToDropping(t *testing.T) {
	s := NewSerialOut(SerOutNone)
	var got []string
	s.Subscribe(func(line string) error {
		got = append(got, line)
		return nil
	})

	require.NoError(t, s.SendSerial("DONE frame 0"))
	assert.Empty(t, got)
	assert.Equal(t, uint64(0), s.Sent())
	assert.Equal(t, uint64(1), s.Dropped())
}

func TestSerialOutFansOut(t *testing.T) {
	s := NewSerialOut(SerOutAll)
	var a, b bytes.Buffer
	s.Subscribe(LineWriter(&a))
	s.Subscribe(LineWriter(&b))

	require.NoError(t, s.SendSerial("DONE frame 0"))
	require.NoError(t, s.SendSerial("DONE frame 1"))

	assert.Equal(t, "DONE frame 0\nDONE frame 1\n", a.String())
	assert.Equal(t, a.String(), b.String())
	assert.Equal(t, uint64(2), s.Sent())
}

func TestSerialOutModeSwitch(t *testing.T) {
	s := NewSerialOut(SerOutNone)
	var buf bytes.Buffer
	s.Subscribe(LineWriter(&buf))

	require.NoError(t, s.SendSerial("first"))
	s.SetMode(SerOutAll)
	assert.Equal(t, SerOutAll, s.Mode())
	require.NoError(t, s.SendSerial("second"))

	assert.Equal(t, "second\n", buf.String())
}

func TestSerialOutSubscriberError(t *testing.T) {
	s := NewSerialOut(SerOutAll)
	boom := errors.New("port closed")
	s.Subscribe(func(string) error { return boom })

	err := s.SendSerial("x")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, uint64(0), s.Sent())
}
