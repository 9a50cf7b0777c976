package logging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLimited_AdmitsThenSuppresses(t *testing.T) {
	l := New(zap.NewNop())

	assert.True(t, l.Limited("k", 50))
	assert.False(t, l.Limited("k", 50), "second call inside the window is suppressed")
	assert.True(t, l.Limited("other", 50), "keys are limited independently")

	time.Sleep(60 * time.Millisecond)
	assert.True(t, l.Limited("k", 50), "admits again once the window passes")
}

func TestLimited_NonPositiveAlwaysAdmits(t *testing.T) {
	l := New(zap.NewNop())
	for i := 0; i < 5; i++ {
		assert.True(t, l.Limited("k", 0))
	}
}

func TestLogger_ForwardsToZap(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := New(zap.New(core))

	l.Infof("hello %d", 42)
	l.Warnf("watch out")

	entries := logs.All()
	assert.Len(t, entries, 2)
	assert.Equal(t, "hello 42", entries[0].Message)
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
}

func TestDefault_NeverNil(t *testing.T) {
	assert.NotNil(t, Default())

	l := New(zap.NewNop())
	SetDefault(l)
	assert.Same(t, l, Default())
}
