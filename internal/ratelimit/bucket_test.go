package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketAdmitsUpToCapacityThenRejects(t *testing.T) {
	now := time.Now()
	b := NewBucket(5, now)
	for i := 0; i < 5; i++ {
		res := b.Check(now)
		require.True(t, res.Admitted, "request %d should be admitted", i)
	}
	res := b.Check(now)
	assert.False(t, res.Admitted)
	assert.Greater(t, res.RetryAfter, time.Duration(0))
}

func TestBucketRefillsOverTime(t *testing.T) {
	now := time.Now()
	b := NewBucket(60, now) // 1 token/sec
	for i := 0; i < 60; i++ {
		require.True(t, b.Check(now).Admitted)
	}
	require.False(t, b.Check(now).Admitted)

	later := now.Add(2 * time.Second)
	res := b.Check(later)
	assert.True(t, res.Admitted)
}

func TestBucketNeverExceedsCapacity(t *testing.T) {
	now := time.Now()
	b := NewBucket(10, now)
	later := now.Add(time.Hour)
	res := b.Check(later)
	assert.True(t, res.Admitted)
	assert.LessOrEqual(t, res.Remaining, 10)
}

func TestLimiterTwoTierAdmission(t *testing.T) {
	l := New(1, 1000)
	now := time.Now()
	l.nowFunc = func() time.Time { return now }

	first := l.CheckGlobal()
	assert.True(t, first.Admitted)

	second := l.CheckGlobal()
	assert.False(t, second.Admitted, "global bucket of 1 rejects the second request")
	assert.True(t, l.CheckKey("key-a").Admitted, "the per-key bucket still has room")
}

func TestLimiterPerKeyBucketsAreIndependent(t *testing.T) {
	l := New(1000, 1)
	now := time.Now()
	l.nowFunc = func() time.Time { return now }

	assert.True(t, l.CheckKey("key-a").Admitted)
	assert.False(t, l.CheckKey("key-a").Admitted)
	assert.True(t, l.CheckKey("key-b").Admitted, "a different key has its own bucket")
}
