package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	for in, want := range map[string]Filter{
		"":            FilterAll,
		"all":         FilterAll,
		"completed":   FilterCompleted,
		"uncompleted": FilterUncompleted,
	} {
		got, err := ParseFilter(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFilter("done")
	assert.Error(t, err)
}

func TestFilterMatches(t *testing.T) {
	open := Task{ID: 1, Title: "open"}
	done := Task{ID: 2, Title: "done", Completed: true}

	assert.True(t, FilterAll.Matches(open))
	assert.True(t, FilterAll.Matches(done))
	assert.True(t, FilterCompleted.Matches(done))
	assert.False(t, FilterCompleted.Matches(open))
	assert.True(t, FilterUncompleted.Matches(open))
	assert.False(t, FilterUncompleted.Matches(done))
}

func TestParseCompletedQuery(t *testing.T) {
	require.NotNil(t, ParseCompletedQuery("true"))
	assert.True(t, *ParseCompletedQuery("true"))
	require.NotNil(t, ParseCompletedQuery("false"))
	assert.False(t, *ParseCompletedQuery("false"))

	for _, v := range []string{"", "TRUE", "1", "yes", "false "} {
		assert.Nil(t, ParseCompletedQuery(v), v)
	}
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "all", CacheKey(nil))
	assert.Equal(t, "true", CacheKey(FilterCompleted.Completed()))
	assert.Equal(t, "false", CacheKey(FilterUncompleted.Completed()))
}

func TestStatsTotal(t *testing.T) {
	assert.Equal(t, int64(5), Stats{Completed: 2, Uncompleted: 3}.Total())
}
