package mastodon

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParams(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	{
		input := map[string]any{
			"int":     int(-1),
			"uint32":  uint32(32),
			"str":     "hello",
			"empty":   "",
			"nothing": nil,
			"bool":    true,
			"types":   []NotificationType{NotificationFollow, NotificationPoll},
			"multi":   []int{1, 2},
		}
		expect := url.Values(map[string][]string{
			"int":     []string{"-1"},
			"uint32":  []string{"32"},
			"str":     []string{"hello"},
			"bool":    []string{"true"},
			"types[]": []string{"follow", "poll"},
			"multi[]": []string{"1", "2"},
		})
		output, err := ParseParams(input)
		require.NoError(err)
		assert.Equal(expect, output)
	}

	{
		// unsupported type
		input := map[string]any{
			"map": map[string]int{"a": 123},
		}
		_, err := ParseParams(input)
		assert.Error(err)
	}

	{
		input := map[string]any{
			"nested": []map[string]int{{"a": 1}},
		}
		_, err := ParseParams(input)
		assert.Error(err)
	}
}
