package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyAction(t *testing.T) {
	t.Run("bare JSON envelope", func(t *testing.T) {
		env, ok := Classify(`{
			"response_type": "action",
			"action": "create_project",
			"parameters": {"name": "Todo", "min_sdk": 24, "flag": true},
			"explanation": "I'll create the project"
		}`)
		require.True(t, ok)
		assert.Equal(t, "create_project", env.Action)
		assert.Equal(t, "I'll create the project", env.Explanation)

		name, _ := env.Parameters.GetString("name")
		assert.Equal(t, "Todo", name)
		sdk, _ := env.Parameters.GetInt("min_sdk")
		assert.Equal(t, 24, sdk)
	})

	t.Run("surrounding whitespace is tolerated", func(t *testing.T) {
		_, ok := Classify("\n\n  {\"response_type\":\"action\",\"action\":\"read_file\"}  \n")
		assert.True(t, ok)
	})

	t.Run("missing parameters default to empty", func(t *testing.T) {
		env, ok := Classify(`{"response_type":"action","action":"list_files"}`)
		require.True(t, ok)
		require.NotNil(t, env.Parameters)
		assert.Empty(t, env.Parameters)
	})
}

func TestClassifyCodeFence(t *testing.T) {
	t.Run("plain fence", func(t *testing.T) {
		_, ok := Classify("```\n{\"response_type\":\"action\",\"action\":\"read_file\"}\n```")
		assert.True(t, ok)
	})

	t.Run("json fence", func(t *testing.T) {
		_, ok := Classify("```json\n{\"response_type\":\"action\",\"action\":\"read_file\"}\n```")
		assert.True(t, ok)
	})

	t.Run("other language fences stay plain text", func(t *testing.T) {
		_, ok := Classify("```python\n{\"response_type\":\"action\",\"action\":\"read_file\"}\n```")
		assert.False(t, ok)
	})
}

func TestClassifyPlainText(t *testing.T) {
	cases := []struct {
		name  string
		reply string
	}{
		{"prose", "Sure, I can help you build a todo app."},
		{"empty", ""},
		{"wrong discriminator", `{"response_type":"reply","action":"read_file"}`},
		{"missing discriminator", `{"action":"read_file"}`},
		{"empty action name", `{"response_type":"action","action":""}`},
		{"json embedded in prose", `Here is what I'd do: {"response_type":"action","action":"delete_file"} - sound good?`},
		{"trailing prose after object", `{"response_type":"action","action":"delete_file"} trust me`},
		{"two objects", `{"response_type":"action","action":"a"}{"response_type":"action","action":"b"}`},
		{"json array", `[{"response_type":"action","action":"read_file"}]`},
		{"malformed json", `{"response_type":"action","action":`},
		{"object-valued parameter", `{"response_type":"action","action":"edit_file","parameters":{"nested":{"a":1}}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env, ok := Classify(tc.reply)
			assert.False(t, ok)
			assert.Nil(t, env)
		})
	}
}

func TestClassifyNeverPartial(t *testing.T) {
	// An envelope with a bad parameter must not come back as a truncated
	// action; it degrades to plain text entirely.
	env, ok := Classify(`{"response_type":"action","action":"edit_file","parameters":{"path":"a","opts":["x"]}}`)
	assert.False(t, ok)
	assert.Nil(t, env)
}
