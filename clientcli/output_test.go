package clientcli_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sagarc03/kvtodo/clientcli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFormatter(t *testing.T) {
	_, ok := clientcli.NewFormatter(true, false).(*clientcli.JSONFormatter)
	assert.True(t, ok)

	human, ok := clientcli.NewFormatter(false, true).(*clientcli.HumanFormatter)
	require.True(t, ok)
	assert.True(t, human.Quiet)
}

func TestHumanFormatter_FormatList(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, (&clientcli.HumanFormatter{}).FormatList(&buf, &clientcli.ListResult{}))
		assert.Equal(t, "No todos found\n", buf.String())
	})

	t.Run("items", func(t *testing.T) {
		var buf bytes.Buffer
		result := &clientcli.ListResult{Items: []clientcli.Todo{
			{ID: "abc", Title: "buy milk"},
			{ID: "de", Title: "walk dog"},
		}}

		require.NoError(t, (&clientcli.HumanFormatter{}).FormatList(&buf, result))

		out := buf.String()
		assert.Contains(t, out, "ID   TITLE")
		assert.Contains(t, out, "abc  buy milk")
		assert.Contains(t, out, "de   walk dog")
		assert.Contains(t, out, "2 todo(s)")
	})

	t.Run("quiet drops summary", func(t *testing.T) {
		var buf bytes.Buffer
		result := &clientcli.ListResult{Items: []clientcli.Todo{{ID: "a", Title: "t"}}}

		require.NoError(t, (&clientcli.HumanFormatter{Quiet: true}).FormatList(&buf, result))
		assert.NotContains(t, buf.String(), "todo(s)")
	})
}

func TestHumanFormatter_FormatWrite(t *testing.T) {
	var buf bytes.Buffer
	f := &clientcli.HumanFormatter{}

	require.NoError(t, f.FormatWrite(&buf, &clientcli.WriteResult{Title: "buy milk", Message: "Task created"}))
	require.NoError(t, f.FormatWrite(&buf, &clientcli.WriteResult{ID: "a", Title: "walk dog", Message: "Task updated"}))

	assert.Equal(t, "Task created\n  Title: buy milk\nTask updated: a\n  Title: walk dog\n", buf.String())

	buf.Reset()
	require.NoError(t, (&clientcli.HumanFormatter{Quiet: true}).FormatWrite(&buf, &clientcli.WriteResult{Message: "Task created"}))
	assert.Empty(t, buf.String())
}

func TestHumanFormatter_FormatDelete(t *testing.T) {
	var buf bytes.Buffer
	results := []clientcli.DeleteResult{
		{ID: "a", Deleted: true},
		{ID: "b", Err: errors.New("boom")},
	}

	require.NoError(t, (&clientcli.HumanFormatter{}).FormatDelete(&buf, results))
	assert.Equal(t, "Deleted: a\nError: b - boom\n", buf.String())

	buf.Reset()
	require.NoError(t, (&clientcli.HumanFormatter{Quiet: true}).FormatDelete(&buf, results))
	assert.Equal(t, "Error: b - boom\n", buf.String())
}

func TestHumanFormatter_FormatProfiles(t *testing.T) {
	profiles := []clientcli.Profile{
		{Name: "local", Endpoint: "http://localhost:5708"},
		{Name: "work", Endpoint: "https://todo.example.com", Prefix: "team"},
	}

	var buf bytes.Buffer
	require.NoError(t, (&clientcli.HumanFormatter{}).FormatProfileList(&buf, profiles, "work"))
	out := buf.String()
	assert.Contains(t, out, "  local ")
	assert.Contains(t, out, "* work ")
	assert.Contains(t, out, "(none)")

	buf.Reset()
	require.NoError(t, (&clientcli.HumanFormatter{}).FormatProfileShow(&buf, profiles[1], true))
	assert.Contains(t, buf.String(), "Name:     work (default)")
	assert.Contains(t, buf.String(), "Prefix:   team")
}

func TestJSONFormatter_FormatList(t *testing.T) {
	var buf bytes.Buffer
	result := &clientcli.ListResult{Items: []clientcli.Todo{{ID: "a", Title: "buy milk"}}}

	require.NoError(t, (&clientcli.JSONFormatter{}).FormatList(&buf, result))
	assert.JSONEq(t, `{"items":[{"id":"a","title":"buy milk"}]}`, buf.String())
}

func TestJSONFormatter_FormatDelete(t *testing.T) {
	var buf bytes.Buffer
	results := []clientcli.DeleteResult{
		{ID: "a", Deleted: true},
		{ID: "b", Err: errors.New("boom")},
	}

	require.NoError(t, (&clientcli.JSONFormatter{}).FormatDelete(&buf, results))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, true, got[0]["deleted"])
	assert.NotContains(t, got[0], "error")
	assert.Equal(t, "boom", got[1]["error"])
}

func TestJSONFormatter_FormatError(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&clientcli.JSONFormatter{}).FormatError(&buf, errors.New("boom")))
	assert.JSONEq(t, `{"error":"boom"}`, buf.String())
}

func TestJSONFormatter_FormatProfileList(t *testing.T) {
	var buf bytes.Buffer
	profiles := []clientcli.Profile{{Name: "local", Endpoint: "http://localhost:5708"}}

	require.NoError(t, (&clientcli.JSONFormatter{}).FormatProfileList(&buf, profiles, "local"))
	assert.JSONEq(t, `{"profiles":[{"name":"local","endpoint":"http://localhost:5708","default":true}]}`, buf.String())
}
