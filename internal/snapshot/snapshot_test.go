package snapshot

import (
	"bytes"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/treedit/internal/model"
)

func sample() []model.Node {
	return []model.Node{{
		ID: 1, Title: "Root", Expanded: true,
		Children: []model.Node{
			{ID: 2, Title: "A", Expanded: false, Children: []model.Node{
				{ID: 3, Title: "B", Expanded: true, Children: []model.Node{}},
			}},
			{ID: 4, Title: "C", Expanded: true, Children: []model.Node{}},
		},
	}}
}

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"text", "JSON", " yaml ", "table"} {
		_, err := ParseFormat(in)
		assert.NoError(t, err, in)
	}
	_, err := ParseFormat("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "text, json, yaml, table")
}

func TestWrite_JSONUsesWidgetFieldNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, JSON, sample()))

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	require.Len(t, raw, 1)
	assert.Equal(t, "Root", raw[0]["title"])
	assert.Equal(t, true, raw[0]["isExpanded"])
	children, ok := raw[0]["children"].([]any)
	require.True(t, ok)
	assert.Len(t, children, 2)
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, YAML, sample()))

	var got []model.Node
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0].Children[0].Children[0].Title)
	assert.False(t, got[0].Children[0].Expanded)
}

func TestWrite_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Text, sample()))

	want := strings.Join([]string{
		"v Root [1]",
		"  + A [2]",
		"    - B [3]",
		"  - C [4]",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestWrite_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Table, sample()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "TITLE")
	assert.Contains(t, lines[2], "collapsed")
	assert.Equal(t, []string{"3", "2", "expanded", "B"}, strings.Fields(lines[3]))
}

func TestWrite_UnknownFormat(t *testing.T) {
	assert.Error(t, Write(&bytes.Buffer{}, Format("xml"), sample()))
}
