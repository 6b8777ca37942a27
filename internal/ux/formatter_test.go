package ux

import (
	"bytes"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type taskSummary struct {
	Total     int `json:"total" yaml:"total"`
	Completed int `json:"completed" yaml:"completed"`
	Pending   int `json:"pending" yaml:"pending"`
}

func (s taskSummary) RenderText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Total: %d\nCompleted: %d\nPending: %d\n", s.Total, s.Completed, s.Pending)
	return err
}

func TestNewFormatter(t *testing.T) {
	for _, format := range []string{"text", "json", "yaml", ""} {
		f, err := NewFormatter(format, nil)
		require.NoError(t, err, format)
		assert.NotNil(t, f)
	}

	_, err := NewFormatter("xml", nil)
	assert.ErrorContains(t, err, "unknown format")
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f, err := NewFormatter("json", &FormatterOptions{Writer: &buf})
	require.NoError(t, err)

	require.NoError(t, f.Format(taskSummary{Total: 24, Completed: 12, Pending: 12}))
	assert.Contains(t, buf.String(), `"total": 24`)
}

func TestJSONFormatterCompact(t *testing.T) {
	var buf bytes.Buffer
	f, err := NewFormatter("json", &FormatterOptions{Writer: &buf, Compact: true})
	require.NoError(t, err)

	require.NoError(t, f.Format(taskSummary{Total: 1}))
	assert.Equal(t, `{"total":1,"completed":0,"pending":0}`+"\n", buf.String())
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	f, err := NewFormatter("yaml", &FormatterOptions{Writer: &buf})
	require.NoError(t, err)

	require.NoError(t, f.Format(taskSummary{Total: 24}))
	assert.Contains(t, buf.String(), "total: 24")
}

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	f, err := NewFormatter("text", &FormatterOptions{Writer: &buf})
	require.NoError(t, err)

	require.NoError(t, f.Format("logged out"))
	assert.Equal(t, "logged out\n", buf.String())

	buf.Reset()
	require.NoError(t, f.Format(taskSummary{Total: 3, Completed: 1, Pending: 2}))
	assert.Contains(t, buf.String(), "Pending: 2")

	assert.Error(t, f.Format(struct{ X int }{1}))
}
