package archive

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StWron/customnode4portfolio/pkg/pipeline"
)

func testRecord(ts string) *pipeline.MasterRecord {
	return &pipeline.MasterRecord{
		ProjectInfo: pipeline.ProjectInfo{
			Name:      "DEMO",
			Root:      "/assets/DEMO",
			Timestamp: ts,
		},
		Settings: map[string]pipeline.CategoryRecord{
			pipeline.CategoryBackground: {"prompt": "sunset"},
		},
	}
}

func TestWriterWrite(t *testing.T) {
	root := t.TempDir()
	w := NewWriter(root)

	fileName, err := w.Write(testRecord("20260101_120000"))
	require.NoError(t, err)
	assert.Equal(t, "20260101_120000_DEMO.json", fileName)

	// Dump exists and round-trips.
	rec, meta, err := Read(filepath.Join(root, DictionaryDirName, fileName))
	require.NoError(t, err)
	assert.Nil(t, meta)
	assert.Equal(t, "DEMO", rec.ProjectInfo.Name)
	assert.Equal(t, "sunset", rec.Settings[pipeline.CategoryBackground]["prompt"])

	// Index has exactly one matching line.
	data, err := os.ReadFile(filepath.Join(root, IndexFileName))
	require.NoError(t, err)
	assert.Equal(t, "[20260101_120000] PROJ: DEMO | FILE: 20260101_120000_DEMO.json\n", string(data))
}

func TestWriterAppendIsMonotonic(t *testing.T) {
	root := t.TempDir()
	w := NewWriter(root)

	const runs = 5
	for i := 0; i < runs; i++ {
		_, err := w.Write(testRecord(fmt.Sprintf("20260101_12000%d", i)))
		require.NoError(t, err)
	}

	data, err := os.ReadFile(filepath.Join(root, IndexFileName))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	assert.Len(t, lines, runs)

	files, err := os.ReadDir(filepath.Join(root, DictionaryDirName))
	require.NoError(t, err)
	assert.Len(t, files, runs)
}

func TestWriterRejectsInvalidRecord(t *testing.T) {
	w := NewWriter(t.TempDir())
	_, err := w.Write(&pipeline.MasterRecord{})
	assert.Error(t, err)
}

func TestRead(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, _, err := Read(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("enveloped archive", func(t *testing.T) {
		rec := testRecord("20260101_120000")
		sum, err := pipeline.Checksum(rec)
		require.NoError(t, err)
		env := pipeline.Envelope{
			Metadata: pipeline.Metadata{Channel: "MASTER_CH", Checksum: sum},
			Payload:  rec,
		}
		data, err := json.Marshal(env)
		require.NoError(t, err)

		path := filepath.Join(t.TempDir(), "env.json")
		require.NoError(t, os.WriteFile(path, data, 0o644))

		got, meta, err := Read(path)
		require.NoError(t, err)
		require.NotNil(t, meta)
		assert.Equal(t, sum, meta.Checksum)
		assert.Equal(t, "DEMO", got.ProjectInfo.Name)
	})
}

func TestList(t *testing.T) {
	t.Run("missing index yields empty list", func(t *testing.T) {
		entries, err := List(t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("parses entries and skips malformed lines", func(t *testing.T) {
		root := t.TempDir()
		index := "[20260101_120000] PROJ: DEMO | FILE: a.json\n" +
			"not an index line\n" +
			"[20260102_090000] PROJ: OTHER | FILE: b.json\n"
		require.NoError(t, os.WriteFile(filepath.Join(root, IndexFileName), []byte(index), 0o644))

		entries, err := List(root)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, Entry{Timestamp: "20260101_120000", Project: "DEMO", File: "a.json"}, entries[0])
		assert.Equal(t, Entry{Timestamp: "20260102_090000", Project: "OTHER", File: "b.json"}, entries[1])
	})
}

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	n := FormatTable(&buf, []Entry{{Timestamp: "20260101_120000", Project: "DEMO", File: "a.json"}}, "/archive")
	assert.Equal(t, 1, n)
	assert.Contains(t, buf.String(), "DEMO")
	assert.Contains(t, buf.String(), "1 run archived")

	buf.Reset()
	n = FormatTable(&buf, nil, "/archive")
	assert.Equal(t, 0, n)
	assert.Contains(t, buf.String(), "No archived runs")
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	err := FormatJSON(&buf, []Entry{{Timestamp: "t", Project: "p", File: "f"}})
	require.NoError(t, err)

	var decoded []Entry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "p", decoded[0].Project)
}
