package permit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testRecord(id string) Record {
	return Record{
		PublicationID:    id,
		Canton:           CantonZH,
		ApplicantName:    "Muster AG",
		ApplicantAddress: "Bahnhofstrasse 1, 8001 Zürich",
		IsMFH:            true,
		PublicationDate:  "2024-05-01",
	}
}

func TestCSVSink_CreatesFileWithHeader(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.csv")
	sink := NewCSVSink(path, zap.NewNop())

	added, err := sink.Append([]Record{testRecord("12345")})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	header, rows, err := ReadRows(path)
	require.NoError(t, err)
	assert.Equal(t, Header(), header)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"12345", "ZH", "Muster AG", "Bahnhofstrasse 1, 8001 Zürich", "true", "2024-05-01"}, rows[0])
}

func TestCSVSink_IdempotentUnderRerun(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.csv")
	sink := NewCSVSink(path, zap.NewNop())
	batch := []Record{testRecord("a"), testRecord("b")}

	added, err := sink.Append(batch)
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	added, err = sink.Append(batch)
	require.NoError(t, err)
	assert.Equal(t, 0, added)

	_, rows, err := ReadRows(path)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestCSVSink_PreservesExistingRowOrder(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.csv")
	sink := NewCSVSink(path, zap.NewNop())

	_, err := sink.Append([]Record{testRecord("first")})
	require.NoError(t, err)
	_, err = sink.Append([]Record{testRecord("first"), testRecord("second")})
	require.NoError(t, err)

	_, rows, err := ReadRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "first", rows[0][0])
	assert.Equal(t, "second", rows[1][0])
}

func TestCSVSink_RefusesNonMFHRecords(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.csv")
	sink := NewCSVSink(path, zap.NewNop())

	rec := testRecord("efh-1")
	rec.IsMFH = false
	added, err := sink.Append([]Record{rec, testRecord("mfh-1")})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	_, rows, err := ReadRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "mfh-1", rows[0][0])
}

func TestCSVSink_DedupesWithinBatch(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.csv")
	sink := NewCSVSink(path, zap.NewNop())

	added, err := sink.Append([]Record{testRecord("dup"), testRecord("dup")})
	require.NoError(t, err)
	assert.Equal(t, 1, added)
}

func TestCSVSink_SkipsRecordsWithoutID(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.csv")
	sink := NewCSVSink(path, zap.NewNop())

	added, err := sink.Append([]Record{testRecord("")})
	require.NoError(t, err)
	assert.Equal(t, 0, added)
}

func TestCSVSink_CreatesParentDir(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", "out.csv")
	sink := NewCSVSink(path, zap.NewNop())

	_, err := sink.Append([]Record{testRecord("x")})
	require.NoError(t, err)

	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)
}

func TestParseCanton(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw    string
		want   Canton
		wantOK bool
	}{
		{raw: "ZH", want: CantonZH, wantOK: true},
		{raw: "zg", want: CantonZG, wantOK: true},
		{raw: "ZH,ZG", want: CantonZH, wantOK: true},
		{raw: "BE", wantOK: false},
		{raw: "", wantOK: false},
	}
	for _, tt := range tests {
		got, ok := ParseCanton(tt.raw)
		assert.Equal(t, tt.wantOK, ok, "ParseCanton(%q)", tt.raw)
		if ok {
			assert.Equal(t, tt.want, got, "ParseCanton(%q)", tt.raw)
		}
	}
}
