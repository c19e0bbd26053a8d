package output

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grailbio/bide/seq"
	"github.com/grailbio/testutil"
)

func TestFileSinkWritesPlainText(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := filepath.Join(dir, "out.txt")

	s, err := NewFileSink(path)
	require.NoError(t, err)

	p := pattern([]int32{0, 1}, seq.Itemset{1})
	require.NoError(t, s.Emit(p))
	require.NoError(t, s.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "1 -1  #SUP: 2\n", string(data))
	require.NotZero(t, s.Checksum())
}

func TestFileSinkGzipsSuffixedDestination(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt.gz")

	s, err := NewFileSink(path)
	require.NoError(t, err)

	p := pattern([]int32{0}, seq.Itemset{1})
	require.NoError(t, s.Emit(p))
	require.NoError(t, s.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	gr, err := gzip.NewReader(f)
	require.NoError(t, err)
	defer gr.Close()

	buf := make([]byte, 256)
	n, _ := gr.Read(buf)
	require.Equal(t, "1 -1  #SUP: 1\n", string(buf[:n]))
}

func TestFileSinkCloseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	s, err := NewFileSink(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
}
