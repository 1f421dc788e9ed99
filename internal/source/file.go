package source

import (
	"bytes"
	"path/filepath"
	"slices"
)

type FileID uint32

// FileFlags records what AddRaw stripped from the input.
type FileFlags uint8

const (
	FileVirtual FileFlags = 1 << iota // not read from disk
	FileHadBOM
	FileNormalizedCRLF
)

// File is one loaded input. Content has no BOM and only '\n' line ends;
// Flags let Restore put the original bytes back.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	// LineIdx holds the offset of every '\n' in Content.
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a 1-based line and byte column.
type LineCol struct {
	Line uint32
	Col  uint32
}

var (
	utf8BOM = []byte{0xEF, 0xBB, 0xBF}
	crlf    = []byte("\r\n")
	lf      = []byte("\n")
)

func removeBOM(content []byte) ([]byte, bool) {
	return bytes.CutPrefix(content, utf8BOM)
}

// normalizeCRLF turns every "\r\n" into "\n". A lone '\r' is content and
// stays.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !bytes.Contains(content, crlf) {
		return content, false
	}
	return bytes.ReplaceAll(content, crlf, lf), true
}

func buildLineIndex(content []byte) []uint32 {
	idx := make([]uint32, 0, bytes.Count(content, lf))
	for off := 0; ; {
		i := bytes.IndexByte(content[off:], '\n')
		if i < 0 {
			return idx
		}
		off += i
		idx = append(idx, uint32(off)) //nolint:gosec // FileSet.Add bounds len(content)
		off++
	}
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// число '\n' строго до off и есть номер строки минус один
	n, _ := slices.BinarySearch(lineIdx, off)
	var start uint32
	if n > 0 {
		start = lineIdx[n-1] + 1
	}
	return LineCol{Line: uint32(n) + 1, Col: off - start + 1} //nolint:gosec // n <= len(lineIdx)
}

func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
