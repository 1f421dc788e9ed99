package source

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"os"
	"unicode/utf8"

	"fortio.org/safecast"
)

// FileSet owns the files of one run. It is not safe for concurrent use;
// the driver gives each file its own set.
type FileSet struct {
	files []File
	index map[string]FileID // latest version per normalized path
}

func NewFileSet() *FileSet {
	return &FileSet{index: make(map[string]FileID)}
}

// Add stores a file from normalized bytes, computes LineIdx and Hash, and returns a new FileID.
// It always creates a new FileID even if a file with the same path already exists.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	normalizedPath := normalizePath(path)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    normalizedPath,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	// всегда указываем на последнюю версию файла
	fileSet.index[normalizedPath] = id
	return id
}

// Load reads a file from disk, strips BOM/CRLF, and calls Add.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return fileSet.AddRaw(path, content), nil
}

// AddRaw normalizes content the same way Load does without touching the disk.
func (fileSet *FileSet) AddRaw(path string, content []byte) FileID {
	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return fileSet.Add(path, content, flags)
}

// AddVirtual adds a virtual file (stdin, test, or generated) with the FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Get returns the file metadata for the given ID.
func (fileSet *FileSet) Get(id FileID) *File {
	return &fileSet.files[id]
}

// Len returns the number of files ever added.
func (fileSet *FileSet) Len() int {
	return len(fileSet.files)
}

// GetLatest returns the latest file ID for the given path, if it exists.
func (fileSet *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fileSet.index[normalizePath(path)]
	return id, ok
}

// GetByPath возвращает *File по пути, если он был загружен в этот FileSet.
func (fileSet *FileSet) GetByPath(path string) (*File, bool) {
	if id, ok := fileSet.index[normalizePath(path)]; ok {
		return &fileSet.files[id], true
	}
	return nil, false
}

// LineCol converts a byte offset into a 1-based line/byte-column pair.
func (f *File) LineCol(off uint32) LineCol {
	return toLineCol(f.LineIdx, off)
}

// PosAt converts a byte offset into a Pos whose column counts runes.
func (f *File) PosAt(off uint32) Pos {
	lc := toLineCol(f.LineIdx, off)
	lineStart := off - (lc.Col - 1)
	end := min(off, f.size())
	return Pos{
		Line: int(lc.Line),
		Col:  utf8.RuneCount(f.Content[lineStart:end]),
	}
}

// Offset converts p back into a byte offset of Content. It fails for
// positions past the end of their line or of the file.
func (f *File) Offset(p Pos) (int, bool) {
	if !p.IsValid() || p.Line-1 > len(f.LineIdx) {
		return 0, false
	}
	off := 0
	if p.Line > 1 {
		off = int(f.LineIdx[p.Line-2]) + 1
	}
	for range p.Col {
		if off >= len(f.Content) || f.Content[off] == '\n' {
			return 0, false
		}
		_, size := utf8.DecodeRune(f.Content[off:])
		off += size
	}
	return off, true
}

// Text returns the content in [from, to), or "" when either end is not in
// the file.
func (f *File) Text(from, to Pos) string {
	start, ok := f.Offset(from)
	if !ok {
		return ""
	}
	end, ok := f.Offset(to)
	if !ok || end < start {
		return ""
	}
	return string(f.Content[start:end])
}

// GetLine возвращает строку с заданным номером (1-based) без '\n'.
// Если строка не существует, возвращает пустую строку.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	lenLineIdx, err := safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index length overflow: %w", err))
	}
	lenContent := f.size()

	var start, end uint32
	switch {
	case lineNum == 1:
		start = 0
	case lineNum-2 < lenLineIdx:
		start = f.LineIdx[lineNum-2] + 1
	default:
		return ""
	}
	if lineNum-1 < lenLineIdx {
		end = f.LineIdx[lineNum-1]
	} else {
		end = lenContent
	}
	if start >= lenContent {
		return ""
	}
	return string(f.Content[start:min(end, lenContent)])
}

// Restore re-applies the BOM and CRLF line endings that Load stripped, so
// printed output can be compared with the bytes on disk.
func (f *File) Restore(out []byte) []byte {
	if f.Flags&FileNormalizedCRLF != 0 {
		out = bytes.ReplaceAll(out, []byte("\n"), []byte("\r\n"))
	}
	if f.Flags&FileHadBOM != 0 {
		out = append([]byte{0xEF, 0xBB, 0xBF}, out...)
	}
	return out
}

func (f *File) size() uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	return n
}
