package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a source file.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	Hash    [32]byte
	Flags   FileFlags
}

// LoadNormalized reports whether loading already rewrote the on-disk bytes
// (BOM stripped or CRLF collapsed). Such files must be written back even when
// the style passes change nothing.
func (f *File) LoadNormalized() bool {
	return f.Flags&(FileHadBOM|FileNormalizedCRLF) != 0
}
