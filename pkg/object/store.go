package object

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Store is a content-addressed object store. Commits and blobs live in
// separate directories, each file named by the object's full hash, and are
// zstd compressed at rest, decompressed transparently on read.
type Store struct {
	root string
}

// NewStore creates a Store rooted at the given directory. The commits/ and
// blobs/ subdirectories are created lazily on first write.
func NewStore(root string) *Store {
	return &Store{root: root}
}

func dirForType(objType ObjectType) string {
	if objType == TypeCommit {
		return "commits"
	}
	return "blobs"
}

// objectPath returns the filesystem path an object of the given type and
// hash is stored at.
func (s *Store) objectPath(objType ObjectType, h Hash) string {
	return filepath.Join(s.root, dirForType(objType), string(h))
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// find locates h in either the commits or blobs directory, since a bare
// hash doesn't say which one it lives in.
func (s *Store) find(h Hash) (ObjectType, string, bool) {
	if p := s.objectPath(TypeCommit, h); fileExists(p) {
		return TypeCommit, p, true
	}
	if p := s.objectPath(TypeBlob, h); fileExists(p) {
		return TypeBlob, p, true
	}
	return "", "", false
}

// Has reports whether the store contains an object with the given hash.
func (s *Store) Has(h Hash) bool {
	_, _, ok := s.find(h)
	return ok
}

// Write stores an object and returns its content hash. The on-disk format
// is a zstd-compressed "type len\0content" envelope. Writes are atomic:
// data is written to a temp file and then renamed into place. Write is
// idempotent — if an object with the resulting hash already exists it is
// left untouched, giving the store its content-deduplication guarantee.
func (s *Store) Write(objType ObjectType, data []byte) (Hash, error) {
	h := HashObject(objType, data)
	dest := s.objectPath(objType, h)
	if fileExists(dest) {
		return h, nil
	}

	envelope := fmt.Sprintf("%s %d\x00", objType, len(data))
	raw := append([]byte(envelope), data...)

	compressed, err := compress(raw)
	if err != nil {
		return "", fmt.Errorf("object write: compress: %w", err)
	}

	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("object write mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("object write tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(compressed); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("object write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("object write close: %w", err)
	}

	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("object write rename: %w", err)
	}

	return h, nil
}

// Read retrieves an object by hash, returning its type and raw content.
func (s *Store) Read(h Hash) (ObjectType, []byte, error) {
	_, path, ok := s.find(h)
	if !ok {
		return "", nil, fmt.Errorf("object read %s: no such file or directory", h)
	}

	compressed, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("object read %s: %w", h, err)
	}

	raw, err := decompress(compressed)
	if err != nil {
		return "", nil, fmt.Errorf("object read %s: decompress: %w", h, err)
	}

	nulIdx := bytes.IndexByte(raw, 0)
	if nulIdx < 0 {
		return "", nil, fmt.Errorf("object read %s: invalid format (no NUL)", h)
	}
	header := string(raw[:nulIdx])
	content := raw[nulIdx+1:]

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return "", nil, fmt.Errorf("object read %s: invalid header %q", h, header)
	}
	objType := ObjectType(parts[0])
	length, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", nil, fmt.Errorf("object read %s: invalid length %q: %w", h, parts[1], err)
	}
	if len(content) != length {
		return "", nil, fmt.Errorf("object read %s: length mismatch (header=%d, actual=%d)", h, length, len(content))
	}

	return objType, content, nil
}

func compress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}

func decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(data, nil)
}

// ---------------------------------------------------------------------------
// Typed convenience methods
// ---------------------------------------------------------------------------

// WriteBlob serializes and stores a Blob.
func (s *Store) WriteBlob(b *Blob) (Hash, error) {
	return s.Write(TypeBlob, MarshalBlob(b))
}

// ReadBlob reads and deserializes a Blob.
func (s *Store) ReadBlob(h Hash) (*Blob, error) {
	objType, data, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	if objType != TypeBlob {
		return nil, fmt.Errorf("object %s: type mismatch: got %q, want %q", h, objType, TypeBlob)
	}
	return UnmarshalBlob(data)
}

// WriteCommit serializes and stores a CommitObj.
func (s *Store) WriteCommit(c *CommitObj) (Hash, error) {
	return s.Write(TypeCommit, MarshalCommit(c))
}

// ReadCommit reads and deserializes a CommitObj.
func (s *Store) ReadCommit(h Hash) (*CommitObj, error) {
	objType, data, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	if objType != TypeCommit {
		return nil, fmt.Errorf("object %s: type mismatch: got %q, want %q", h, objType, TypeCommit)
	}
	return UnmarshalCommit(data)
}

// ListCommits returns the ids of every stored commit, in no particular
// order — global-log and abbreviated-id lookup sort or filter as needed.
func (s *Store) ListCommits() ([]Hash, error) {
	dir := filepath.Join(s.root, "commits")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list commits: %w", err)
	}

	out := make([]Hash, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".tmp-") {
			continue
		}
		out = append(out, Hash(e.Name()))
	}
	return out, nil
}
