// Package save serializes game state to a compressed, checksummed
// container: canonical JSON compressed with lz4, preceded by a fixed
// header carrying a blake3 digest of the raw JSON.
package save

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pierrec/lz4/v4"
	"lukechampine.com/blake3"

	"github.com/nebula4x/simcore/state"
)

// magic identifies the container format
var magic = [4]byte{'N', '4', 'X', 'S'}

// FormatVersion is the container version, separate from the state's own
// SaveVersion
const FormatVersion uint32 = 1

// header precedes the lz4 frame
type header struct {
	Magic       [4]byte
	Version     uint32
	RawLen      uint64
	Blake3Sum   [32]byte
	PayloadSize uint64
}

// Marshal renders the state as indented JSON
func Marshal(st *state.GameState) ([]byte, error) {
	return json.MarshalIndent(st, "", "  ")
}

// Unmarshal parses JSON into a fresh state with all maps initialized
func Unmarshal(data []byte) (*state.GameState, error) {
	st := state.NewGameState()
	if err := json.Unmarshal(data, st); err != nil {
		return nil, fmt.Errorf("parse save: %w", err)
	}
	st.EnsureMaps()
	return st, nil
}

// Encode writes the compressed container to w
func Encode(st *state.GameState, w io.Writer) error {
	raw, err := Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal save: %w", err)
	}

	var compressed bytes.Buffer
	zw := lz4.NewWriter(&compressed)
	if _, err := zw.Write(raw); err != nil {
		return fmt.Errorf("compress save: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("compress save: %w", err)
	}

	h := header{
		Magic:       magic,
		Version:     FormatVersion,
		RawLen:      uint64(len(raw)),
		Blake3Sum:   blake3.Sum256(raw),
		PayloadSize: uint64(compressed.Len()),
	}
	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return fmt.Errorf("write save header: %w", err)
	}
	if _, err := w.Write(compressed.Bytes()); err != nil {
		return fmt.Errorf("write save payload: %w", err)
	}
	return nil
}

// Decode reads a container, verifies its digest and returns the state
func Decode(r io.Reader) (*state.GameState, error) {
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("read save header: %w", err)
	}
	if h.Magic != magic {
		return nil, fmt.Errorf("not a save file")
	}
	if h.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported save format version %d", h.Version)
	}

	payload := make([]byte, h.PayloadSize)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("read save payload: %w", err)
	}

	raw := make([]byte, 0, h.RawLen)
	buf := bytes.NewBuffer(raw)
	if _, err := io.Copy(buf, lz4.NewReader(bytes.NewReader(payload))); err != nil {
		return nil, fmt.Errorf("decompress save: %w", err)
	}
	raw = buf.Bytes()
	if uint64(len(raw)) != h.RawLen {
		return nil, fmt.Errorf("save payload truncated")
	}
	if blake3.Sum256(raw) != h.Blake3Sum {
		return nil, fmt.Errorf("save digest mismatch")
	}
	return Unmarshal(raw)
}

// WriteFile encodes to path atomically via a temp file rename
func WriteFile(path string, st *state.GameState) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := Encode(st, f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// ReadFile decodes a container from disk
func ReadFile(path string) (*state.GameState, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}
