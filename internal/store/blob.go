package store

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"

	"github.com/lox/potsim/internal/fileutil"
	"github.com/lox/potsim/internal/statistics"
)

const blobVersion = 1

// ErrUnsupportedVersion is returned for blobs written by an unknown format version.
var ErrUnsupportedVersion = errors.New("unsupported result blob version")

type blobEnvelope struct {
	Version   int                   `cbor:"version"`
	Aggregate *statistics.Aggregate `cbor:"aggregate"`
}

var encMode = mustEncMode()

func mustEncMode() cbor.EncMode {
	em, err := cbor.EncOptions{
		Sort: cbor.SortCanonical,
		Time: cbor.TimeRFC3339Nano,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("store: cbor encoder options: %v", err))
	}
	return em
}

// Encode writes agg as a versioned CBOR document.
func Encode(w io.Writer, agg *statistics.Aggregate) error {
	if agg == nil {
		return errors.New("aggregate cannot be nil")
	}
	if err := encMode.NewEncoder(w).Encode(blobEnvelope{Version: blobVersion, Aggregate: agg}); err != nil {
		return fmt.Errorf("encode aggregate: %w", err)
	}
	return nil
}

// Decode reads a document written by Encode and validates it.
func Decode(r io.Reader) (*statistics.Aggregate, error) {
	var env blobEnvelope
	if err := cbor.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode aggregate: %w", err)
	}
	if env.Version != blobVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.Version)
	}
	if env.Aggregate == nil {
		return nil, errors.New("result blob has no aggregate")
	}
	if err := env.Aggregate.Validate(); err != nil {
		return nil, fmt.Errorf("result blob invalid: %w", err)
	}
	return env.Aggregate, nil
}

// SaveBlob atomically writes agg to path, creating parent directories.
func SaveBlob(path string, agg *statistics.Aggregate) error {
	return fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return Encode(w, agg)
	})
}

// LoadBlob reads an aggregate saved with SaveBlob.
func LoadBlob(path string) (*statistics.Aggregate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f)
}
