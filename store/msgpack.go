package store

import (
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

func EncodeMsgpack(w io.Writer, snap *Snapshot) error {
	enc := msgpack.NewEncoder(w)
	return enc.Encode(snap)
}

// DecodeMsgpack reads a snapshot and checks its checksum.
func DecodeMsgpack(r io.Reader) (*Snapshot, error) {
	var (
		snap Snapshot
		dec  = msgpack.NewDecoder(r)
	)
	if err := dec.Decode(&snap); err != nil {
		return nil, err
	}
	if err := snap.Verify(); err != nil {
		return nil, err
	}
	return &snap, nil
}

func ReadFile(file string) (*Snapshot, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return DecodeMsgpack(r)
}

func WriteFile(file string, snap *Snapshot) error {
	w, err := os.Create(file)
	if err != nil {
		return err
	}
	if err := EncodeMsgpack(w, snap); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
