package annot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// StoreSchema is bumped whenever the encoded layout changes.
const StoreSchema uint16 = 2

type storeRecord struct {
	Key AnnKey      `msgpack:"key" json:"key"`
	Ann *Annotation `msgpack:"ann" json:"ann"`
}

type storePayload struct {
	Schema  uint16        `msgpack:"schema" json:"schema"`
	Records []storeRecord `msgpack:"records" json:"records"`
}

func (s *Store) payload() storePayload {
	keys := s.Keys()
	p := storePayload{Schema: StoreSchema, Records: make([]storeRecord, 0, len(keys))}
	for _, k := range keys {
		p.Records = append(p.Records, storeRecord{Key: k, Ann: s.m[k]})
	}
	return p
}

func fromPayload(p storePayload) (*Store, error) {
	if p.Schema != StoreSchema {
		return nil, fmt.Errorf("annot: store schema %d, want %d", p.Schema, StoreSchema)
	}
	s := NewStore()
	for _, r := range p.Records {
		if r.Ann == nil {
			r.Ann = &Annotation{}
		}
		s.m[r.Key] = r.Ann
	}
	return s, nil
}

// EncodeMsgpack writes the store in its binary form.
func (s *Store) EncodeMsgpack(w io.Writer) error {
	return msgpack.NewEncoder(w).Encode(s.payload())
}

// DecodeMsgpack reads a store written by EncodeMsgpack.
func DecodeMsgpack(r io.Reader) (*Store, error) {
	var p storePayload
	if err := msgpack.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("annot: decode store: %w", err)
	}
	return fromPayload(p)
}

// MarshalBinary encodes the store with msgpack.
func (s *Store) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.EncodeMsgpack(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeJSON writes an indented, human-readable dump.
func (s *Store) EncodeJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s.payload())
}

// DecodeJSON reads a dump written by EncodeJSON.
func DecodeJSON(r io.Reader) (*Store, error) {
	var p storePayload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("annot: decode store: %w", err)
	}
	return fromPayload(p)
}
