// Package securestore is an encrypted, named key/value container over a
// bucketed store. It natively holds only strings, 32-bit ints, booleans,
// single-precision floats and 64-bit ints; richer kinds are encoded by callers.
//
// Preference names are mapped to bucket keys with a keyed MAC, and each record
// carries the name and value sealed under the container's keyset. The keyset
// itself is stored wrapped to the master key.
package securestore

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/anypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	mcrypto "dprefs/internal/crypto"
	"dprefs/internal/logging"
	"dprefs/internal/masterkey"
	"dprefs/internal/store"
)

var (
	ErrKindMismatch   = errors.New("stored value has a different kind")
	ErrWrongMasterKey = errors.New("store was created with a different master key")
	ErrCorruptRecord  = errors.New("corrupt preference record")
	ErrClosed         = errors.New("secure store is closed")
)

var logger = logging.For("securestore")

// Store is one named container. It is safe for concurrent use; each call
// commits independently in the underlying store.
type Store struct {
	st     store.Store
	name   string
	bucket []byte
	id     uuid.UUID
	keys   *mcrypto.Keyset
	closed atomic.Bool
}

// Open binds the container called name inside st, creating its keyset on
// first use. Open takes ownership of st: Close closes it.
func Open(st store.Store, name string, mk *masterkey.MasterKey) (*Store, error) {
	if name == "" {
		return nil, fmt.Errorf("container name is required")
	}
	if mk == nil {
		return nil, fmt.Errorf("master key is required")
	}
	dh, err := mcrypto.MasterDHKey(mk)
	if err != nil {
		return nil, err
	}

	raw, err := st.Get(metaBucket, []byte(name))
	if err != nil {
		return nil, fmt.Errorf("reading meta: %w", err)
	}

	var m meta
	var ks *mcrypto.Keyset
	if raw == nil {
		if ks, err = mcrypto.NewKeyset(); err != nil {
			return nil, err
		}
		wrapped, err := mcrypto.Wrap(dh.Public, ks.Bytes())
		if err != nil {
			return nil, fmt.Errorf("wrapping keyset: %w", err)
		}
		m = meta{StoreID: uuid.New(), KeyID: mk.KeyID, Wrapped: wrapped, CreatedAt: time.Now()}
		enc, err := m.marshal()
		if err != nil {
			return nil, err
		}
		if err := st.Set(metaBucket, []byte(name), enc); err != nil {
			return nil, fmt.Errorf("writing meta: %w", err)
		}
		logger.Info("created preference store", "name", name, "store_id", m.StoreID, "key_id", mk.KeyID)
	} else {
		if m, err = unmarshalMeta(raw); err != nil {
			return nil, err
		}
		if m.KeyID != mk.KeyID {
			return nil, fmt.Errorf("%w: store key %s, supplied %s", ErrWrongMasterKey, m.KeyID, mk.KeyID)
		}
		secret, err := mcrypto.Unwrap(dh, m.Wrapped)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrWrongMasterKey, err)
		}
		if ks, err = mcrypto.ParseKeyset(secret); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
		}
		logger.Debug("opened preference store", "name", name, "store_id", m.StoreID)
	}

	return &Store{
		st:     st,
		name:   name,
		bucket: []byte("prefs/" + name),
		id:     m.StoreID,
		keys:   ks,
	}, nil
}

// Name returns the container name.
func (s *Store) Name() string { return s.name }

// ID returns the container's stable identifier, assigned at creation.
func (s *Store) ID() uuid.UUID { return s.id }

func (s *Store) PutString(name, v string) error        { return s.put(name, wrapperspb.String(v)) }
func (s *Store) PutInt(name string, v int32) error     { return s.put(name, wrapperspb.Int32(v)) }
func (s *Store) PutBool(name string, v bool) error     { return s.put(name, wrapperspb.Bool(v)) }
func (s *Store) PutFloat(name string, v float32) error { return s.put(name, wrapperspb.Float(v)) }
func (s *Store) PutLong(name string, v int64) error    { return s.put(name, wrapperspb.Int64(v)) }

// GetString returns the string stored under name. ok is false when absent.
func (s *Store) GetString(name string) (string, bool, error) {
	var v wrapperspb.StringValue
	ok, err := s.get(name, &v)
	return v.GetValue(), ok, err
}

func (s *Store) GetInt(name string) (int32, bool, error) {
	var v wrapperspb.Int32Value
	ok, err := s.get(name, &v)
	return v.GetValue(), ok, err
}

func (s *Store) GetBool(name string) (bool, bool, error) {
	var v wrapperspb.BoolValue
	ok, err := s.get(name, &v)
	return v.GetValue(), ok, err
}

func (s *Store) GetFloat(name string) (float32, bool, error) {
	var v wrapperspb.FloatValue
	ok, err := s.get(name, &v)
	return v.GetValue(), ok, err
}

func (s *Store) GetLong(name string) (int64, bool, error) {
	var v wrapperspb.Int64Value
	ok, err := s.get(name, &v)
	return v.GetValue(), ok, err
}

// Contains reports whether any value, of any kind, is stored under name.
func (s *Store) Contains(name string) (bool, error) {
	if s.closed.Load() {
		return false, ErrClosed
	}
	return s.st.Has(s.bucket, s.keys.LookupKey(name))
}

// Remove deletes name. Removing an absent name is not an error.
func (s *Store) Remove(name string) error {
	if s.closed.Load() {
		return ErrClosed
	}
	return s.st.Delete(s.bucket, s.keys.LookupKey(name))
}

// Clear deletes every entry in the container in one transaction.
// The keyset and container identity survive.
func (s *Store) Clear() error {
	if s.closed.Load() {
		return ErrClosed
	}
	return s.st.Clear(s.bucket)
}

// Keys returns the stored preference names in sorted order. Records that
// fail to decrypt are logged and skipped.
func (s *Store) Keys() ([]string, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	var names []string
	err := s.st.ForEach(s.bucket, func(k, raw []byte) error {
		sealedName, _, err := decodeRecord(raw)
		if err != nil {
			logger.Warn("skipping corrupt record", "err", err)
			return nil
		}
		name, err := s.keys.Open(sealedName, nameAD(k))
		if err != nil || !bytes.Equal(s.keys.LookupKey(string(name)), k) {
			logger.Warn("skipping record with unreadable name", "err", err)
			return nil
		}
		names = append(names, string(name))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Close closes the underlying store. Further calls return ErrClosed.
func (s *Store) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.st.Close()
}

func (s *Store) put(name string, msg proto.Message) error {
	if s.closed.Load() {
		return ErrClosed
	}
	lookup := s.keys.LookupKey(name)

	packed, err := anypb.New(msg)
	if err != nil {
		return fmt.Errorf("packing value: %w", err)
	}
	plain, err := proto.Marshal(packed)
	if err != nil {
		return fmt.Errorf("marshaling value: %w", err)
	}
	sealedValue, err := s.keys.Seal(plain, valueAD(lookup))
	if err != nil {
		return err
	}
	sealedName, err := s.keys.Seal([]byte(name), nameAD(lookup))
	if err != nil {
		return err
	}
	rec, err := encodeRecord(sealedName, sealedValue)
	if err != nil {
		return err
	}
	if err := s.st.Set(s.bucket, lookup, rec); err != nil {
		return fmt.Errorf("writing %q: %w", name, err)
	}
	return nil
}

func (s *Store) get(name string, dst proto.Message) (bool, error) {
	if s.closed.Load() {
		return false, ErrClosed
	}
	lookup := s.keys.LookupKey(name)
	raw, err := s.st.Get(s.bucket, lookup)
	if err != nil {
		return false, fmt.Errorf("reading %q: %w", name, err)
	}
	if raw == nil {
		return false, nil
	}

	_, sealedValue, err := decodeRecord(raw)
	if err != nil {
		return false, fmt.Errorf("%q: %w", name, err)
	}
	plain, err := s.keys.Open(sealedValue, valueAD(lookup))
	if err != nil {
		return false, fmt.Errorf("%w: %q: %v", ErrCorruptRecord, name, err)
	}
	var packed anypb.Any
	if err := proto.Unmarshal(plain, &packed); err != nil {
		return false, fmt.Errorf("%w: %q: %v", ErrCorruptRecord, name, err)
	}
	if !packed.MessageIs(dst) {
		return false, fmt.Errorf("%w: %q holds %s, read as %s",
			ErrKindMismatch, name, kindOf(packed.MessageName()), kindOf(dst.ProtoReflect().Descriptor().FullName()))
	}
	if err := packed.UnmarshalTo(dst); err != nil {
		return false, fmt.Errorf("%w: %q: %v", ErrCorruptRecord, name, err)
	}
	return true, nil
}

func nameAD(lookup []byte) []byte  { return append(append([]byte{}, lookup...), 'n') }
func valueAD(lookup []byte) []byte { return append(append([]byte{}, lookup...), 'v') }
