package securestore

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

const (
	recordMagic   = 0x4450 // "DP"
	recordVersion = 0x0001
	maxField      = 1 << 20 // 1 MB per sealed field
)

// encodeRecord frames a stored entry:
// [2B magic][2B version][4B len][sealed name][4B len][sealed value].
func encodeRecord(sealedName, sealedValue []byte) ([]byte, error) {
	if len(sealedName) > maxField || len(sealedValue) > maxField {
		return nil, fmt.Errorf("record field too large: name=%d value=%d max=%d",
			len(sealedName), len(sealedValue), maxField)
	}
	buf := make([]byte, 4, 4+8+len(sealedName)+len(sealedValue))
	binary.BigEndian.PutUint16(buf[0:2], recordMagic)
	binary.BigEndian.PutUint16(buf[2:4], recordVersion)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(sealedName)))
	buf = append(buf, sealedName...)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(sealedValue)))
	buf = append(buf, sealedValue...)
	return buf, nil
}

// decodeRecord validates the frame header and returns the two sealed fields.
func decodeRecord(raw []byte) (sealedName, sealedValue []byte, err error) {
	r := bytes.NewReader(raw)

	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, nil, fmt.Errorf("%w: reading header: %v", ErrCorruptRecord, err)
	}
	if magic := binary.BigEndian.Uint16(hdr[0:2]); magic != recordMagic {
		return nil, nil, fmt.Errorf("%w: invalid magic 0x%04X", ErrCorruptRecord, magic)
	}
	if version := binary.BigEndian.Uint16(hdr[2:4]); version != recordVersion {
		return nil, nil, fmt.Errorf("%w: unsupported record version %d", ErrCorruptRecord, version)
	}

	if sealedName, err = readField(r); err != nil {
		return nil, nil, err
	}
	if sealedValue, err = readField(r); err != nil {
		return nil, nil, err
	}
	if r.Len() != 0 {
		return nil, nil, fmt.Errorf("%w: %d trailing bytes", ErrCorruptRecord, r.Len())
	}
	return sealedName, sealedValue, nil
}

func readField(r *bytes.Reader) ([]byte, error) {
	var l [4]byte
	if _, err := io.ReadFull(r, l[:]); err != nil {
		return nil, fmt.Errorf("%w: reading field length: %v", ErrCorruptRecord, err)
	}
	n := binary.BigEndian.Uint32(l[:])
	if n > maxField || int(n) > r.Len() {
		return nil, fmt.Errorf("%w: field length %d out of range", ErrCorruptRecord, n)
	}
	field := make([]byte, n)
	if _, err := io.ReadFull(r, field); err != nil {
		return nil, fmt.Errorf("%w: reading field: %v", ErrCorruptRecord, err)
	}
	return field, nil
}
