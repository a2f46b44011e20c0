package caltab

import "fmt"

// Kind is the semantic type of a constant binding, matching the widths the
// consuming firmware declares.
type Kind uint8

// Binding kinds.
const (
	KindInvalid Kind = iota
	U8
	U16
	U32
	I16
	I32
	F32
	Bool
)

var kindNames = map[Kind]string{
	U8:   "u8",
	U16:  "u16",
	U32:  "u32",
	I16:  "i16",
	I32:  "i32",
	F32:  "f32",
	Bool: "bool",
}

var kindCTypes = map[Kind]string{
	U8:   "UINT8",
	U16:  "UINT16",
	U32:  "UINT32",
	I16:  "INT16",
	I32:  "INT32",
	F32:  "FLOAT32",
	Bool: "BOOL",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// CType returns the platform type name used in emitted C source.
func (k Kind) CType() string {
	if s, ok := kindCTypes[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// ParseKind parses a kind name as written in dataset documents.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return KindInvalid, fmt.Errorf("unknown binding type %q", s)
}

// Integer reports whether the kind is a fixed-width integer.
func (k Kind) Integer() bool {
	switch k {
	case U8, U16, U32, I16, I32:
		return true
	}
	return false
}

// bounds returns the inclusive value range of an integer kind.
func (k Kind) bounds() (min, max float64) {
	switch k {
	case U8:
		return 0, 1<<8 - 1
	case U16:
		return 0, 1<<16 - 1
	case U32:
		return 0, 1<<32 - 1
	case I16:
		return -(1 << 15), 1<<15 - 1
	case I32:
		return -(1 << 31), 1<<31 - 1
	}
	return 0, 0
}
