package values

import "fmt"

// Kind discriminates the variant stored in a Value.
type Kind int

const (
	NullKind Kind = iota
	BoolKind
	LongKind
	DoubleKind
	StringKind
	BytesKind
	DateKind
	TimeKind
	RefKind
	SetRefKind
	ArrayKind
	ObjectKind
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		NullKind:   "Null",
		BoolKind:   "Bool",
		LongKind:   "Long",
		DoubleKind: "Double",
		StringKind: "String",
		BytesKind:  "Bytes",
		DateKind:   "Date",
		TimeKind:   "Time",
		RefKind:    "Ref",
		SetRefKind: "SetRef",
		ArrayKind:  "Array",
		ObjectKind: "Object",
	}[k]
	if !ok {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return s
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	kk, ok := map[string]Kind{
		"Null":   NullKind,
		"Bool":   BoolKind,
		"Long":   LongKind,
		"Double": DoubleKind,
		"String": StringKind,
		"Bytes":  BytesKind,
		"Date":   DateKind,
		"Time":   TimeKind,
		"Ref":    RefKind,
		"SetRef": SetRefKind,
		"Array":  ArrayKind,
		"Object": ObjectKind,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unknown kind %q", string(d))
	}
	*k = kk
	return nil
}

// Kinds returns all kinds in rank order.
func Kinds() []Kind {
	return []Kind{
		NullKind,
		BoolKind,
		LongKind,
		DoubleKind,
		StringKind,
		BytesKind,
		DateKind,
		TimeKind,
		RefKind,
		SetRefKind,
		ArrayKind,
		ObjectKind,
	}
}
