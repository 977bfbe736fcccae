package block

// Number is the set of element types that support the arithmetic used by
// counting blocks.
type Number interface {
	uint8 | uint16 | uint32 | uint64 | int8 | int16 | int32 | int64 |
		float32 | float64 | complex64 | complex128
}

// FromCount converts a sample count to T using T's native conversion, so
// integer types wrap modulo their range.
func FromCount[T Number](n uint64) T {
	var out T
	switch p := any(&out).(type) {
	case *uint8:
		*p = uint8(n)
	case *uint16:
		*p = uint16(n)
	case *uint32:
		*p = uint32(n)
	case *uint64:
		*p = n
	case *int8:
		*p = int8(n)
	case *int16:
		*p = int16(n)
	case *int32:
		*p = int32(n)
	case *int64:
		*p = int64(n)
	case *float32:
		*p = float32(n)
	case *float64:
		*p = float64(n)
	case *complex64:
		*p = complex(float32(n), 0)
	case *complex128:
		*p = complex(float64(n), 0)
	}
	return out
}
