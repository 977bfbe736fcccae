package block

import "fmt"

// Direction of a port.
type Direction int

const (
	In Direction = iota
	Out
)

func (d Direction) String() string {
	if d == Out {
		return "out"
	}
	return "in"
}

// Port describes a typed endpoint. The buffer behind it belongs to the
// scheduler and is handed to the block as a span on each call.
type Port struct {
	Name      string
	Direction Direction
	Type      string // element type name, e.g. "float32"
}

func (p Port) String() string {
	return fmt.Sprintf("%s %s<%s>", p.Direction, p.Name, p.Type)
}

// PortIn declares an input port carrying elements of type T.
func PortIn[T any](name string) Port {
	return Port{Name: name, Direction: In, Type: TypeName[T]()}
}

// PortOut declares an output port carrying elements of type T.
func PortOut[T any](name string) Port {
	return Port{Name: name, Direction: Out, Type: TypeName[T]()}
}

// TypeName returns the element type name used for ports and registry keys.
func TypeName[T any]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}
