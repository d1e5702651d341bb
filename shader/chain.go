package shader

import "image"
import "errors"
import "strings"
import "encoding/binary"
import "math"

// Bytes used by each encoded transform: one for the kind and four
// little endian float32 parameters.
const encodedTransformSize = 17

// An immutable ordered sequence of transforms.
//
// Chains are stored in encoded form, which makes them comparable with ==,
// usable as map keys and cheap to copy. The zero value is the empty
// chain, which leaves images untouched.
type Chain struct {
	encoded string
}

// Creates a new chain with the given transforms, applied in order.
func NewChain(transforms ...Transform) Chain {
	if len(transforms) == 0 { return Chain{} }
	buffer := make([]byte, 0, len(transforms)*encodedTransformSize)
	for _, transform := range transforms {
		buffer = appendTransform(buffer, transform)
	}
	return Chain{ encoded: string(buffer) }
}

// Returns a new chain with the given transforms appended at the end.
// The original chain is not modified.
func (self Chain) Append(transforms ...Transform) Chain {
	if len(transforms) == 0 { return self }
	buffer := make([]byte, 0, len(self.encoded) + len(transforms)*encodedTransformSize)
	buffer = append(buffer, self.encoded...)
	for _, transform := range transforms {
		buffer = appendTransform(buffer, transform)
	}
	return Chain{ encoded: string(buffer) }
}

// Returns the number of transforms in the chain.
func (self Chain) Len() int { return len(self.encoded)/encodedTransformSize }

// Reports whether the chain has no transforms.
func (self Chain) IsEmpty() bool { return len(self.encoded) == 0 }

// Returns the i-th transform. Panics if out of range.
func (self Chain) At(i int) Transform {
	if i < 0 || i >= self.Len() { panic("chain index out of range") }
	offset := i*encodedTransformSize
	return decodeTransform(self.encoded[offset : offset + encodedTransformSize])
}

// Returns a fresh slice with all the transforms in the chain.
func (self Chain) Transforms() []Transform {
	transforms := make([]Transform, self.Len())
	for i := range transforms { transforms[i] = self.At(i) }
	return transforms
}

// Returns the encoded form of the chain. Two chains have the same
// key if and only if they are equal.
func (self Chain) Key() string { return self.encoded }

// Applies all the transforms in order. Each stage consumes the previous
// output and allocates its own, so src is never modified. For empty
// chains, src itself is returned.
func (self Chain) Apply(src *image.RGBA) *image.RGBA {
	out := src
	for i := 0; i < self.Len(); i++ {
		out = self.At(i).Apply(out)
	}
	return out
}

// Returns an error joining the validation errors of all the transforms
// in the chain, or nil if all are valid.
func (self Chain) Validate() error {
	var errs []error
	for i := 0; i < self.Len(); i++ {
		err := self.At(i).Validate()
		if err != nil { errs = append(errs, err) }
	}
	return errors.Join(errs...)
}

func (self Chain) String() string {
	var builder strings.Builder
	builder.WriteByte('[')
	for i := 0; i < self.Len(); i++ {
		if i > 0 { builder.WriteString(", ") }
		builder.WriteString(self.At(i).String())
	}
	builder.WriteByte(']')
	return builder.String()
}

func appendTransform(buffer []byte, transform Transform) []byte {
	buffer = append(buffer, byte(transform.kind))
	buffer = binary.LittleEndian.AppendUint32(buffer, math.Float32bits(transform.a))
	buffer = binary.LittleEndian.AppendUint32(buffer, math.Float32bits(transform.b))
	buffer = binary.LittleEndian.AppendUint32(buffer, math.Float32bits(transform.c))
	buffer = binary.LittleEndian.AppendUint32(buffer, math.Float32bits(transform.d))
	return buffer
}

func decodeTransform(data string) Transform {
	param := func(i int) float32 {
		offset := 1 + i*4
		bits := uint32(data[offset]) | uint32(data[offset + 1]) << 8 |
		        uint32(data[offset + 2]) << 16 | uint32(data[offset + 3]) << 24
		return math.Float32frombits(bits)
	}
	return Transform{
		kind: Kind(data[0]),
		a: param(0), b: param(1), c: param(2), d: param(3),
	}
}
