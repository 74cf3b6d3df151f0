// Package format provides alternative, structured renderings of the token
// stream and syntax tree for tooling that wants JSON instead of the
// interchange text format or the box-drawing tree printer.
package format

// Encoder writes one value of type T to an underlying writer.
type Encoder[T any] interface {
	Encode(v T) error
}
