package mfile

// Kind identifies the form of a statement.
type Kind int

const (
	KindVectorAssign Kind = iota // Name = [a b c]
	KindMatrixAssign             // Name = [a b ;c d]
	KindZerosDecl                // Name = zeros(d0,...)
	KindSliceAssign              // Name(:,:,k) = [...]
)

// String returns the name of the statement kind.
func (k Kind) String() string {
	switch k {
	case KindVectorAssign:
		return "vector"
	case KindMatrixAssign:
		return "matrix"
	case KindZerosDecl:
		return "zeros"
	case KindSliceAssign:
		return "slice"
	default:
		return "unknown"
	}
}

// Statement is a single parsed line of input.
type Statement struct {
	Kind Kind
	Name string
	// Index is the 0-based plane index of a slice assignment.
	Index   int
	Payload Array
	Line    int
}

// Shape returns the shape of the statement's payload.
func (s *Statement) Shape() []int {
	if s.Payload == nil {
		return nil
	}

	return s.Payload.Shape()
}
