package mesh

// Holder receives finished sections for display or collision. It is the
// boundary between mesh construction and whatever consumes the geometry:
// CreateSection is called once per section, in any order, and the caller
// never reads anything back.
type Holder interface {
	CreateSection(s *Section) error
}

// HolderFunc adapts an ordinary function to the Holder interface.
type HolderFunc func(s *Section) error

// CreateSection calls f(s).
func (f HolderFunc) CreateSection(s *Section) error {
	return f(s)
}
