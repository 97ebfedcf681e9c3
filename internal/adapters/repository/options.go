package repository

const defaultCapacity = 100

// BoardOption applies a configuration option to the MemoryBoard.
type BoardOption func(*MemoryBoard)

// WithCapacity sets how many entries the board retains after each submission.
func WithCapacity(n int) BoardOption {
	return func(b *MemoryBoard) {
		if n > 0 {
			b.capacity = n
		}
	}
}
