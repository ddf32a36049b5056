package animator

// AnimatorBuilderOption is a functional option for configuring an Animator during construction.
type AnimatorBuilderOption func(*animator)

// WithCapacity is an option builder that preallocates room for n concurrent tweens.
//
// Parameters:
//   - n: the expected number of concurrent tweens
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the capacity option to an animator
func WithCapacity(n int) AnimatorBuilderOption {
	return func(a *animator) {
		if n <= 0 {
			return
		}
		a.tweens = make(map[uint64]*tween, n)
		a.order = make([]uint64, 0, n)
	}
}
