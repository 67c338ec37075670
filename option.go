package kite

type option[T any] struct {
	isSet bool
	value T
}

func (opt *option[T]) set(v T) {
	opt.isSet = true
	opt.value = v
}

func (opt *option[T]) clear() {
	opt.isSet = false
	opt.value = *new(T)
}

// get returns the stored value, computing and storing it first if necessary.
func (opt *option[T]) get(compute func() T) T {
	if !opt.isSet {
		opt.set(compute())
	}
	return opt.value
}
