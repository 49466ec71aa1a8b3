package sphere

import "log/slog"

// Variant selects the traversal strategy.
type Variant int

const (
	// VariantWindow uses an append-only frontier with a read cursor.
	VariantWindow Variant = iota
	// VariantRing uses a vertex stack and expands one 1-ring at a time.
	VariantRing
)

func (v Variant) String() string {
	switch v {
	case VariantWindow:
		return "window"
	case VariantRing:
		return "ring"
	default:
		return "unknown"
	}
}

type options struct {
	variant      Variant
	orderToField bool
	noCollect    bool
	logger       *slog.Logger
}

// Option configures Query.
type Option func(*options)

// WithVariant selects the traversal variant.
func WithVariant(v Variant) Option {
	return func(o *options) {
		o.variant = v
	}
}

// WithOrderToScalar stamps every vertex inside the sphere with its discovery
// sequence number (0, 1, 2, ...) in the scalar field.
func WithOrderToScalar() Option {
	return func(o *options) {
		o.orderToField = true
	}
}

// WithoutCollect skips building Result.Faces. Useful together with
// WithOrderToScalar.
func WithoutCollect() Option {
	return func(o *options) {
		o.noCollect = true
	}
}

// WithLogger sets the logger for query diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
