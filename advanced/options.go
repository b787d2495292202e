package advanced

import (
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

// Option configures a Triangulation.
type Option func(*options)

type options struct {
	logger   *zap.Logger
	validate bool
	observer func(step int, snapshot *geojson.FeatureCollection)
}

func defaultOptions() options {
	return options{logger: zap.NewNop()}
}

// WithLogger sets the logger used for sweep events. The default discards
// everything.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithValidation makes New reject crossing constrained segments and sites
// lying on a constrained segment. These checks are quadratic in the number of
// constraints, so they are off by default and the caller is trusted.
func WithValidation(enabled bool) Option {
	return func(o *options) {
		o.validate = enabled
	}
}

// WithObserver registers a callback receiving a snapshot of the mesh and the
// sweep front after every processed site.
func WithObserver(observer func(step int, snapshot *geojson.FeatureCollection)) Option {
	return func(o *options) {
		o.observer = observer
	}
}
