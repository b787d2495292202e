package advanced

import "github.com/pkg/errors"

var (
	ErrSiteNotFound        = errors.New("cdt: site not found")
	ErrInvalidPoint        = errors.New("cdt: point coordinates must be finite")
	ErrDegenerateSegment   = errors.New("cdt: constrained segment endpoints coincide")
	ErrCrossingConstraints = errors.New("cdt: constrained segments cross")
	ErrSiteOnConstraint    = errors.New("cdt: site lies on the interior of a constrained segment")
	ErrNotRun              = errors.New("cdt: triangulation has not been run")
	ErrAlreadyRun          = errors.New("cdt: triangulation has already been run")
)
