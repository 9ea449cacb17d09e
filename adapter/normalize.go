package adapter

import (
	"errors"

	"github.com/julienstroheker/httperr/enhancer"
)

var converters = []func(error) (*enhancer.RequestError, bool){
	azureFailure,
	githubFailure,
	smithyFailure,
}

// Normalize converts err with the first adapter that recognizes it. Errors no
// adapter recognizes, including errors that already are failures, are returned
// unchanged.
func Normalize(err error) error {
	if err == nil {
		return nil
	}
	var failure enhancer.Failure
	if errors.As(err, &failure) {
		return err
	}
	for _, convert := range converters {
		if failure, ok := convert(err); ok {
			return failure
		}
	}
	return err
}
