package allowance

import "errors"

var ErrAllowanceNotFound = errors.New("weekly allowance not found")
