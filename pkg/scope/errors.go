package scope

import (
	"errors"
	"fmt"
)

// ErrInvalidToken matches every rejected token, including the two below.
var ErrInvalidToken = errors.New("invalid token")

var (
	ErrExpiredToken = fmt.Errorf("%w: expired", ErrInvalidToken)
	ErrRefreshToken = fmt.Errorf("%w: refresh token cannot authorize requests", ErrInvalidToken)
)
