package config

import (
	"fmt"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), errors.ErrInvalidConfig)
}
