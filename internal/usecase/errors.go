package usecase

import "errors"

var ErrModelNotReady = errors.New("model not ready")
