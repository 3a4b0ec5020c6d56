package util

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

func LogError(logger *logrus.Logger, message string, err error) error {
	if logger != nil {
		logger.WithError(err).Error(message)
	}
	if err == nil {
		return errors.New(message)
	}
	return fmt.Errorf("%s: %w", message, err)
}
