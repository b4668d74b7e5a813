/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package service

import (
	"errors"

	"github.com/sirupsen/logrus"
)

var (
	// ErrValidation matches every *ValidationError through errors.Is.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned when an update or delete targets a missing row.
	ErrNotFound = errors.New("record not found")
)

// ValidationError reports the first rule an input broke.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(logger *logrus.Logger, op, field, message string) error {
	logger.WithFields(logrus.Fields{
		"operation": op,
		"field":     field,
	}).Debug(message)
	return &ValidationError{Field: field, Message: message}
}
