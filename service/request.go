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
	"net/mail"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tomoncle/flagadmin/types"
)

// MaxTitleLength is the longest post title accepted, in characters.
const MaxTitleLength = 100

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// mailbox: a bare address with exactly one @ and non-empty local and
	// domain parts; "a@b" passes.
	_ = v.RegisterValidation("mailbox", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if strings.Count(s, "@") != 1 {
			return false
		}
		addr, err := mail.ParseAddress(s)
		return err == nil && addr.Address == s
	})
	return v
}

// PostListRequest selects a window of posts. Start and Length are row counts;
// zero values of Keyword, UserID and Flags leave that filter out.
type PostListRequest struct {
	Start   int `validate:"gte=0"`
	Length  int `validate:"gte=0"`
	Keyword string
	UserID  int64
	Flags   types.FlagSet
}

// UserListRequest selects a window of users. A nil views bound leaves that
// side of the range open.
type UserListRequest struct {
	Start    int `validate:"gte=0"`
	Length   int `validate:"gte=0"`
	Flags    types.FlagSet
	ViewsMin *int64 `validate:"omitempty,gte=0"`
	ViewsMax *int64 `validate:"omitempty,gte=0"`
}

var requestMessages = map[string]string{
	"Start":    "Start is less than zero",
	"Length":   "Page Size is less than zero",
	"ViewsMin": "Views must be non-negative values",
	"ViewsMax": "Views must be non-negative values",
}

// firstFieldError maps the first failed struct rule to its field and message.
func firstFieldError(err error) (string, string) {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		field := errs[0].Field()
		if msg, ok := requestMessages[field]; ok {
			return field, msg
		}
		return field, errs[0].Error()
	}
	return "", err.Error()
}
