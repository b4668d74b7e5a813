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
	"context"
	"errors"
	"testing"

	"github.com/tomoncle/flagadmin/types"
)

func int64p(v int64) *int64 { return &v }

func TestCreateUserRules(t *testing.T) {
	existing := &types.User{ID: 1, Username: "ann", Email: "ann@example.com"}
	cases := []struct {
		name    string
		user    *types.User
		message string
	}{
		{"blank username", &types.User{Username: " ", Email: "x"}, "Username cannot be empty."},
		{"blank email", &types.User{Username: "bob", Email: ""}, "Email cannot be empty."},
		{"bad email", &types.User{Username: "bob", Email: "not-an-email"}, "Invalid email format."},
		{"bad flag", &types.User{Username: "bob", Email: "bob@example.com", Flags: types.NewFlagSet(10, 999)}, "Invalid flag: 999"},
		{"taken username", &types.User{Username: "ann", Email: "other@example.com"}, "User with the same Username or Email already exists."},
		{"taken email", &types.User{Username: "other", Email: "ann@example.com"}, "User with the same Username or Email already exists."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakeUserStore(existing)
			err := NewUserService(store).CreateUser(context.Background(), tc.user)
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Message != tc.message {
				t.Fatalf("got %v, want %q", err, tc.message)
			}
			if store.writes() != 0 {
				t.Fatalf("invalid input reached the store: %v", store.calls)
			}
		})
	}
}

func TestInvalidEmailMakesNoStoreCalls(t *testing.T) {
	store := newFakeUserStore()
	err := NewUserService(store).CreateUser(context.Background(), &types.User{Username: "bob", Email: "bob@"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(store.calls) != 0 {
		t.Fatalf("expected no store calls, got %v", store.calls)
	}
}

func TestEmailSyntax(t *testing.T) {
	cases := map[string]bool{
		"a@b":             true,
		"bob@example.com": true,
		"a@@b.co":         false,
		"@b.co":           false,
		"a@":              false,
		"Bob <a@b.co>":    false,
		"a b@c.co":        false,
	}
	for email, ok := range cases {
		store := newFakeUserStore()
		err := NewUserService(store).CreateUser(context.Background(), &types.User{Username: "u", Email: email})
		if ok && err != nil {
			t.Errorf("%q: unexpected error %v", email, err)
		}
		if !ok && !errors.Is(err, ErrValidation) {
			t.Errorf("%q: expected validation error, got %v", email, err)
		}
	}
}

func TestCreateUserAcceptsNoneFlag(t *testing.T) {
	store := newFakeUserStore()
	u := &types.User{Username: "bob", Email: "bob@example.com", Flags: types.NewFlagSet(0, 20)}
	if err := NewUserService(store).CreateUser(context.Background(), u); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID == 0 || store.writes() != 1 {
		t.Fatalf("user not stored: %v", store.calls)
	}
}

func TestUpdateUserRejectsUnknownFlag(t *testing.T) {
	store := newFakeUserStore(&types.User{ID: 1, Username: "ann", Email: "ann@example.com", Flags: types.NewFlagSet(10)})
	svc := NewUserService(store)

	err := svc.UpdateUser(context.Background(), &types.User{ID: 1, Username: "ann", Email: "ann@example.com", Flags: types.NewFlagSet(999)})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if store.writes() != 0 || !store.users[1].Flags.Equal(types.NewFlagSet(10)) {
		t.Fatalf("row changed: %+v", store.users[1])
	}

	if err := svc.UpdateUser(context.Background(), &types.User{ID: 1, Username: "ann", Email: "ann@example.com", Flags: types.NewFlagSet(20)}); err != nil {
		t.Fatalf("keeping own username and email must be accepted: %v", err)
	}
	if err := svc.UpdateUser(context.Background(), &types.User{ID: 5, Username: "x", Email: "x@example.com"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := svc.DeleteUser(context.Background(), 5); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestLoadUsersChecksViews(t *testing.T) {
	cases := []struct {
		name    string
		req     UserListRequest
		message string
	}{
		{"negative length", UserListRequest{Length: -1}, "Page Size is less than zero"},
		{"negative min", UserListRequest{Length: 1, ViewsMin: int64p(-1)}, "Views must be non-negative values"},
		{"negative max", UserListRequest{Length: 1, ViewsMax: int64p(-5)}, "Views must be non-negative values"},
		{"inverted", UserListRequest{Length: 1, ViewsMin: int64p(100), ViewsMax: int64p(50)}, "Minimum views should be less than maximum views"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakeUserStore()
			_, err := NewUserService(store).LoadUsers(context.Background(), tc.req)
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Message != tc.message {
				t.Fatalf("got %v, want %q", err, tc.message)
			}
			if len(store.calls) != 0 {
				t.Fatalf("store must not be queried: %v", store.calls)
			}
		})
	}

	store := newFakeUserStore()
	if _, err := NewUserService(store).LoadUsers(context.Background(), UserListRequest{Length: 5, ViewsMin: int64p(50), ViewsMax: int64p(50)}); err != nil {
		t.Fatalf("equal bounds are valid: %v", err)
	}
}
