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

package types

import (
	"sort"
	"strconv"
)

// Common illegal/default values used by enums.
const (
	IllegalValue = -1
	IllegalName  = "unknown"
	IllegalDesc  = "unknown"
)

// BaseEnum represents a basic enum contract used by domain types.
type BaseEnum interface {
	IsValid() bool
	Number() int
	String() string
	Desc() string
	Name() string
}

// UserFlag is a feature flag code stored on a user.
type UserFlag int

const (
	FlagNone               UserFlag = 0
	FlagDarkMode           UserFlag = 10
	FlagSuperAdmin         UserFlag = 20
	FlagNotificationOptIn  UserFlag = 30
	FlagMeteredBilling     UserFlag = 40
	FlagRolloutChat        UserFlag = 50
	FlagExperimentBlue     UserFlag = 60
	FlagLogVerbose         UserFlag = 70
	FlagNewLegalDisclaimer UserFlag = 80
)

var _ BaseEnum = FlagNone

type flagMeta struct {
	name string
	desc string
}

var userFlags = map[UserFlag]flagMeta{
	FlagNone:               {"None", "None"},
	FlagDarkMode:           {"DarkMode", "Dark Mode"},
	FlagSuperAdmin:         {"SuperAdmin", "Super Admin"},
	FlagNotificationOptIn:  {"NotificationOptIn", "Notification Opt-In"},
	FlagMeteredBilling:     {"MeteredBilling", "Metered Billing"},
	FlagRolloutChat:        {"RolloutChat", "Rollout Chat"},
	FlagExperimentBlue:     {"ExperimentBlue", "Experiment Blue"},
	FlagLogVerbose:         {"LogVerbose", "Log Verbose"},
	FlagNewLegalDisclaimer: {"NewLegalDisclaimer", "New Legal Disclaimer"},
}

// UserFlags returns every member of the enumeration in ascending order.
func UserFlags() []UserFlag {
	flags := make([]UserFlag, 0, len(userFlags))
	for f := range userFlags {
		flags = append(flags, f)
	}
	sort.Slice(flags, func(i, j int) bool { return flags[i] < flags[j] })
	return flags
}

// IsValid reports whether the code is a member of the enumeration.
func (f UserFlag) IsValid() bool {
	_, ok := userFlags[f]
	return ok
}

func (f UserFlag) Number() int {
	if !f.IsValid() {
		return IllegalValue
	}
	return int(f)
}

func (f UserFlag) String() string {
	return strconv.Itoa(int(f))
}

// Desc returns the human label of the flag.
func (f UserFlag) Desc() string {
	if m, ok := userFlags[f]; ok {
		return m.desc
	}
	return IllegalDesc
}

func (f UserFlag) Name() string {
	if m, ok := userFlags[f]; ok {
		return m.name
	}
	return IllegalName
}

// FlagSet is the membership view of a user's flags. Order carries no meaning.
type FlagSet map[UserFlag]struct{}

// NewFlagSet builds a set from raw codes; duplicates collapse.
func NewFlagSet(codes ...int) FlagSet {
	s := make(FlagSet, len(codes))
	for _, c := range codes {
		s[UserFlag(c)] = struct{}{}
	}
	return s
}

func (s FlagSet) Has(f UserFlag) bool {
	_, ok := s[f]
	return ok
}

func (s FlagSet) Len() int { return len(s) }

// IsNoneOnly reports whether the set is exactly the "no flags" sentinel.
func (s FlagSet) IsNoneOnly() bool {
	return len(s) == 1 && s.Has(FlagNone)
}

// Invalid returns the codes that are not members of the enumeration, sorted.
func (s FlagSet) Invalid() []UserFlag {
	var invalid []UserFlag
	for f := range s {
		if !f.IsValid() {
			invalid = append(invalid, f)
		}
	}
	sort.Slice(invalid, func(i, j int) bool { return invalid[i] < invalid[j] })
	return invalid
}

// Codes returns the codes in ascending order. A nil or empty set yields an
// empty, non-nil slice.
func (s FlagSet) Codes() []int {
	codes := make([]int, 0, len(s))
	for f := range s {
		codes = append(codes, int(f))
	}
	sort.Ints(codes)
	return codes
}

// Equal reports whether both sets hold the same codes.
func (s FlagSet) Equal(other FlagSet) bool {
	if len(s) != len(other) {
		return false
	}
	for f := range s {
		if !other.Has(f) {
			return false
		}
	}
	return true
}
