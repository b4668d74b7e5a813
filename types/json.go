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
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// FlagCodes is the persisted form of a FlagSet: a JSON array of integers.
// An empty value is always written as "[]", never NULL.
type FlagCodes []int

// ToFlagCodes converts a set into its ascending persisted form.
func ToFlagCodes(s FlagSet) FlagCodes {
	return FlagCodes(s.Codes())
}

// Set returns the membership view of the stored codes.
func (c FlagCodes) Set() FlagSet {
	return NewFlagSet(c...)
}

// JSON encodes the codes as a JSON array.
func (c FlagCodes) JSON() string {
	if len(c) == 0 {
		return "[]"
	}
	b, _ := json.Marshal([]int(c))
	return string(b)
}

// Value implements driver.Valuer for FlagCodes. A string is returned so the
// value binds as text (JSON) rather than bytea on PostgreSQL.
func (c FlagCodes) Value() (driver.Value, error) {
	return c.JSON(), nil
}

// Scan implements sql.Scanner for FlagCodes.
func (c *FlagCodes) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*c = FlagCodes{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported flags column type %T", value)
	}
	if len(raw) == 0 {
		*c = FlagCodes{}
		return nil
	}
	var codes []int
	if err := json.Unmarshal(raw, &codes); err != nil {
		return fmt.Errorf("invalid flags column: %w", err)
	}
	if codes == nil {
		codes = []int{}
	}
	*c = codes
	return nil
}
