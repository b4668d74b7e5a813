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

// QueryFilter describes a WHERE clause fragment and its argument values.
// Schema uses "?" placeholders only.
type QueryFilter struct {
	Schema string
	Args   []interface{}
}

// NewQueryFilter creates a new query filter with schema and args.
func NewQueryFilter(schema string, args ...interface{}) *QueryFilter {
	return &QueryFilter{schema, args}
}

// PageRequest describes a 1-based page number and page size.
type PageRequest struct {
	page     int
	pageSize int
}

func (p *PageRequest) GetPageSize() int {
	if p.pageSize < 1 {
		p.pageSize = 10
	}
	return p.pageSize
}

func (p *PageRequest) GetPage() int {
	if p.page < 1 {
		p.page = 1
	}
	return p.page
}

func (p *PageRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}

// NewPageRequest constructs a PageRequest.
func NewPageRequest(page int, pageSize int) *PageRequest {
	return &PageRequest{page, pageSize}
}

// ResultPage holds a window of a filtered, ordered result set together with
// the number of rows matching the filter.
type ResultPage[T any] struct {
	Offset int
	Limit  int
	Total  int
	Items  []*T
}

// NewResultPage constructs an empty result page.
func NewResultPage[T any](offset int, limit int) *ResultPage[T] {
	return &ResultPage[T]{offset, limit, 0, make([]*T, 0)}
}

// DropdownItem is a lightweight id/label pair for incremental search lists.
type DropdownItem struct {
	ID    int64  `json:"id"`
	Label string `json:"text"`
}

// DropdownPage is one page of dropdown items.
type DropdownPage struct {
	Items   []DropdownItem `json:"results"`
	HasMore bool           `json:"more"`
}
