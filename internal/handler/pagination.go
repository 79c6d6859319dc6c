// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// DefaultPerPage is the page size used when none is requested.
const DefaultPerPage = 10

// PerPageOptions are the selectable page sizes in admin listings.
var PerPageOptions = []int{10, 20, 50, 100}

// ParsePageParam reads the "page" query parameter, defaulting to 1.
func ParsePageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// ParsePerPageParam reads the "per_page" query parameter, constrained to
// PerPageOptions. Unknown values fall back to the default.
func ParsePerPageParam(r *http.Request) int {
	perPage, err := strconv.Atoi(r.URL.Query().Get("per_page"))
	if err != nil {
		return DefaultPerPage
	}
	for _, option := range PerPageOptions {
		if perPage == option {
			return perPage
		}
	}
	return DefaultPerPage
}

// CalculateTotalPages returns the page count for totalItems, at least 1.
func CalculateTotalPages(totalItems, perPage int) int {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	totalPages := (totalItems + perPage - 1) / perPage
	if totalPages < 1 {
		return 1
	}
	return totalPages
}

// ClampPage keeps a requested page inside [1, totalPages].
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Pagination holds pagination state for admin templates and API responses.
type Pagination struct {
	CurrentPage int    `json:"page"`
	TotalPages  int    `json:"total_pages"`
	TotalItems  int    `json:"total_items"`
	PerPage     int    `json:"per_page"`
	HasPrev     bool   `json:"has_prev"`
	HasNext     bool   `json:"has_next"`
	PrevPage    int    `json:"-"`
	NextPage    int    `json:"-"`
	Pages       []Page `json:"-"`
	BaseURL     string `json:"-"`
	QueryString string `json:"-"`
}

// Page is one link in the pagination control.
type Page struct {
	Number     int
	URL        string
	IsCurrent  bool
	IsEllipsis bool
}

// BuildPagination creates pagination state. baseURL is the path without a
// query string; queryParams are preserved in page links so filters survive
// page changes. At most five numbered links render around the current
// page, with first/last links and ellipses beyond the window.
func BuildPagination(currentPage, totalItems, perPage int, baseURL string, queryParams url.Values) Pagination {
	totalPages := CalculateTotalPages(totalItems, perPage)
	currentPage = ClampPage(currentPage, totalPages)

	p := Pagination{
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		PerPage:     perPage,
		HasPrev:     currentPage > 1,
		HasNext:     currentPage < totalPages,
		PrevPage:    currentPage - 1,
		NextPage:    currentPage + 1,
		BaseURL:     baseURL,
	}

	if queryParams != nil {
		params := make(url.Values)
		for k, v := range queryParams {
			if k != "page" && len(v) > 0 && v[0] != "" {
				params[k] = v
			}
		}
		if len(params) > 0 {
			p.QueryString = params.Encode()
		}
	}

	start := currentPage - 2
	end := currentPage + 2
	if start < 1 {
		start = 1
		end = 5
	}
	if end > totalPages {
		end = totalPages
		start = end - 4
		if start < 1 {
			start = 1
		}
	}

	if start > 1 {
		p.Pages = append(p.Pages, Page{Number: 1, URL: p.PageURL(1)})
		if start > 2 {
			p.Pages = append(p.Pages, Page{IsEllipsis: true})
		}
	}

	for i := start; i <= end; i++ {
		p.Pages = append(p.Pages, Page{
			Number:    i,
			URL:       p.PageURL(i),
			IsCurrent: i == currentPage,
		})
	}

	if end < totalPages {
		if end < totalPages-1 {
			p.Pages = append(p.Pages, Page{IsEllipsis: true})
		}
		p.Pages = append(p.Pages, Page{Number: totalPages, URL: p.PageURL(totalPages)})
	}

	return p
}

// PageURL returns the URL for a page number, preserving filters.
func (p Pagination) PageURL(page int) string {
	if p.QueryString != "" {
		return fmt.Sprintf("%s?%s&page=%d", p.BaseURL, p.QueryString, page)
	}
	return fmt.Sprintf("%s?page=%d", p.BaseURL, page)
}

// PrevURL returns the URL for the previous page.
func (p Pagination) PrevURL() string { return p.PageURL(p.PrevPage) }

// NextURL returns the URL for the next page.
func (p Pagination) NextURL() string { return p.PageURL(p.NextPage) }

// ShouldShow reports whether the control renders at all.
func (p Pagination) ShouldShow() bool { return p.TotalPages > 1 }

// ItemRange describes the visible slice, e.g. "41-47".
func (p Pagination) ItemRange() string {
	if p.TotalItems == 0 {
		return "0-0"
	}
	start := (p.CurrentPage-1)*p.PerPage + 1
	end := p.CurrentPage * p.PerPage
	if end > p.TotalItems {
		end = p.TotalItems
	}
	return fmt.Sprintf("%d-%d", start, end)
}

// Offset returns the SQL offset for the current page.
func (p Pagination) Offset() int64 {
	return int64((p.CurrentPage - 1) * p.PerPage)
}
