// Package models contains the domain structures shared by services, handlers and storage.
package models

import (
	"fmt"
	"net/url"
	"strconv"
)

// CourseRecord is one training-course session in the canonical shape served to clients.
// Derived fields (RemainingSlots, StatusLabel, DDay, IsClosed) are computed from the
// dates and headcounts at normalization time.
type CourseRecord struct {
	CourseID          string  `json:"course_id"`
	SessionIndex      string  `json:"session_index"`
	InstitutionID     *string `json:"institution_id"`
	InstitutionName   string  `json:"institution_name,omitempty"`
	Title             string  `json:"title"`
	Location          string  `json:"location"`
	Contact           string  `json:"contact"`
	Summary           string  `json:"summary"`
	SatisfactionScore string  `json:"satisfaction_score"`
	TargetCode        string  `json:"target_code,omitempty"`
	StartDate         string  `json:"start_date"`
	EndDate           string  `json:"end_date"`
	Capacity          int     `json:"capacity"`
	Applied           int     `json:"applied"`
	RemainingSlots    int     `json:"remaining_slots"`
	StatusLabel       string  `json:"status_label"`
	DDay              string  `json:"d_day"`
	IsClosed          bool    `json:"is_closed"`

	// detail endpoint only
	Graduates                  string `json:"graduates,omitempty"`
	Fee                        string `json:"fee,omitempty"`
	EmploymentRate6m           string `json:"employment_rate_6m,omitempty"`
	NonInsuredEmploymentRate6m string `json:"non_insured_employment_rate_6m,omitempty"`
	RegistrationURL            string `json:"registration_url,omitempty"`
}

// ListQuery holds every parameter that affects a course list response.
// The query tag names the HTTP query parameter reported in validation errors.
type ListQuery struct {
	Organization string `query:"organ" validate:"required"`
	StartDate    string `query:"start" validate:"required,len=8,numeric"`
	EndDate      string `query:"end" validate:"required,len=8,numeric"`
	Page         int    `query:"page" validate:"gte=1"`
	PageSize     int    `query:"page_size" validate:"gte=1,lte=100"`
	SortCol      string `query:"sort_col" validate:"required,numeric"`
	SortDir      string `query:"sort" validate:"oneof=ASC DESC"`
}

// CacheKey builds the deterministic key of the list query. Every field takes part in it.
func (q ListQuery) CacheKey() string {
	return fmt.Sprintf("hrd:list:%s:%s:%s:%d:%d:%s:%s",
		url.QueryEscape(q.Organization),
		url.QueryEscape(q.StartDate),
		url.QueryEscape(q.EndDate),
		q.Page,
		q.PageSize,
		url.QueryEscape(q.SortCol),
		url.QueryEscape(q.SortDir),
	)
}

// DefaultListQuery is the query of the landing page: the whole given year of organ,
// newest first.
func DefaultListQuery(organ string, year, pageSize int) ListQuery {
	y := strconv.Itoa(year)
	return ListQuery{
		Organization: organ,
		StartDate:    y + "0101",
		EndDate:      y + "1231",
		Page:         1,
		PageSize:     pageSize,
		SortCol:      "2",
		SortDir:      "DESC",
	}
}

// DetailQuery identifies one course session. InstitutionID may be empty until resolved.
type DetailQuery struct {
	CourseID      string `query:"course_id" validate:"required"`
	SessionIndex  string `query:"session_index" validate:"required"`
	InstitutionID string `query:"institution_id"`
}

// CacheKey builds the deterministic key of the detail query.
func (q DetailQuery) CacheKey() string {
	return fmt.Sprintf("hrd:detail:%s:%s:%s",
		url.QueryEscape(q.CourseID),
		url.QueryEscape(q.SessionIndex),
		url.QueryEscape(q.InstitutionID),
	)
}

// ResolutionKey is the key under which a resolved institution id is remembered.
func (q DetailQuery) ResolutionKey() string {
	return fmt.Sprintf("hrd:torg:%s:%s", url.QueryEscape(q.CourseID), url.QueryEscape(q.SessionIndex))
}
