// Package hrdnet talks to the Work24 (HRD-Net) training-course registry.
//
// The registry answers in XML and is inconsistent about record shapes: a single
// match comes back as a bare element instead of a one-element list, and field
// names differ between the list and the detail endpoints. Client hides the first
// problem, the Dialect tables in normalize.go hide the second.
package hrdnet

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/clbanning/mxj/v2"

	"github.com/damoacook/damoacook-back/internal/config"
	"github.com/damoacook/damoacook-back/internal/metrics"
)

// Endpoint names used in errors and metrics.
const (
	EndpointList   = "list"
	EndpointDetail = "detail"
)

const maxBodySize = 8 << 20

var (
	rootNode   = "HRDNet"
	listPath   = []string{rootNode, "srchList", "scn_list"}
	detailPath = []string{rootNode, "scn_list"}
)

// Raw is one upstream record as a generic mapping of field name to value.
type Raw map[string]any

// ListParams are the list endpoint filters. Zero values are not sent.
type ListParams struct {
	Page         int
	PageSize     int
	Organization string
	StartDate    string
	EndDate      string
	SortCol      string
	SortDir      string
	CourseID     string
}

// DetailParams identify one course session on the detail endpoint.
type DetailParams struct {
	CourseID      string
	SessionIndex  string
	InstitutionID string
}

// Client issues single, bounded-timeout requests to the registry. It never retries.
type Client struct {
	apiKey     string
	listURL    string
	detailURL  string
	listHTTP   *http.Client
	detailHTTP *http.Client
	log        *slog.Logger
}

// NewClient creates a registry client with separate timeouts for list and detail calls.
func NewClient(cfg config.HRDNet, log *slog.Logger) *Client {
	return &Client{
		apiKey:     cfg.APIKey,
		listURL:    cfg.ListURL,
		detailURL:  cfg.DetailURL,
		listHTTP:   &http.Client{Timeout: cfg.ListTimeout},
		detailHTTP: &http.Client{Timeout: cfg.DetailTimeout},
		log:        log,
	}
}

// List queries the list endpoint with the short timeout.
func (c *Client) List(ctx context.Context, p ListParams) ([]Raw, error) {
	return c.list(ctx, c.listHTTP, p)
}

// SearchList queries the list endpoint with the long timeout. It is used for
// background-style scans such as institution resolution.
func (c *Client) SearchList(ctx context.Context, p ListParams) ([]Raw, error) {
	return c.list(ctx, c.detailHTTP, p)
}

func (c *Client) list(ctx context.Context, hc *http.Client, p ListParams) ([]Raw, error) {
	q := url.Values{}
	q.Set("outType", "1")
	setInt(q, "pageNum", p.Page)
	setInt(q, "pageSize", p.PageSize)
	setStr(q, "srchTraOrganNm", p.Organization)
	setStr(q, "srchTraStDt", p.StartDate)
	setStr(q, "srchTraEndDt", p.EndDate)
	setStr(q, "sortCol", p.SortCol)
	setStr(q, "sort", p.SortDir)
	setStr(q, "srchTrprId", p.CourseID)

	return c.fetch(ctx, hc, EndpointList, c.listURL, q, listPath)
}

// Detail queries the detail endpoint. The result holds zero or one record in practice.
func (c *Client) Detail(ctx context.Context, p DetailParams) ([]Raw, error) {
	q := url.Values{}
	q.Set("outType", "2")
	setStr(q, "srchTrprId", p.CourseID)
	setStr(q, "srchTrprDegr", p.SessionIndex)
	setStr(q, "srchTorgId", p.InstitutionID)

	return c.fetch(ctx, c.detailHTTP, EndpointDetail, c.detailURL, q, detailPath)
}

func (c *Client) fetch(ctx context.Context, hc *http.Client, endpoint, base string, q url.Values, path []string) (res []Raw, err error) {
	start := time.Now()
	defer func() {
		result := "ok"
		if err != nil {
			result = "error"
		}
		metrics.UpstreamDuration.WithLabelValues(endpoint, result).Observe(time.Since(start).Seconds())
	}()

	q.Set("authKey", c.apiKey)
	q.Set("returnType", "XML")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+q.Encode(), nil)
	if err != nil {
		return nil, &FetchError{Endpoint: endpoint, Err: err}
	}

	resp, err := hc.Do(req)
	if err != nil {
		return nil, &FetchError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Endpoint: endpoint, StatusCode: resp.StatusCode, Err: ErrUnexpectedStatus}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &FetchError{Endpoint: endpoint, StatusCode: resp.StatusCode, Err: err}
	}

	res, err = ParseRecords(body, path)
	if err != nil {
		return nil, &FetchError{Endpoint: endpoint, StatusCode: resp.StatusCode, Err: err}
	}

	c.log.Debug("registry response parsed",
		slog.String("endpoint", endpoint),
		slog.Int("records", len(res)),
		slog.Duration("took", time.Since(start)),
	)
	return res, nil
}

// ParseRecords decodes an XML body and returns the records found under path.
// The first path element is the mandatory root node. A bare record is returned
// as a one-element slice and a missing or empty record node as an empty slice.
func ParseRecords(body []byte, path []string) ([]Raw, error) {
	doc, err := mxj.NewMapXml(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	var node any = map[string]any(doc)
	for i, key := range path {
		m, ok := node.(map[string]any)
		if !ok {
			if i == 0 {
				return nil, ErrMissingRoot
			}
			return []Raw{}, nil
		}
		next, ok := m[key]
		if !ok {
			if i == 0 {
				return nil, ErrMissingRoot
			}
			return []Raw{}, nil
		}
		node = next
	}

	return asRecords(node), nil
}

func asRecords(node any) []Raw {
	switch v := node.(type) {
	case map[string]any:
		return []Raw{Raw(v)}
	case []any:
		res := make([]Raw, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				res = append(res, Raw(m))
			}
		}
		return res
	default:
		return []Raw{}
	}
}

func setStr(q url.Values, key, val string) {
	if val != "" {
		q.Set(key, val)
	}
}

func setInt(q url.Values, key string, val int) {
	if val > 0 {
		q.Set(key, strconv.Itoa(val))
	}
}
