package hrdnet

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/damoacook/damoacook-back/internal/lib/sl"
	"github.com/damoacook/damoacook-back/internal/lib/status"
	"github.com/damoacook/damoacook-back/internal/models"
)

const (
	dateLayout      = "2006-01-02"
	undeterminedDay = "미정"
	registrationURL = "https://www.work24.go.kr/hr/a/a/3100/selectTracseDetl.do"
)

var dateLayouts = []string{dateLayout, "20060102", "2006.01.02"}

var errExpired = errors.New("course already ended")

// SessionAliases are the field names that carry the session (round) number.
var SessionAliases = []string{"trprDegr", "tracseTme"}

// InstitutionIDAliases are the field names that may carry the institution id,
// in priority order. Deployments of the registry disagree on which one is filled.
var InstitutionIDAliases = []string{
	"trainstCstmrId",
	"trainstCstmrID",
	"instIno",
	"torgId",
	"srchTorgId",
	"cstmrId",
}

// Dialect maps canonical course fields to the ordered vendor aliases of one endpoint.
// For each field the first alias holding a non-empty value wins.
type Dialect struct {
	Name            string
	CourseID        []string
	SessionIndex    []string
	InstitutionID   []string
	InstitutionName []string
	Title           []string
	Location        []string
	Contact         []string
	Summary         []string
	Satisfaction    []string
	TargetCode      []string
	StartDate       []string
	EndDate         []string
	Capacity        []string
	Applied         []string
	Graduates       []string
	Fee             []string
	EmplRate6m      []string
	NonInsuredRate  []string
}

// ListDialect is the field table of the list endpoint (310L01).
var ListDialect = Dialect{
	Name:            "310L01",
	CourseID:        []string{"trprId"},
	SessionIndex:    SessionAliases,
	InstitutionID:   InstitutionIDAliases,
	InstitutionName: []string{"subTitle", "inoNm"},
	Title:           []string{"title", "trprNm"},
	Location:        []string{"address", "addr"},
	Contact:         []string{"telNo"},
	Summary:         []string{"contents"},
	Satisfaction:    []string{"stdgScor"},
	TargetCode:      []string{"trainTargetCd"},
	StartDate:       []string{"traStartDate"},
	EndDate:         []string{"traEndDate"},
	Capacity:        []string{"yardMan"},
	Applied:         []string{"regCourseMan"},
}

// DetailDialect is the field table of the detail endpoint (310L03).
var DetailDialect = Dialect{
	Name:            "310L03",
	CourseID:        []string{"trprId"},
	SessionIndex:    SessionAliases,
	InstitutionID:   InstitutionIDAliases,
	InstitutionName: []string{"inoNm", "subTitle"},
	Title:           []string{"trprNm", "title"},
	Location:        []string{"addr", "address"},
	Contact:         []string{"trprChapTel", "telNo"},
	Summary:         []string{"contents", "trprTarget"},
	Satisfaction:    []string{"stdgScor"},
	TargetCode:      []string{"trainTargetCd"},
	StartDate:       []string{"trStaDt", "traStartDate"},
	EndDate:         []string{"trEndDt", "traEndDate"},
	Capacity:        []string{"totFxnum", "yardMan"},
	Applied:         []string{"totTrpCnt", "regCourseMan"},
	Graduates:       []string{"finiCnt"},
	Fee:             []string{"totTrco"},
	EmplRate6m:      []string{"eiEmplRate6"},
	NonInsuredRate:  []string{"hrdEmplRate6"},
}

// Lookup returns the first non-empty value among aliases.
func Lookup(raw Raw, aliases []string) string {
	for _, key := range aliases {
		if v := text(raw[key]); v != "" {
			return v
		}
	}
	return ""
}

// NormalizeList converts list records, preserving upstream order. Records with a
// missing or unparsable date or headcount are dropped and logged, and so are
// records that already ended before today.
func NormalizeList(raws []Raw, today time.Time, log *slog.Logger) []models.CourseRecord {
	const op = "hrdnet.NormalizeList"

	res := make([]models.CourseRecord, 0, len(raws))
	for _, raw := range raws {
		rec, err := normalizeListRecord(raw, today)
		if errors.Is(err, errExpired) {
			continue
		}
		var perr *RecordParseError
		if errors.As(err, &perr) {
			log.Warn("record dropped", sl.Op(op), sl.Err(err))
			continue
		}
		res = append(res, rec)
	}
	return res
}

func normalizeListRecord(raw Raw, today time.Time) (models.CourseRecord, error) {
	d := ListDialect
	rec := base(raw, d)
	loc := today.Location()

	start, err := requireDate(raw, d.StartDate, loc, rec.CourseID)
	if err != nil {
		return rec, err
	}
	end, err := requireDate(raw, d.EndDate, loc, rec.CourseID)
	if err != nil {
		return rec, err
	}
	if status.Day(end).Before(status.Day(today)) {
		return rec, errExpired
	}

	capacity, err := count(raw, d.Capacity, rec.CourseID)
	if err != nil {
		return rec, err
	}
	applied, err := count(raw, d.Applied, rec.CourseID)
	if err != nil {
		return rec, err
	}

	rec.StartDate = start.Format(dateLayout)
	rec.EndDate = end.Format(dateLayout)
	apply(&rec, status.Compute(start, end, capacity, applied, today), capacity, applied)
	return rec, nil
}

// NormalizeDetail converts one detail record. It never drops the record: unknown
// dates become "미정" and unusable headcounts become zero. Identifiers missing from
// the record are taken from the query.
func NormalizeDetail(raw Raw, q models.DetailQuery, today time.Time) models.CourseRecord {
	d := DetailDialect
	rec := base(raw, d)
	loc := today.Location()

	if rec.CourseID == "" {
		rec.CourseID = q.CourseID
	}
	if rec.SessionIndex == "" {
		rec.SessionIndex = q.SessionIndex
	}
	if rec.InstitutionID == nil && q.InstitutionID != "" {
		id := q.InstitutionID
		rec.InstitutionID = &id
	}

	start, _ := parseDate(Lookup(raw, d.StartDate), loc)
	end, _ := parseDate(Lookup(raw, d.EndDate), loc)
	capacity, _ := count(raw, d.Capacity, rec.CourseID)
	applied, _ := count(raw, d.Applied, rec.CourseID)

	rec.StartDate, rec.EndDate = undeterminedDay, undeterminedDay
	if !start.IsZero() {
		rec.StartDate = start.Format(dateLayout)
	}
	if !end.IsZero() {
		rec.EndDate = end.Format(dateLayout)
	}
	apply(&rec, status.Compute(start, end, capacity, applied, today), capacity, applied)

	rec.Graduates = Lookup(raw, d.Graduates)
	rec.Fee = Lookup(raw, d.Fee)
	rec.EmploymentRate6m = Lookup(raw, d.EmplRate6m)
	rec.NonInsuredEmploymentRate6m = Lookup(raw, d.NonInsuredRate)
	rec.RegistrationURL = registrationLink(rec)
	return rec
}

func base(raw Raw, d Dialect) models.CourseRecord {
	rec := models.CourseRecord{
		CourseID:          Lookup(raw, d.CourseID),
		SessionIndex:      Lookup(raw, d.SessionIndex),
		InstitutionName:   Lookup(raw, d.InstitutionName),
		Title:             Lookup(raw, d.Title),
		Location:          Lookup(raw, d.Location),
		Contact:           Lookup(raw, d.Contact),
		Summary:           Lookup(raw, d.Summary),
		SatisfactionScore: Lookup(raw, d.Satisfaction),
		TargetCode:        Lookup(raw, d.TargetCode),
	}
	if id := Lookup(raw, d.InstitutionID); id != "" {
		rec.InstitutionID = &id
	}
	return rec
}

func apply(rec *models.CourseRecord, st status.Result, capacity, applied int) {
	rec.Capacity = capacity
	rec.Applied = applied
	rec.RemainingSlots = st.Remaining
	rec.StatusLabel = st.Label
	rec.DDay = st.Countdown
	rec.IsClosed = st.IsClosed
}

func registrationLink(rec models.CourseRecord) string {
	institution := ""
	if rec.InstitutionID != nil {
		institution = *rec.InstitutionID
	}
	return fmt.Sprintf("%s?tracseId=%s&tracseTme=%s&crseTracseSe=%s&trainstCstmrId=%s",
		registrationURL,
		url.QueryEscape(rec.CourseID),
		url.QueryEscape(rec.SessionIndex),
		url.QueryEscape(rec.TargetCode),
		url.QueryEscape(institution),
	)
}

func requireDate(raw Raw, aliases []string, loc *time.Location, courseID string) (time.Time, error) {
	v := Lookup(raw, aliases)
	if v == "" {
		return time.Time{}, &RecordParseError{CourseID: courseID, Field: aliases[0], Err: errors.New("missing date")}
	}
	t, err := parseDate(v, loc)
	if err != nil {
		return time.Time{}, &RecordParseError{CourseID: courseID, Field: aliases[0], Value: v, Err: err}
	}
	return t, nil
}

func parseDate(v string, loc *time.Location) (time.Time, error) {
	if v == "" {
		return time.Time{}, errors.New("empty date")
	}
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		if t, err = time.ParseInLocation(layout, v, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

func count(raw Raw, aliases []string, courseID string) (int, error) {
	v := strings.ReplaceAll(Lookup(raw, aliases), ",", "")
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, &RecordParseError{CourseID: courseID, Field: aliases[0], Value: v, Err: err}
	}
	if n < 0 {
		return 0, &RecordParseError{CourseID: courseID, Field: aliases[0], Value: v, Err: errors.New("negative count")}
	}
	return n, nil
}

// text flattens an mxj value to trimmed NFC text. Some upstream fields arrive
// with decomposed Hangul.
func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return norm.NFC.String(strings.TrimSpace(t))
	case map[string]any:
		return text(t["#text"])
	case []any:
		if len(t) == 0 {
			return ""
		}
		return text(t[0])
	default:
		return norm.NFC.String(strings.TrimSpace(fmt.Sprint(t)))
	}
}
