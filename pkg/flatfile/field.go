package flatfile

import (
	"strconv"
	"strings"
	"time"

	"github.com/ginjaninja78/nibrs-flatfile/pkg/nibrs"
)

// DateLayout is the flat-file date format (yyyyMMdd).
const DateLayout = "20060102"

// between returns the 1-based inclusive columns [start, end] of s, clipped to
// the line. It never panics.
func between(s string, start, end int) string {
	if start < 1 {
		start = 1
	}
	if end > len(s) {
		end = len(s)
	}
	if start > end {
		return ""
	}
	return s[start-1 : end]
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// =============================================================================
// FIELD READER
// =============================================================================

// fieldReader extracts positional fields from one segment and records a
// numbered error for every field that fails coercion. A failed field is
// returned as Invalid and extraction carries on with the next field.
type fieldReader struct {
	seg  *Segment
	errs []nibrs.Error

	// withinID is attached to errors once the builder knows which child
	// segment it is reading.
	withinID string
}

func newFieldReader(seg *Segment) *fieldReader {
	return &fieldReader{seg: seg}
}

func (r *fieldReader) str(start, end int) string {
	return r.seg.Field(start, end)
}

func (r *fieldReader) fail(code nibrs.ErrorCode, dataElement, value string) {
	e := r.seg.newError(code, dataElement, value)
	e.WithinSegmentID = r.withinID
	r.errs = append(r.errs, e)
}

// checkLength accepts the segment when its length is one of legal. Otherwise it
// records one "<level>01" error and returns false; the caller must then skip
// every kind-specific field.
func (r *fieldReader) checkLength(legal ...int) bool {
	n := r.seg.Length()
	for _, l := range legal {
		if n == l {
			return true
		}
	}
	r.fail(nibrs.SegmentCode(r.seg.Level, "01"), nibrs.DESegmentLength, strconv.Itoa(n))
	return false
}

// integer reads an unsigned integer field.
func (r *fieldReader) integer(start, end int, code nibrs.ErrorCode, dataElement string) nibrs.Parsed[int] {
	raw := r.str(start, end)
	if raw == "" {
		return nibrs.MissingValue[int]()
	}
	if !isDigits(raw) {
		r.fail(code, dataElement, raw)
		return nibrs.InvalidValue[int]()
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		r.fail(code, dataElement, raw)
		return nibrs.InvalidValue[int]()
	}
	return nibrs.ValueOf(v)
}

// date reads a yyyyMMdd field.
func (r *fieldReader) date(start, end int, code nibrs.ErrorCode, dataElement string) nibrs.Parsed[time.Time] {
	raw := r.str(start, end)
	if raw == "" {
		return nibrs.MissingValue[time.Time]()
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		r.fail(code, dataElement, raw)
		return nibrs.InvalidValue[time.Time]()
	}
	return nibrs.ValueOf(t)
}

// decimal parses an already-assembled decimal string.
func (r *fieldReader) decimal(raw string, code nibrs.ErrorCode, dataElement string) nibrs.Parsed[float64] {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nibrs.MissingValue[float64]()
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		r.fail(code, dataElement, raw)
		return nibrs.InvalidValue[float64]()
	}
	return nibrs.ValueOf(v)
}

// codes fills slots with single fields at base + i*stride, stopping at the
// first blank.
func (r *fieldReader) codes(slots *nibrs.Slots[string], base, width, stride int) {
	for i := 0; i < slots.Cap(); i++ {
		start := base + i*stride
		v := r.str(start, start+width-1)
		if v == "" {
			return
		}
		slots.Append(v)
	}
}

// =============================================================================
// AGE
// =============================================================================

// age decodes the 4-character age field at [start, start+3].
//
// DECODING RULES:
//   - blank                 -> Missing
//   - "NN", "NB", "BB"      -> categorical; an error unless on a victim segment
//   - "00"                  -> categorical "unknown"
//   - two digits            -> scalar age
//   - four digits           -> range; "00" start and min > max are errors
//   - three characters, or a range with a non-numeric second half -> <seg>09
//   - anything else         -> the segment's non-numeric age error
func (r *fieldReader) age(start int, dataElement string) nibrs.Parsed[nibrs.Age] {
	raw := r.seg.RawField(start, start+3)
	trimmed := strings.TrimSpace(raw)
	level := r.seg.Level

	invalid := func(code nibrs.ErrorCode) nibrs.Parsed[nibrs.Age] {
		r.fail(code, dataElement, raw)
		return nibrs.InvalidValue[nibrs.Age]()
	}

	switch len(trimmed) {
	case 0:
		return nibrs.MissingValue[nibrs.Age]()

	case 2:
		switch trimmed {
		case nibrs.AgeCodeNeonate, nibrs.AgeCodeNewborn, nibrs.AgeCodeBaby:
			if level != LevelVictim {
				return invalid(nonNumericAgeCode(level))
			}
			a, _ := nibrs.NewCategoricalAge(trimmed)
			return nibrs.ValueOf(a)
		case nibrs.AgeCodeUnknown:
			a, _ := nibrs.NewCategoricalAge(trimmed)
			return nibrs.ValueOf(a)
		}
		if !isDigits(trimmed) {
			return invalid(nonNumericAgeCode(level))
		}
		years, _ := strconv.Atoi(trimmed)
		return nibrs.ValueOf(nibrs.NewNumericAge(years))

	case 4:
		low, high := trimmed[:2], trimmed[2:]
		if !isDigits(low) {
			return invalid(nonNumericAgeCode(level))
		}
		if !isDigits(high) {
			return invalid(nibrs.SegmentCode(level, "09"))
		}
		youngest, _ := strconv.Atoi(low)
		oldest, _ := strconv.Atoi(high)
		if youngest == 0 {
			return invalid(nibrs.SegmentCode(level, "22"))
		}
		if youngest > oldest {
			return invalid(nibrs.SegmentCode(level, "10"))
		}
		return nibrs.ValueOf(nibrs.NewAgeRange(youngest, oldest))

	case 3:
		return invalid(nibrs.SegmentCode(level, "09"))

	default:
		return invalid(nonNumericAgeCode(level))
	}
}

// nonNumericAgeCode returns the "age must be numeric" error for a level.
func nonNumericAgeCode(level byte) nibrs.ErrorCode {
	switch level {
	case LevelVictim:
		return "404"
	case LevelOffender:
		return "556"
	case LevelArrestee:
		return "664"
	case LevelGroupB:
		return "757"
	default:
		return nibrs.SegmentCode(level, "04")
	}
}
