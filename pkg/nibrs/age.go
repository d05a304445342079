package nibrs

import "fmt"

// Non-numeric age codes accepted by the flat file.
const (
	AgeCodeNeonate  = "NN"
	AgeCodeNewborn  = "NB"
	AgeCodeBaby     = "BB"
	AgeCodeUnknown  = "00"
	AgeTagNeonate   = "neonate"
	AgeTagFirstWeek = "first-week"
	AgeTagFirstYear = "first-year"
	AgeTagUnknown   = "unknown"
	daysPerAgeYear  = 365
)

var ageTags = map[string]string{
	AgeCodeNeonate: AgeTagNeonate,
	AgeCodeNewborn: AgeTagFirstWeek,
	AgeCodeBaby:    AgeTagFirstYear,
	AgeCodeUnknown: AgeTagUnknown,
}

// Age is a decoded 4-character age field.
//
// A numeric age has Min == Max. A range keeps Ranged set even when both ends
// are equal ("2525"). A categorical age keeps its code in Code and its tag in
// Tag, and never carries numbers.
type Age struct {
	Min    int
	Max    int
	Ranged bool
	Code   string
	Tag    string
}

// NewNumericAge returns a scalar age.
func NewNumericAge(years int) Age {
	return Age{Min: years, Max: years}
}

// NewAgeRange returns an age range.
func NewAgeRange(youngest, oldest int) Age {
	return Age{Min: youngest, Max: oldest, Ranged: true}
}

// NewCategoricalAge returns an age for one of the NN, NB, BB or 00 codes.
// ok is false for any other code.
func NewCategoricalAge(code string) (Age, bool) {
	tag, ok := ageTags[code]
	if !ok {
		return Age{}, false
	}
	return Age{Code: code, Tag: tag}, true
}

// IsCategorical reports whether the age is one of the coded values.
func (a Age) IsCategorical() bool { return a.Tag != "" }

// IsUnknown reports whether the age was coded "00".
func (a Age) IsUnknown() bool { return a.Code == AgeCodeUnknown }

// IsRange reports whether the age is a numeric range.
func (a Age) IsRange() bool { return !a.IsCategorical() && a.Ranged }

// Average returns the integer midpoint of a numeric age. ok is false for
// categorical ages.
func (a Age) Average() (avg int, ok bool) {
	if a.IsCategorical() {
		return 0, false
	}
	return (a.Min + a.Max) / 2, true
}

// IsYoungerThan compares two ages in days. With lenientRange the youngest end
// of a is compared with the oldest end of other; otherwise the oldest end of a
// must be below the youngest end of other.
func (a Age) IsYoungerThan(other Age, lenientRange bool) bool {
	thisMin, thisMax := a.days()
	thatMin, thatMax := other.days()
	if lenientRange {
		return thisMin < thatMax
	}
	return thisMax < thatMin
}

// IsOlderThan is the mirror of IsYoungerThan.
func (a Age) IsOlderThan(other Age, lenientRange bool) bool {
	thisMin, thisMax := a.days()
	thatMin, thatMax := other.days()
	if lenientRange {
		return thisMax > thatMin
	}
	return thisMin > thatMax
}

// days converts the age to a [min, max] span in days.
func (a Age) days() (int, int) {
	switch a.Code {
	case AgeCodeNeonate:
		return 0, 0
	case AgeCodeNewborn:
		return 1, 1
	case AgeCodeBaby:
		return 7, 7
	case AgeCodeUnknown:
		return 0, 0
	}
	return a.Min * daysPerAgeYear, a.Max * daysPerAgeYear
}

func (a Age) String() string {
	switch {
	case a.IsCategorical():
		return a.Tag
	case a.IsRange():
		return fmt.Sprintf("%d-%d", a.Min, a.Max)
	default:
		return fmt.Sprintf("%d", a.Min)
	}
}
