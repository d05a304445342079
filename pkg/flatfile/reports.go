// =============================================================================
// NIBRS Flat File - Top-Level Segment Builders
// =============================================================================
//
// Builders for the three segment levels that open a report:
//
//   0  Zero report            (length 43)
//   1  Administrative/Group A (length 87, or 88 with the cargo-theft flag)
//   7  Group B arrest         (length 66)
//
// Each builder first decodes the common header from the envelope, then checks
// the line length. An illegal length stops extraction after the header.
//
// =============================================================================

package flatfile

import (
	"github.com/ginjaninja78/nibrs-flatfile/pkg/nibrs"
)

// readHeader fills the fields every report shares. Month and year of
// submission are the only header fields that need coercion.
func readHeader(r *fieldReader) nibrs.ReportHeader {
	seg := r.seg
	code := nibrs.SegmentCode(seg.Level, "01")
	return nibrs.ReportHeader{
		ORI:           seg.ORI,
		UniqueID:      seg.UniqueID,
		ActionType:    seg.ActionType,
		CityIndicator: seg.CityIndicator,
		MonthOfTape:   r.integer(7, 8, code, nibrs.DEMonthOfSubmission),
		YearOfTape:    r.integer(9, 12, code, nibrs.DEYearOfSubmission),
		Source:        seg.Source,
		Span:          nibrs.Span{First: seg.Source.Line, Last: seg.Source.Line},
	}
}

// buildReport opens a report from a top-level segment. It panics if seg is
// not a top-level level; the assembler checks that before calling.
func buildReport(seg *Segment) (nibrs.Report, []nibrs.Error) {
	switch seg.Level {
	case LevelZero:
		r, errs := buildZeroReport(seg)
		return r, errs
	case LevelAdministrative:
		r, errs := buildGroupAReport(seg)
		return r, errs
	case LevelGroupB:
		r, errs := buildGroupBReport(seg)
		return r, errs
	}
	panic("flatfile: buildReport called with level " + string(seg.Level))
}

// =============================================================================
// ZERO REPORT
// =============================================================================

func buildZeroReport(seg *Segment) (*nibrs.ZeroReport, []nibrs.Error) {
	r := newFieldReader(seg)
	report := &nibrs.ZeroReport{
		ReportHeader:   readHeader(r),
		IncidentNumber: seg.UniqueID,
	}
	if !r.checkLength(legalLengths[LevelZero]...) {
		return report, r.errs
	}

	report.ReportMonth = r.integer(38, 39, nibrs.CodeZeroReportMonth, nibrs.DEZeroReportingMonth)
	report.ReportYear = r.integer(40, 43, nibrs.CodeZeroReportYear, nibrs.DEZeroReportingYear)
	return report, r.errs
}

// =============================================================================
// GROUP A (ADMINISTRATIVE SEGMENT)
// =============================================================================

func buildGroupAReport(seg *Segment) (*nibrs.GroupAReport, []nibrs.Error) {
	r := newFieldReader(seg)
	report := &nibrs.GroupAReport{
		ReportHeader:   readHeader(r),
		IncidentNumber: seg.UniqueID,
	}
	if !r.checkLength(legalLengths[LevelAdministrative]...) {
		return report, r.errs
	}

	report.IncidentDate = r.date(38, 45, nibrs.CodeInvalidDate, nibrs.DEIncidentDate)
	report.ReportDateIndicator = r.str(46, 46)
	report.IncidentHour = r.integer(47, 48, nibrs.CodeInvalidHour, nibrs.DEIncidentDate)
	report.ExceptionalClearance = r.str(49, 49)
	report.ExceptionalClearanceDate = r.date(50, 57, nibrs.CodeInvalidDate, nibrs.DEClearanceDate)

	if seg.Length() == adminCargoTheftLength {
		report.IncludesCargoTheft = true
		report.CargoTheft = r.str(88, 88)
	}
	return report, r.errs
}

// =============================================================================
// GROUP B ARREST
// =============================================================================

func buildGroupBReport(seg *Segment) (*nibrs.GroupBArrestReport, []nibrs.Error) {
	r := newFieldReader(seg)
	report := &nibrs.GroupBArrestReport{
		ReportHeader: readHeader(r),
	}
	if !r.checkLength(legalLengths[LevelGroupB]...) {
		return report, r.errs
	}

	a := &nibrs.Arrestee{
		Source:                  seg.Source,
		ArrestTransactionNumber: seg.UniqueID,
	}
	r.withinID = r.str(38, 39)
	a.SequenceNumber = r.integer(38, 39, nibrs.CodeGroupBMandatory, nibrs.DEArresteeSequenceNumber)
	a.ArrestDate = r.date(40, 47, nibrs.CodeGroupBArrestDate, nibrs.DEArrestDate)
	a.TypeOfArrest = r.str(48, 48)
	a.UCROffenseCode = r.str(49, 51)
	a.ArmedWith = readArmedWith(r, 52)
	a.Age = r.age(58, nibrs.DEArresteeAge)
	a.Sex = r.str(62, 62)
	a.Race = r.str(63, 63)
	a.Ethnicity = r.str(64, 64)
	a.ResidentStatus = r.str(65, 65)
	a.DispositionOfUnder18 = r.str(66, 66)

	report.Arrestee = a
	return report, r.errs
}

// readArmedWith reads the two (armed-with, automatic) pairs starting at base.
func readArmedWith(r *fieldReader, base int) nibrs.Slots[nibrs.WeaponForce] {
	return readWeaponPairs(r, base, nibrs.ArmedWithSlots)
}

// readWeaponPairs reads up to n pairs of a 2-character code followed by a
// 1-character automatic flag, stopping at the first blank code.
func readWeaponPairs(r *fieldReader, base, n int) nibrs.Slots[nibrs.WeaponForce] {
	slots := nibrs.NewSlots[nibrs.WeaponForce](n)
	for i := 0; i < n; i++ {
		start := base + i*3
		code := r.str(start, start+1)
		if code == "" {
			break
		}
		slots.Append(nibrs.WeaponForce{
			Code:      code,
			Automatic: r.str(start+2, start+2),
		})
	}
	return slots
}
