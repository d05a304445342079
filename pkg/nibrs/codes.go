package nibrs

// Structural data-element names used where the FBI specification has no
// numbered element.
const (
	DESegmentLength      = "Segment Length"
	DESegmentLevel       = "Segment Level"
	DEMonthOfSubmission  = "Month of Submission"
	DEYearOfSubmission   = "Year of Submission"
	DEZeroReportingMonth = "Zero Reporting Month"
	DEZeroReportingYear  = "Zero Reporting Year"
)

// FBI data-element numbers referenced by the segment builders.
const (
	DEIncidentDate           = "3"
	DEClearanceDate          = "5"
	DEPremisesEntered        = "10"
	DEValueOfProperty        = "16"
	DEDateRecovered          = "17"
	DEStolenVehicles         = "18"
	DERecoveredVehicles      = "19"
	DEDrugQuantity           = "21"
	DEVictimSequenceNumber   = "23"
	DEVictimAge              = "26"
	DEOffenderNumber         = "34"
	DEOffenderSequenceNumber = "36"
	DEOffenderAge            = "37"
	DEArresteeSequenceNumber = "40"
	DEArrestDate             = "42"
	DEArresteeAge            = "47"
)

// Error codes produced by the flat-file reader.
const (
	CodeZeroMandatory       ErrorCode = "001"
	CodeInvalidSegmentLevel ErrorCode = "051"
	CodeZeroReportMonth     ErrorCode = "090"
	CodeZeroReportYear      ErrorCode = "091"
	CodeAdminMandatory      ErrorCode = "101"
	CodeInvalidHour         ErrorCode = "104"
	CodeInvalidDate         ErrorCode = "105"
	CodeOffenseMandatory    ErrorCode = "201"
	CodePremisesEntered     ErrorCode = "204"
	CodePropertyMandatory   ErrorCode = "301"
	CodePropertyNumeric     ErrorCode = "302"
	CodePropertyValue       ErrorCode = "304"
	CodeDateRecovered       ErrorCode = "305"
	CodeVictimMandatory     ErrorCode = "401"
	CodeOffenderNumber      ErrorCode = "402"
	CodeOffenderMandatory   ErrorCode = "501"
	CodeArresteeMandatory   ErrorCode = "601"
	CodeArrestDate          ErrorCode = "605"
	CodeGroupBMandatory     ErrorCode = "701"
	CodeGroupBArrestDate    ErrorCode = "705"
)

// descriptions is the immutable FBI code→text table. It is only read after
// package initialisation.
var descriptions = map[ErrorCode]string{
	"001": "Mandatory field with missing or invalid data, or segment length is invalid",
	"051": "Invalid record level on submission",
	"090": "Zero-reporting month is not 01-12",
	"091": "Zero-reporting year is invalid",
	"101": "Administrative segment: mandatory field is blank or invalid, or segment length is invalid",
	"104": "Incident hour must be a valid numeric value",
	"105": "Date must be a valid date in the format YYYYMMDD",
	"201": "Offense segment: mandatory field is blank or invalid, or segment length is invalid",
	"204": "Offense segment: value must be numeric",
	"301": "Property segment: mandatory field is blank or invalid, or segment length is invalid",
	"302": "Property segment: value must be numeric",
	"304": "Value of property must be numeric",
	"305": "Date recovered must be a valid date in the format YYYYMMDD",
	"401": "Victim segment: mandatory field is blank or invalid, or segment length is invalid",
	"402": "Offender number to be related must be numeric",
	"404": "Victim segment: value entered is not a valid code or age",
	"409": "Victim age contains more than two characters; an age range must be four digits",
	"410": "Victim age range: the first age must be less than the second",
	"422": "Victim age range cannot start with 00",
	"501": "Offender segment: mandatory field is blank or invalid, or segment length is invalid",
	"509": "Offender age contains more than two characters; an age range must be four digits",
	"510": "Offender age range: the first age must be less than the second",
	"522": "Offender age range cannot start with 00",
	"556": "Offender age must be numeric digits or 00",
	"601": "Arrestee segment: mandatory field is blank or invalid, or segment length is invalid",
	"605": "Arrest date must be a valid date in the format YYYYMMDD",
	"609": "Arrestee age contains more than two characters; an age range must be four digits",
	"610": "Arrestee age range: the first age must be less than the second",
	"622": "Arrestee age range cannot start with 00",
	"664": "Arrestee age must be numeric digits or 00",
	"701": "Group B arrest segment: mandatory field is blank or invalid, or segment length is invalid",
	"705": "Arrest date must be a valid date in the format YYYYMMDD",
	"709": "Arrestee age contains more than two characters; an age range must be four digits",
	"710": "Arrestee age range: the first age must be less than the second",
	"722": "Arrestee age range cannot start with 00",
	"757": "Arrestee age must be numeric digits or 00",
}

// Describe returns the FBI text for code, or a generic text for codes the
// table does not know.
func Describe(code ErrorCode) string {
	if d, ok := descriptions[code]; ok {
		return d
	}
	return "Error " + string(code)
}

// SegmentCode builds a segment-relative code such as "401" from the segment
// level '4' and the suffix "01".
func SegmentCode(level byte, suffix string) ErrorCode {
	return ErrorCode(string(level) + suffix)
}
