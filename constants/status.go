package constants

// Verification outcome labels (stored verbatim in history).
const (
	StatusVerified         = "Verified"
	StatusIssuesFound      = "Issues Found"
	StatusProcessingFailed = "Processing Failed"
)

// Registry check values.
const (
	RegistrationRegistered = "Registered"
	RegistrationFailed     = "Failed"
	TaxStatusCurrent       = "Current"
	TaxStatusUnknown       = "Unknown"
)

// Ownership classes.
const (
	OwnershipGovernment = "Government"
	OwnershipPrivate    = "Private"
)

// Unknown is the sentinel for any unmatched DocumentRecord field.
const Unknown = "Unknown"

// NotSpecified is substituted for missing values when rendering.
const NotSpecified = "Not specified"

// AlertLevel is the severity attached to a section alert.
type AlertLevel string

const (
	AlertInfo     AlertLevel = "info"
	AlertWarning  AlertLevel = "warning"
	AlertError    AlertLevel = "error"
	AlertCritical AlertLevel = "critical"
)

// JobKind selects which pipeline a queued file goes through.
type JobKind string

const (
	JobKindLand     JobKind = "land"
	JobKindContract JobKind = "contract"
)
