package calendarsync

// ErrorType classifies a structural validation failure.
type ErrorType string

const (
	ErrorMissingDate       ErrorType = "MISSING_DATE"
	ErrorInvalidDate       ErrorType = "INVALID_DATE"
	ErrorMissingTitle      ErrorType = "MISSING_TITLE"
	ErrorInvalidAssignedTo ErrorType = "INVALID_ASSIGNED_TO"
)

type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// WarningType classifies a non-blocking validation finding.
type WarningType string

const (
	WarningPotentialDuplicate WarningType = "POTENTIAL_DUPLICATE"
	WarningUnusualTime        WarningType = "UNUSUAL_TIME"
	WarningFarFutureDate      WarningType = "FAR_FUTURE_DATE"
)

type ValidationError struct {
	EventID    string    `json:"event_id"`
	EventTitle string    `json:"event_title"`
	Type       ErrorType `json:"error_type"`
	Message    string    `json:"message"`
	Severity   Severity  `json:"severity"`
}

type ValidationWarning struct {
	EventID    string      `json:"event_id"`
	EventTitle string      `json:"event_title"`
	Type       WarningType `json:"warning_type"`
	Message    string      `json:"message"`
}

type DuplicateEntry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Date  string `json:"date"`
}

type DuplicateGroup struct {
	Events []DuplicateEntry `json:"events"`
	Reason string           `json:"reason"`
}

// ValidationResult is computed fresh on every call; it has no lifecycle of
// its own.
type ValidationResult struct {
	IsValid    bool                `json:"is_valid"`
	Errors     []ValidationError   `json:"errors"`
	Warnings   []ValidationWarning `json:"warnings"`
	EventCount int                 `json:"event_count"`
	Duplicates []DuplicateGroup    `json:"duplicates"`
}

// Clean reports whether nothing at all was flagged, duplicates included.
func (r *ValidationResult) Clean() bool {
	return r.IsValid && len(r.Warnings) == 0 && len(r.Duplicates) == 0
}

// Strategy names the conflict-resolution outcome for one definition.
type Strategy string

const (
	StrategyUseCanonical Strategy = "use_canonical"
	StrategyKeepExisting Strategy = "keep_existing"
)

// Resolution reports what reconciling a single canonical definition did.
type Resolution struct {
	DefinitionID string   `json:"definition_id"`
	Strategy     Strategy `json:"strategy"`
	Action       string   `json:"action"`
	CreatedID    string   `json:"created_id,omitempty"`
	UpdatedID    string   `json:"updated_id,omitempty"`
	DeletedIDs   []string `json:"deleted_ids,omitempty"`
	// ManualReview lists events whose titles matched keywords from more
	// than one category; they are never resolved automatically.
	ManualReview []string `json:"manual_review,omitempty"`
}

// Writes reports how many store writes the resolution issued.
func (r *Resolution) Writes() int {
	n := len(r.DeletedIDs)
	if r.CreatedID != "" {
		n++
	}
	if r.UpdatedID != "" {
		n++
	}
	return n
}

type SyncResult struct {
	Success          bool              `json:"success"`
	Message          string            `json:"message"`
	EventsProcessed  int               `json:"events_processed"`
	Errors           []string          `json:"errors"`
	Warnings         []string          `json:"warnings"`
	ManualReview     []string          `json:"manual_review,omitempty"`
	Resolutions      []Resolution      `json:"resolutions,omitempty"`
	ValidationResult *ValidationResult `json:"validation_result,omitempty"`
}

type HealthReport struct {
	Healthy         bool     `json:"healthy"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
}
