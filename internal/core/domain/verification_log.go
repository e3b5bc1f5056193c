package domain

import (
	"fmt"
	"time"
)

// LogKind is the persisted discriminator of a log action.
type LogKind string

const (
	LogScan            LogKind = "scan"
	LogManualEntry     LogKind = "manual-entry"
	LogCorrection      LogKind = "correction"
	LogDeletion        LogKind = "deletion"
	LogSessionStart    LogKind = "session-start"
	LogSessionComplete LogKind = "session-complete"
)

// IsProtected reports whether logs of this kind can never be deleted.
func (k LogKind) IsProtected() bool {
	return k == LogSessionStart || k == LogSessionComplete
}

// IsItemCount reports whether the kind changes an item's verified quantity.
func (k LogKind) IsItemCount() bool {
	return k == LogScan || k == LogManualEntry || k == LogCorrection
}

// LogAction is the closed set of things a verification log can record. Only the
// variants declared in this file implement it.
type LogAction interface {
	Kind() LogKind
	isLogAction()
}

// ScanRecorded is a QR scan adding Quantity to the item's running tally.
type ScanRecorded struct {
	ItemCode         string `json:"itemCode"`
	PreviousQuantity int    `json:"previousQuantity"`
	Quantity         int    `json:"quantity"` // delta contributed, not the new total
}

// ManualEntryRecorded is a typed-in count adding Quantity to the running tally.
type ManualEntryRecorded struct {
	ItemCode         string `json:"itemCode"`
	PreviousQuantity int    `json:"previousQuantity"`
	Quantity         int    `json:"quantity"`
}

// CountCorrected replaced the item's verified quantity.
type CountCorrected struct {
	ItemCode         string `json:"itemCode"`
	PreviousQuantity int    `json:"previousQuantity"`
	NewQuantity      int    `json:"newQuantity"`
}

// LogDeleted records the removal of another log and its effect on the item.
// Quantities are nil when the deleted log had no item effect.
type LogDeleted struct {
	DeletedLogID     string  `json:"deletedLogID"`
	DeletedKind      LogKind `json:"deletedKind"`
	ItemCode         string  `json:"itemCode,omitempty"`
	PreviousQuantity *int    `json:"previousQuantity,omitempty"`
	NewQuantity      *int    `json:"newQuantity,omitempty"`
}

// SessionStarted marks session creation.
type SessionStarted struct{}

// SessionClosed marks session completion.
type SessionClosed struct{}

func (ScanRecorded) Kind() LogKind        { return LogScan }
func (ManualEntryRecorded) Kind() LogKind { return LogManualEntry }
func (CountCorrected) Kind() LogKind      { return LogCorrection }
func (LogDeleted) Kind() LogKind          { return LogDeletion }
func (SessionStarted) Kind() LogKind      { return LogSessionStart }
func (SessionClosed) Kind() LogKind       { return LogSessionComplete }

func (ScanRecorded) isLogAction()        {}
func (ManualEntryRecorded) isLogAction() {}
func (CountCorrected) isLogAction()      {}
func (LogDeleted) isLogAction()          {}
func (SessionStarted) isLogAction()      {}
func (SessionClosed) isLogAction()       {}

// VerificationLog is one append-only audit entry of a session.
type VerificationLog struct {
	LogID       string          `json:"logID"`
	SessionID   string          `json:"sessionID"`
	Sequence    int64           `json:"sequence"` // assigned by storage, orders logs within the store
	Action      LogAction       `json:"-"`
	PerformedBy string          `json:"performedBy"`
	PerformedAt time.Time       `json:"performedAt"`
	Details     string          `json:"details"`
	Metadata    RequestMetadata `json:"metadata"`
}

// Kind returns the discriminator of the log's action.
func (l VerificationLog) Kind() LogKind {
	if l.Action == nil {
		return ""
	}
	return l.Action.Kind()
}

// LogFields is the flattened, storage-friendly form of a LogAction.
type LogFields struct {
	Kind             LogKind
	ItemCode         *string
	PreviousQuantity *int
	NewQuantity      *int
	ReferenceLogID   *string
	ReferenceKind    *LogKind
}

// Flatten converts an action into nullable columns.
func Flatten(action LogAction) (LogFields, error) {
	switch a := action.(type) {
	case ScanRecorded:
		return LogFields{Kind: LogScan, ItemCode: &a.ItemCode, PreviousQuantity: &a.PreviousQuantity, NewQuantity: &a.Quantity}, nil
	case ManualEntryRecorded:
		return LogFields{Kind: LogManualEntry, ItemCode: &a.ItemCode, PreviousQuantity: &a.PreviousQuantity, NewQuantity: &a.Quantity}, nil
	case CountCorrected:
		return LogFields{Kind: LogCorrection, ItemCode: &a.ItemCode, PreviousQuantity: &a.PreviousQuantity, NewQuantity: &a.NewQuantity}, nil
	case LogDeleted:
		f := LogFields{Kind: LogDeletion, PreviousQuantity: a.PreviousQuantity, NewQuantity: a.NewQuantity, ReferenceLogID: &a.DeletedLogID, ReferenceKind: &a.DeletedKind}
		if a.ItemCode != "" {
			f.ItemCode = &a.ItemCode
		}
		return f, nil
	case SessionStarted:
		return LogFields{Kind: LogSessionStart}, nil
	case SessionClosed:
		return LogFields{Kind: LogSessionComplete}, nil
	default:
		return LogFields{}, fmt.Errorf("unknown log action %T", action)
	}
}

// Unflatten rebuilds the action from stored columns.
func Unflatten(f LogFields) (LogAction, error) {
	itemCode := ""
	if f.ItemCode != nil {
		itemCode = *f.ItemCode
	}
	switch f.Kind {
	case LogScan, LogManualEntry, LogCorrection:
		if f.ItemCode == nil || f.PreviousQuantity == nil || f.NewQuantity == nil {
			return nil, fmt.Errorf("log of kind %s is missing item fields", f.Kind)
		}
		switch f.Kind {
		case LogScan:
			return ScanRecorded{ItemCode: itemCode, PreviousQuantity: *f.PreviousQuantity, Quantity: *f.NewQuantity}, nil
		case LogManualEntry:
			return ManualEntryRecorded{ItemCode: itemCode, PreviousQuantity: *f.PreviousQuantity, Quantity: *f.NewQuantity}, nil
		default:
			return CountCorrected{ItemCode: itemCode, PreviousQuantity: *f.PreviousQuantity, NewQuantity: *f.NewQuantity}, nil
		}
	case LogDeletion:
		d := LogDeleted{ItemCode: itemCode, PreviousQuantity: f.PreviousQuantity, NewQuantity: f.NewQuantity}
		if f.ReferenceLogID != nil {
			d.DeletedLogID = *f.ReferenceLogID
		}
		if f.ReferenceKind != nil {
			d.DeletedKind = *f.ReferenceKind
		}
		return d, nil
	case LogSessionStart:
		return SessionStarted{}, nil
	case LogSessionComplete:
		return SessionClosed{}, nil
	default:
		return nil, fmt.Errorf("unknown log kind %q", f.Kind)
	}
}
