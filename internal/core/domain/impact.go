package domain

// ItemImpact describes what deleting a log does (or did) to one item.
type ItemImpact struct {
	ItemCode         string     `json:"itemCode"`
	PreviousQuantity int        `json:"previousQuantity"`
	NewQuantity      int        `json:"newQuantity"`
	PreviousStatus   ItemStatus `json:"previousStatus"`
	NewStatus        ItemStatus `json:"newStatus"`
}

// DeletionPreview is the result of inspecting a log deletion without applying it.
type DeletionPreview struct {
	Log               VerificationLog `json:"log"`
	CanDelete         bool            `json:"canDelete"`
	Reason            string          `json:"reason,omitempty"`
	ImpactDescription string          `json:"impactDescription"`
	Impact            *ItemImpact     `json:"impact,omitempty"`
}

// DeletionResult is returned once a log deletion has been applied.
type DeletionResult struct {
	DeletedLogID      string            `json:"deletedLogID"`
	DeletionLog       VerificationLog   `json:"deletionLog"`
	ImpactDescription string            `json:"impactDescription"`
	Impact            *ItemImpact       `json:"impact,omitempty"`
	AffectedItem      *VerificationItem `json:"affectedItem,omitempty"`
	SessionStats      SessionStats      `json:"updatedSessionStats"`
}

// RecordingResult is returned after a count or correction was applied to an item.
type RecordingResult struct {
	Item         VerificationItem `json:"item"`
	Log          VerificationLog  `json:"log"`
	SessionStats SessionStats     `json:"sessionStats"`
}
