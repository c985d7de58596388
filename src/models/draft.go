package models

// FormDraft is one respondent's in-progress answers for a multi-step form,
// keyed by (slug, versionId). When the server's current version no longer
// matches VersionID the draft is discarded, never merged.
type FormDraft struct {
	CurrentStepIndex     int                    `json:"currentStepIndex"`
	CompletedStepIndices []int                  `json:"completedStepIndices"`
	FormData             map[string]interface{} `json:"formData"`
	VersionID            string                 `json:"versionId"`
}
