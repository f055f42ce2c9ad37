package models

import "time"

// UploadStatus is the lifecycle phase of a staged upload item.
type UploadStatus string

// Staged upload statuses.
//
// A staged item moves pending -> uploading -> success on the simulated
// transfer. StatusError is terminal and only reachable when a selection
// fails validation; a rejected file is never staged, so the error status
// never coexists with uploading.
const (
	StatusPending   UploadStatus = "pending"
	StatusUploading UploadStatus = "uploading"
	StatusSuccess   UploadStatus = "success"
	StatusError     UploadStatus = "error"
)

// StagedUpload is a locally selected file awaiting or undergoing
// simulated upload. No real bytes move; progress is advanced by the
// staging area's ticker.
type StagedUpload struct {
	ID          string       `json:"id"`
	FileName    string       `json:"file_name"`
	SizeBytes   int64        `json:"size_bytes"`
	ContentType string       `json:"content_type"`
	Progress    int          `json:"progress"` // 0-100
	Status      UploadStatus `json:"status"`
	Reason      string       `json:"reason,omitempty"` // set when Status is error
	StagedAt    time.Time    `json:"staged_at"`
	FinishedAt  *time.Time   `json:"finished_at,omitempty"`
}

// Done returns true once the item has reached a terminal status.
func (s *StagedUpload) Done() bool {
	return s.Status == StatusSuccess || s.Status == StatusError
}
