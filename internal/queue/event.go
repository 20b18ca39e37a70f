// Package queue defines message payloads exchanged over the message broker
// and the consumer that processes CSV import jobs out-of-band from the
// request pipeline.
package queue

// importQueueName is the durable queue carrying CSV import jobs.
const importQueueName = "parts.csv-import"

// CSVImportJob is published when a client uploads a parts CSV. The API
// only stages the file and enqueues this reference; the worker does the
// actual row-by-row import. The payload deliberately carries a file
// path rather than file contents so large uploads never transit the
// broker.
type CSVImportJob struct {
	FilePath   string `json:"file_path"`
	UploadedBy string `json:"uploaded_by"` // user id of the uploader
	UploadedAt string `json:"uploaded_at"` // RFC3339 UTC
}
