package bridge

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"
)

// Status is the server-side lifecycle state of a job. The client only ever
// moves a job forward: queued -> picked -> imported | error.
type Status string

const (
	StatusQueued   Status = "queued"
	StatusPicked   Status = "picked"
	StatusImported Status = "imported"
	StatusError    Status = "error"
)

// Job describes one queued model import, as returned by
// GET /api/dcc/blender/jobs. Entries are accepted as-is; field validation
// happens at time of use.
type Job struct {
	JobID       string `json:"jobId"`
	AssetID     string `json:"assetId"`
	Format      string `json:"format"`
	DownloadURL string `json:"downloadUrl"`
}

// jobListResponse mirrors the /api/dcc/blender/jobs payload. The jobs field
// is kept raw so a missing or malformed value degrades to an empty list
// instead of failing the whole poll.
type jobListResponse struct {
	Jobs json.RawMessage `json:"jobs"`
}

// decodeJobs turns the raw jobs field into a slice, treating an absent or
// malformed value as empty rather than an error.
func (r jobListResponse) decodeJobs() []Job {
	if len(r.Jobs) == 0 {
		return nil
	}
	var jobs []Job
	if err := json.Unmarshal(r.Jobs, &jobs); err != nil {
		return nil
	}
	return jobs
}

// pairRequest is the body for PUT /api/dcc/blender/pair.
type pairRequest struct {
	Code string `json:"code"`
}

// pairResponse mirrors the pairing reply.
type pairResponse struct {
	Token string `json:"token"`
}

// ackRequest is the body for POST /api/dcc/blender/jobs/{id}/ack.
type ackRequest struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

// knownSuffixes are the file extensions the import pipeline can dispatch on.
var knownSuffixes = map[string]bool{
	".glb":  true,
	".gltf": true,
	".obj":  true,
	".stl":  true,
}

const defaultSuffix = ".glb"

// Suffix resolves the payload file extension for the job. The declared
// format wins when it names a supported type; otherwise the download URL's
// path extension is used when supported; otherwise ".glb". The result is
// decided once per job and trusted by the importer afterwards.
func (j Job) Suffix() string {
	format := strings.ToLower(strings.TrimSpace(j.Format))
	if format != "" && knownSuffixes["."+format] {
		return "." + format
	}

	parsed, err := url.Parse(strings.TrimSpace(j.DownloadURL))
	if err != nil {
		return defaultSuffix
	}
	ext := strings.ToLower(path.Ext(parsed.Path))
	if knownSuffixes[ext] {
		return ext
	}
	return defaultSuffix
}
