package dto

// HealthResponse is the envelope for the health, liveness, and readiness
// probes. Details carries per-dependency state on the readiness probe and
// is omitted when a probe has nothing to report.
type HealthResponse struct {
	Status  string `json:"status"`
	Details any    `json:"details,omitempty"`
}
