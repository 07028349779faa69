package models

import "time"

// PresignedURL is a short-lived object storage link for a resume document.
type PresignedURL struct {
	Key       string
	URL       string
	ExpiresAt time.Time
}
