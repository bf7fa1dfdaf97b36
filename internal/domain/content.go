package domain

import (
	"time"
)

// Well-known site content keys.
const (
	ContentKeyAboutMe      = "about_me"
	ContentKeyCvURL        = "cv_url"
	ContentKeyCvPreviewURL = "cv_preview_url"
)

// SiteContent is a free-form key/value pair of site copy. Values are stored
// verbatim, including blank-line paragraph breaks.
type SiteContent struct {
	Key       string    `json:"content_key"`
	Value     string    `json:"content_value"`
	UpdatedAt time.Time `json:"updated_at"`
}
