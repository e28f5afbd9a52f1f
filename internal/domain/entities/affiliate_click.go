package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// AffiliateClick represents a recorded visit event attributing potential
// commission to a referral source. Converted transitions false->true at
// most once; the commission amount is set only at that transition.
type AffiliateClick struct {
	ClickID             string       `json:"clickId"`
	DealID              uuid.UUID    `json:"dealId"`
	UserID              *uuid.UUID   `json:"userId,omitempty"`
	IPAddress           string       `json:"ipAddress"`
	UserAgent           null.String  `json:"userAgent,omitempty"`
	Referrer            null.String  `json:"referrer,omitempty"`
	ClickTimestamp      time.Time    `json:"clickTimestamp"`
	Converted           bool         `json:"converted"`
	ConversionTimestamp null.Time    `json:"conversionTimestamp,omitempty"`
	CommissionAmount    null.Float64 `json:"commissionAmount,omitempty"`
}

// TrackClickInput carries requester metadata for click tracking
type TrackClickInput struct {
	DealID    uuid.UUID
	UserID    *uuid.UUID
	IPAddress string
	UserAgent string
	Referrer  string
}

// RedirectResult is the outcome of resolving an affiliate redirect
type RedirectResult struct {
	AffiliateURL string `json:"affiliateUrl"`
	ClickID      string `json:"clickId,omitempty"`
}
