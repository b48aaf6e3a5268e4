// services/preference.go
package services

import "askyourvet-backend/models"

// Channels indicates which notification channels an owner should receive.
type Channels struct {
	SMS   bool
	Email bool
}

// ResolveChannels maps a stored preferred contact method to channels.
// Anything unrecognised, including the unset empty string, falls back to
// SMS only, the documented default.
func ResolveChannels(method string) Channels {
	switch method {
	case models.ContactMethodEmail:
		return Channels{Email: true}
	case models.ContactMethodBoth:
		return Channels{SMS: true, Email: true}
	default:
		return Channels{SMS: true}
	}
}
