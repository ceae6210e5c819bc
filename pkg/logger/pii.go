package logger

import (
	"strings"
)

// MaskEmail hides the local part of an email address for log output,
// keeping the first character and the domain: "jdoe@example.com" ->
// "j***@example.com". Anything that does not look like an email is
// returned unchanged.
func MaskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return email
	}
	local := email[:at]
	return local[:1] + "***" + email[at:]
}

// MaskUUID keeps the first block of a UUID string so records stay
// correlatable in logs without exposing the full identifier.
func MaskUUID(id string) string {
	if i := strings.Index(id, "-"); i > 0 {
		return id[:i] + "-****"
	}
	return id
}
