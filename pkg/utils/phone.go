package utils

import "strings"

// ContactSuffix is the JID suffix Ultramsg appends to individual chats.
const ContactSuffix = "@c.us"

// SanitizePhone strips whitespace and the leading plus sign in place.
func SanitizePhone(phone *string) {
	if phone == nil {
		return
	}
	p := strings.TrimSpace(*phone)
	p = strings.TrimPrefix(p, "+")
	p = strings.ReplaceAll(p, " ", "")
	*phone = p
}

// StripContactSuffix turns "1555@c.us" into "1555". Other JIDs are returned unchanged.
func StripContactSuffix(jid string) string {
	return strings.ReplaceAll(jid, ContactSuffix, "")
}

// ChatID returns the chat JID for a phone number, leaving group or already
// qualified ids untouched.
func ChatID(phone string) string {
	if phone == "" || strings.Contains(phone, "@") {
		return phone
	}
	return phone + ContactSuffix
}
