package ultramsg

import (
	"encoding/json"
	"fmt"
	"strconv"

	domain "github.com/TrueSelph/ultramsg-action/domains/ultramsg"
	pkgError "github.com/TrueSelph/ultramsg-action/pkg/error"
	"github.com/TrueSelph/ultramsg-action/pkg/utils"
)

var requiredDataFields = []string{"id", "time", "author", "fromMe", "from", "to", "body"}

// ParseInbound flattens an Ultramsg webhook payload. An empty payload yields
// (nil, nil). Missing required data fields are handled according to policy.
func ParseInbound(raw map[string]any, policy domain.MissingFieldPolicy) (*domain.InboundMessage, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	data, hasData := raw["data"].(map[string]any)
	if policy != domain.PolicyLenient {
		var missing []string
		if !hasData {
			missing = append(missing, "data")
		} else {
			for _, field := range requiredDataFields {
				if v, ok := data[field]; !ok || v == nil {
					missing = append(missing, "data."+field)
				}
			}
		}
		if len(missing) > 0 {
			return nil, &pkgError.InboundPayloadError{Missing: missing}
		}
	}
	if data == nil {
		data = map[string]any{}
	}

	msg := &domain.InboundMessage{
		MessageID:     stringValue(data["id"]),
		InstanceID:    stringValue(raw["instanceId"]),
		EventType:     stringValue(raw["event_type"]),
		Time:          int64Value(data["time"]),
		Author:        utils.StripContactSuffix(stringValue(data["author"])),
		FromSelf:      boolValue(data["fromMe"]),
		PushName:      stringValue(data["pushname"]),
		Sender:        utils.StripContactSuffix(stringValue(data["from"])),
		Receiver:      utils.StripContactSuffix(stringValue(data["to"])),
		ParentMessage: orEmpty(data["quotedMsg"]),
		MessageType:   stringValue(data["type"]),
		Body:          stringValue(data["body"]),
		Media:         stringValue(data["media"]),
		Location:      orEmpty(data["location"]),
	}
	if msg.MessageType == "" {
		msg.MessageType = "unknown"
	}
	return msg, nil
}

// ParseInboundJSON decodes body and hands it to ParseInbound.
func ParseInboundJSON(body []byte, policy domain.MissingFieldPolicy) (*domain.InboundMessage, error) {
	if len(body) == 0 {
		return nil, nil
	}
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, pkgError.ValidationError(fmt.Sprintf("invalid webhook body: %v", err))
	}
	return ParseInbound(raw, policy)
}

func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

func int64Value(v any) int64 {
	switch t := v.(type) {
	case float64:
		return int64(t)
	case int64:
		return t
	case int:
		return int64(t)
	case json.Number:
		n, _ := t.Int64()
		return n
	case string:
		n, _ := strconv.ParseInt(t, 10, 64)
		return n
	}
	return 0
}

func boolValue(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, _ := strconv.ParseBool(t)
		return b
	}
	return false
}

func orEmpty(v any) any {
	if v == nil {
		return ""
	}
	return v
}
