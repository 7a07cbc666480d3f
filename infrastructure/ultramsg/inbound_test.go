package ultramsg

import (
	"encoding/json"
	"errors"
	"testing"

	domain "github.com/TrueSelph/ultramsg-action/domains/ultramsg"
	pkgError "github.com/TrueSelph/ultramsg-action/pkg/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleWebhook = `{
  "event_type": "message_received",
  "instanceId": "1150",
  "id": "",
  "referenceId": "",
  "hash": "45e3eb3d5b2b2b1f5bd7fa5c38c1ad3e",
  "data": {
    "id": "false_1555@c.us_3EB0C7C2C4B29",
    "from": "1555@c.us",
    "to": "1999@c.us",
    "author": "1555@c.us",
    "pushname": "Ana",
    "ack": "",
    "type": "chat",
    "body": "hello",
    "media": "",
    "fromMe": false,
    "self": false,
    "isForwarded": false,
    "isMentioned": false,
    "quotedMsg": {},
    "mentionedIds": [],
    "time": 1700000000
  }
}`

func decodeSample(t *testing.T, mutate func(data map[string]any)) map[string]any {
	t.Helper()
	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(sampleWebhook), &raw))
	if mutate != nil {
		mutate(raw["data"].(map[string]any))
	}
	return raw
}

func TestParseInbound_ChatHasNoCaption(t *testing.T) {
	msg, err := ParseInbound(decodeSample(t, nil), domain.PolicyStrict)
	require.NoError(t, err)

	m := msg.ToMap()
	assert.NotContains(t, m, "caption")
	assert.Equal(t, "false_1555@c.us_3EB0C7C2C4B29", m["message_id"])
	assert.Equal(t, "1150", m["instance_id"])
	assert.Equal(t, "message_received", m["event_type"])
	assert.Equal(t, int64(1700000000), m["time"])
	assert.Equal(t, "1555", m["author"])
	assert.Equal(t, false, m["from_self"])
	assert.Equal(t, "Ana", m["pushname"])
	assert.Equal(t, "1555", m["sender"])
	assert.Equal(t, "1999", m["receiver"])
	assert.Equal(t, map[string]any{}, m["parent_message"])
	assert.Equal(t, "chat", m["message_type"])
	assert.Equal(t, "hello", m["body"])
	assert.Equal(t, "", m["media"])
	assert.Equal(t, "", m["location"])
}

func TestParseInbound_MediaTypeCopiesBodyToCaption(t *testing.T) {
	msg, err := ParseInbound(decodeSample(t, func(d map[string]any) {
		d["type"] = "image"
		d["body"] = "look at this"
		d["media"] = "https://media.test/a.jpg"
	}), domain.PolicyStrict)
	require.NoError(t, err)

	m := msg.ToMap()
	assert.Equal(t, "look at this", m["caption"])
	assert.Equal(t, m["body"], m["caption"])
	assert.Equal(t, "https://media.test/a.jpg", m["media"])
}

func TestParseInbound_MissingTypeIsUnknownWithCaption(t *testing.T) {
	msg, err := ParseInbound(decodeSample(t, func(d map[string]any) {
		delete(d, "type")
	}), domain.PolicyStrict)
	require.NoError(t, err)

	assert.Equal(t, "unknown", msg.MessageType)
	assert.Equal(t, "hello", msg.ToMap()["caption"])
}

func TestParseInbound_EmptyInput(t *testing.T) {
	msg, err := ParseInbound(nil, domain.PolicyStrict)
	require.NoError(t, err)
	assert.Nil(t, msg)
	assert.Empty(t, msg.ToMap())

	msg, err = ParseInbound(map[string]any{}, domain.PolicyStrict)
	require.NoError(t, err)
	assert.Nil(t, msg)
}

func TestParseInbound_StrictReportsMissingFields(t *testing.T) {
	_, err := ParseInbound(decodeSample(t, func(d map[string]any) {
		delete(d, "id")
		delete(d, "fromMe")
	}), domain.PolicyStrict)

	var payloadErr *pkgError.InboundPayloadError
	require.True(t, errors.As(err, &payloadErr))
	assert.Equal(t, []string{"data.id", "data.fromMe"}, payloadErr.Missing)
	assert.Equal(t, "MALFORMED_INBOUND_PAYLOAD", payloadErr.ErrCode())
}

func TestParseInbound_StrictWithoutData(t *testing.T) {
	_, err := ParseInbound(map[string]any{"event_type": "message_ack"}, domain.PolicyStrict)

	var payloadErr *pkgError.InboundPayloadError
	require.ErrorAs(t, err, &payloadErr)
	assert.Equal(t, []string{"data"}, payloadErr.Missing)
}

func TestParseInbound_LenientDefaults(t *testing.T) {
	msg, err := ParseInbound(decodeSample(t, func(d map[string]any) {
		delete(d, "author")
		delete(d, "body")
		delete(d, "time")
	}), domain.PolicyLenient)
	require.NoError(t, err)

	assert.Equal(t, "", msg.Author)
	assert.Equal(t, "", msg.Body)
	assert.Equal(t, int64(0), msg.Time)
	assert.Equal(t, "1555", msg.Sender)
}

func TestParseInbound_IsPure(t *testing.T) {
	raw := decodeSample(t, nil)
	first, err := ParseInbound(raw, domain.PolicyStrict)
	require.NoError(t, err)
	second, err := ParseInbound(raw, domain.PolicyStrict)
	require.NoError(t, err)

	assert.Equal(t, first.ToMap(), second.ToMap())
	assert.Equal(t, "1555@c.us", raw["data"].(map[string]any)["from"])
}

func TestParseInboundJSON(t *testing.T) {
	msg, err := ParseInboundJSON([]byte(sampleWebhook), domain.PolicyStrict)
	require.NoError(t, err)
	assert.Equal(t, "1555", msg.Sender)

	b, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"sender":"1555"`)
	assert.NotContains(t, string(b), `"caption"`)

	_, err = ParseInboundJSON([]byte("{nope"), domain.PolicyStrict)
	var vErr pkgError.ValidationError
	assert.ErrorAs(t, err, &vErr)
}
