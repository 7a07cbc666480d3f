package error

import "net/http"

type WebhookError string

func (err WebhookError) Error() string {
	return string(err)
}

func (err WebhookError) ErrCode() string {
	return "WEBHOOK_ERROR"
}

func (err WebhookError) StatusCode() int {
	return http.StatusBadGateway
}

// TranscriptionError is returned when the audio transcription relay is not
// configured or the provider rejected the request.
type TranscriptionError string

func (err TranscriptionError) Error() string {
	return string(err)
}

func (err TranscriptionError) ErrCode() string {
	return "TRANSCRIPTION_ERROR"
}

func (err TranscriptionError) StatusCode() int {
	return http.StatusServiceUnavailable
}
