package error

// GenericError is implemented by every error the REST layer knows how to
// render with a dedicated status code.
type GenericError interface {
	Error() string
	ErrCode() string
	StatusCode() int
}
