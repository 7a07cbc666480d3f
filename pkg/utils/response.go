package utils

type ResponseData struct {
	Status  int    `json:"status"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Results any    `json:"results,omitempty"`
}

// PanicIfNeeded hands err to the Recovery middleware, which renders
// GenericError values with their own status code.
func PanicIfNeeded(err any) {
	if err != nil {
		panic(err)
	}
}
