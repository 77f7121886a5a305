package model

type InputRequestBody struct {
	Key  string `json:"key"`
	Type Signal `json:"type"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
