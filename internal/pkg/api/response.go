package api

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/shop/internal/constants"
	"github.com/RoyceAzure/lab/shop/internal/pkg/er"
	"github.com/rs/zerolog/log"
)

type Response struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type ResponseError struct {
	Message   string `json:"message"`
	ErrorCode int    `json:"error_code"`
	Errors    any    `json:"errors"`
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Warn().Err(err).Msg("write response body failed")
	}
}

// SuccessJSON msg為空時使用預設訊息
func SuccessJSON(w http.ResponseWriter, data any, msg string) {
	if msg == "" {
		msg = constants.DefaultSuccessMsg
	}
	WriteJSON(w, http.StatusOK, Response{Message: msg, Data: data})
}

func CreatedJSON(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Message: constants.DefaultCreatedMsg, Data: data})
}

// MessageJSON 只有message的回應，例如 {"message": "cart is empty"}
func MessageJSON(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, Response{Message: msg})
}

/*
ErrorJSON 依AnaError code決定http status
非AnaError一律視為InternalErrorCode，內部錯誤訊息只寫log，不回傳給client
*/
func ErrorJSON(w http.ResponseWriter, err error) {
	anaErr := er.FromError(err)
	if anaErr == nil {
		anaErr = er.New(er.InternalErrorCode, "")
	}

	body := ResponseError{
		Message:   anaErr.Msg,
		ErrorCode: int(anaErr.Code),
		Errors:    anaErr.Details,
	}
	if anaErr.Code == er.InternalErrorCode {
		log.Error().Err(err).Msg("internal error")
		body.Message = er.ErrStrMap[er.InternalErrorCode]
		body.Errors = nil
	}
	WriteJSON(w, anaErr.Code.HTTPStatus(), body)
}
