package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"medicamp_api/internal/api/middleware"
	"medicamp_api/internal/common"
	"medicamp_api/internal/domain/model"
)

// pagedResponse is the list envelope for routes that report a total.
type pagedResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Total   int64       `json:"total"`
}

func respondWithPage(w http.ResponseWriter, message string, data interface{}, total int64) {
	common.RespondWithJSON(w, http.StatusOK, pagedResponse{
		Success: true,
		Message: message,
		Data:    data,
		Total:   total,
	})
}

// decodeBody decodes a JSON request body into v. An empty body is accepted
// when optional is set.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}, optional bool) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || (optional && errors.Is(err, io.EOF)) {
		return true
	}
	common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
	return false
}

// queryPage reads ?page=N. Missing or malformed values mean the first page.
func queryPage(r *http.Request) int {
	page, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get("page")))
	if err != nil || page < 0 {
		return 0
	}
	if page > model.MaxPage {
		return model.MaxPage
	}
	return page
}

func queryFlag(r *http.Request, name string) bool {
	return r.URL.Query().Get(name) == "true"
}

func callerEmail(w http.ResponseWriter, r *http.Request) (string, bool) {
	email, ok := middleware.GetEmailFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
	}
	return email, ok
}
