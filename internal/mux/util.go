package mux

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
	"uno-server/pkg/room"
	"uno-server/pkg/uno"
)

const maxRows = 100
const defaultRows = 25

func parsePaginationOptions(r *http.Request) (int64, int, error) {
	start := int64(0)
	rows := defaultRows

	if startStr := r.FormValue("start"); startStr != "" {
		val, err := strconv.ParseInt(startStr, 10, 64)
		if err != nil {
			return 0, 0, err
		}

		if val < 0 {
			return 0, 0, errors.New("start cannot be less than zero")
		}

		start = val
	}

	if rowsStr := r.FormValue("rows"); rowsStr != "" {
		val, err := strconv.Atoi(rowsStr)
		if err != nil {
			return 0, 0, err
		}

		if val <= 0 {
			return 0, 0, errors.New("rows must be greater than zero")
		}

		if val > maxRows {
			return 0, 0, fmt.Errorf("rows cannot be greater than %d", maxRows)
		}

		rows = val
	}

	return start, rows, nil
}

func decodeRequest(w http.ResponseWriter, r *http.Request, payload interface{}) bool {
	if ct := r.Header.Get("Content-Type"); ct != "application/json" && ct != "text/json" {
		writeJSONError(w, http.StatusUnsupportedMediaType, nil)
		return false
	}

	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, err)
		return false
	}

	return true
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("could not write JSON response")
	}
}

type errorResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

var notFoundErrors = []error{
	room.ErrGameNotFound,
	uno.ErrPlayerNotFound,
}

var conflictErrors = []error{
	room.ErrNameTaken,
	room.ErrTooManyGames,
	room.ErrNotPlayersTurn,
	uno.ErrNotStarted,
	uno.ErrAlreadyStarted,
	uno.ErrTooFewPlayers,
	uno.ErrTooManyPlayers,
	uno.ErrDuplicatePlayer,
	uno.ErrRoundFinished,
}

var badRequestErrors = []error{
	room.ErrInvalidName,
	uno.ErrInvalidCardIndex,
	uno.ErrCardNotInHand,
}

// writeGameError maps errors from the game to a status code
// Anything unknown is treated as a 500
func writeGameError(w http.ResponseWriter, err error) {
	writeJSONError(w, gameErrorStatusCode(err), err)
}

func gameErrorStatusCode(err error) int {
	for _, statusErrors := range []struct {
		statusCode int
		errors     []error
	}{
		{http.StatusNotFound, notFoundErrors},
		{http.StatusConflict, conflictErrors},
		{http.StatusBadRequest, badRequestErrors},
	} {
		for _, e := range statusErrors.errors {
			if errors.Is(err, e) {
				return statusErrors.statusCode
			}
		}
	}

	return http.StatusInternalServerError
}

func writeJSONError(w http.ResponseWriter, statusCode int, err error) {
	var msg string

	if statusCode < 500 && err != nil {
		msg = err.Error()
	} else {
		msg = http.StatusText(statusCode)
	}

	if statusCode >= 500 {
		logrus.WithField("statusCode", statusCode).Error(err)
	}

	writeJSON(w, statusCode, errorResponse{
		Message:    msg,
		StatusCode: statusCode,
	})
}
