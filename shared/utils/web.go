package utils

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/yatube-dev/yatube/shared/errors"
	"github.com/yatube-dev/yatube/shared/logger"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	var e *errors.ErrorWithStatusCode
	if stderrors.As(err, &e) {
		http.Error(w, e.Message, e.StatusCode)
		return
	}
	// default error is 500, details stay in the log
	logger.Log.Error("internal error", "error", err)
	http.Error(w, "Internal error", http.StatusInternalServerError)
}

func DecodeValidate(r io.ReadCloser, body any) error {
	if err := Decode(r, body); err != nil {
		return err
	}
	return Validate(body)
}

func Decode(r io.ReadCloser, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		logger.Log.Debug("decoding body", "error", err)
		return errors.Validation("Body is invalid json")
	}
	return nil
}

// Validate runs struct tags and reports the first failing field by its json/form name.
func Validate(body any) error {
	err := validate.Struct(body)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) || len(verrs) == 0 {
		return errors.Validation("Required fields missing")
	}
	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return errors.Validation(fmt.Sprintf("%s: this field is required", field))
	case "max":
		return errors.Validation(fmt.Sprintf("%s: must be at most %s characters", field, fe.Param()))
	case "min":
		return errors.Validation(fmt.Sprintf("%s: must be at least %s characters", field, fe.Param()))
	default:
		return errors.Validation(fmt.Sprintf("%s: invalid value", field))
	}
}

// ParsePage reads ?page=N. Anything missing or malformed is page 1.
func ParsePage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// ParseOptionalId parses a form select value; empty means no selection.
func ParseOptionalId(raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return nil, errors.Validation("group: select a valid choice")
	}
	return &id, nil
}
