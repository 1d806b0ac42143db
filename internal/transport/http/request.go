package http

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	apierrors "csatpulse/internal/errors"
	apiv1 "csatpulse/pkg/contracts/api/v1"
)

// validate checks decoded requests against the contract struct tags.
// Field failures are reported under the JSON name clients actually sent.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func decodeDateRange(q map[string][]string) apiv1.DateRangeRequest {
	return apiv1.DateRangeRequest{
		From: first(q, "from"),
		To:   first(q, "to"),
	}
}

func decodeDailyRequest(r *http.Request) (apiv1.DailyViewRequest, error) {
	q := r.URL.Query()
	req := apiv1.DailyViewRequest{
		DateRangeRequest: decodeDateRange(q),
		Month:            first(q, "month"),
	}
	return req, validateRequest(req)
}

func decodeEventsRequest(r *http.Request) (apiv1.EventsViewRequest, error) {
	q := r.URL.Query()
	req := apiv1.EventsViewRequest{
		DateRangeRequest: decodeDateRange(q),
		Promotion:        first(q, "promotion"),
		SortBy:           first(q, "sort_by"),
		Order:            first(q, "order"),
		Severities:       multi(q, "severities"),
	}

	if raw := first(q, "min_failure_pct"); raw != "" {
		pct, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, apierrors.ErrValidation("min_failure_pct", "must be a number between 0 and 100")
		}
		req.MinFailurePct = pct
	}

	return req, validateRequest(req)
}

func decodeComparisonRequest(r *http.Request, metric string) (apiv1.MonthlyComparisonRequest, error) {
	req := apiv1.MonthlyComparisonRequest{
		Metric:  metric,
		Periods: multi(r.URL.Query(), "periods"),
	}
	return req, validateRequest(req)
}

// validateRequest translates validator failures into the field-level
// validation error envelope.
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return apierrors.InvalidRequestWithError(err)
	}

	fields := make([]apierrors.ValidationError, 0, len(invalid))
	for _, fieldErr := range invalid {
		fields = append(fields, apierrors.ValidationError{
			Field:   fieldErr.Field(),
			Message: "failed " + fieldErr.Tag() + " validation",
		})
	}
	return apierrors.NewValidationErrors(fields)
}

// first returns the first value for a query key, or "".
func first(q map[string][]string, key string) string {
	values := q[key]
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}

// multi collects a repeatable query key, also splitting comma-joined
// values. It preserves the nil/empty distinction: an absent key stays
// nil, an explicit empty value becomes an empty slice.
func multi(q map[string][]string, key string) []string {
	values, present := q[key]
	if !present {
		return nil
	}

	out := make([]string, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
