package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/google/uuid"

	"github.com/aomurata/wordbridge/internal/apperr"
)

// Validator checks requests and responses against their per-action schemas.
// It is safe for concurrent use.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// NewValidator creates a Validator with English field-error messages.
func NewValidator() (*Validator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	// Report wire field names, not Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: validate, translator: trans}, nil
}

// DecodeRequest peeks the action of a raw message, strictly decodes the
// message into the action's typed request and validates it. Unknown fields,
// missing required fields, wrong primitive types and out-of-range enum
// values are all rejected before any handler runs.
func (v *Validator) DecodeRequest(raw []byte) (Action, any, error) {
	var envelope struct {
		Action string `json:"action"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", nil, apperr.Protocol("malformed message: %v", err)
	}
	if envelope.Action == "" {
		return "", nil, apperr.Protocol("missing action")
	}

	action := Action(envelope.Action)
	req := newRequest(action)
	if req == nil {
		return action, nil, apperr.Protocol("Unknown action: %s", action)
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(req); err != nil {
		return action, nil, apperr.Validation("%s", decodeErrorMessage(err))
	}
	if err := v.checkStruct(req); err != nil {
		return action, nil, err
	}
	return action, req, nil
}

// ValidateResponse checks a success payload against the action's response
// schema before it leaves the dispatcher. A handler that builds a
// malformed payload is caught here instead of leaking it to the caller.
func (v *Validator) ValidateResponse(action Action, data any) error {
	expected := responseType(action)
	if expected == nil {
		return apperr.Protocol("Unknown action: %s", action)
	}
	if data == nil {
		return apperr.Validation("missing response data")
	}
	if reflect.TypeOf(data) != expected {
		return apperr.Validation("response data is %T, want %s", data, expected)
	}
	if _, ok := data.(EmptyData); ok {
		return nil
	}
	return v.checkStruct(data)
}

func (v *Validator) checkStruct(value any) error {
	err := v.validate.Struct(value)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return apperr.Validation("%v", err)
	}
	messages := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		messages = append(messages, fieldError.Translate(v.translator))
	}
	return apperr.Validation("%s", strings.Join(messages, ", "))
}

// decodeErrorMessage turns a json decoding error into a field-naming
// message suitable for the caller.
func decodeErrorMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type)
	}
	msg := err.Error()
	// json reports unknown fields as: json: unknown field "x"
	if rest, ok := strings.CutPrefix(msg, "json: "); ok {
		return rest
	}
	return msg
}

// responseType returns the expected success payload type for action.
func responseType(action Action) reflect.Type {
	var payload any
	switch action {
	case ActionLookupWord:
		payload = LookupWordData{}
	case ActionAddWord, ActionUpdateWord:
		payload = WordEntryData{}
	case ActionCreateList:
		payload = ListPayload{}
	case ActionFetchAllLists:
		payload = ListsData{}
	case ActionFetchListWords:
		payload = ListWordsData{}
	case ActionSubmitReview:
		payload = SubmitReviewData{}
	case ActionFetchReviewQueue:
		payload = ReviewQueueData{}
	case ActionAddRecentSearch:
		payload = EmptyData{}
	case ActionFetchRecentSearches:
		payload = RecentSearchesData{}
	case ActionFetchSettings, ActionUpdateSettings:
		payload = SettingsPayload{}
	case ActionIncrementLookupCount, ActionFetchLookupCount:
		payload = LookupCountData{}
	case ActionFetchLookupStats:
		payload = LookupStatsData{}
	default:
		return nil
	}
	return reflect.TypeOf(payload)
}

// ParseListID parses a wire list identifier. A malformed identifier is a
// validation failure, not a lookup miss.
func ParseListID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.Validation("Invalid list ID format")
	}
	return id, nil
}
