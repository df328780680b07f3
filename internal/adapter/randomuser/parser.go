package randomuser

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	domain "usertables-generator/internal/domain/user"
	"usertables-generator/pkg/date"
	pkgerrors "usertables-generator/pkg/errors"
)

// API field names.
const (
	fieldName       = "fname"
	fieldSurname    = "lname"
	fieldPatronymic = "patronymic"
	fieldGender     = "gender"
	fieldBirthDate  = "date"
	fieldRegion     = "region"
	fieldCity       = "city"
	fieldStreet     = "street"
	fieldHouse      = "house"
)

// minBirthUnix is 0001-01-01T00:00:00Z; earlier birth dates are rejected.
const minBirthUnix = -62135596800

// record is the mapped API payload before it becomes a domain user.
type record struct {
	Name       string `validate:"required,max=100"`
	Surname    string `validate:"required,max=100"`
	Patronymic string `validate:"max=100"`
	Gender     string `validate:"required,oneof=male female"`
	BirthDate  int64
	Region     string
	City       string
	Street     string
	House      int `validate:"gte=0"`
}

// Parser turns API response bodies into domain users.
type Parser struct {
	validate *validator.Validate
	now      func() time.Time
}

// NewParser creates a Parser that computes ages against the wall clock.
func NewParser() *Parser {
	return &Parser{validate: validator.New(), now: time.Now}
}

// Parse expects body to be a JSON array holding exactly one object. The
// enclosing brackets are stripped and the object is mapped with MapFields.
func (p *Parser) Parse(body string) (*domain.User, error) {
	trimmed := strings.TrimSpace(body)
	if len(trimmed) < 2 || trimmed[0] != '[' || trimmed[len(trimmed)-1] != ']' {
		return nil, pkgerrors.NewParseError("", "response is not a JSON array", nil)
	}

	fields, err := decodeObject(trimmed[1 : len(trimmed)-1])
	if err != nil {
		return nil, err
	}

	return p.MapFields(fields)
}

// decodeObject decodes s as exactly one JSON object, keeping numbers as json.Number.
func decodeObject(s string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, pkgerrors.NewParseError("", "response array is empty", nil)
		}
		return nil, pkgerrors.NewParseError("", "array element is not a JSON object", err)
	}
	if fields == nil {
		return nil, pkgerrors.NewParseError("", "array element is null", nil)
	}

	// a second element shows up as trailing data after the first object
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, pkgerrors.NewParseError("", "expected exactly one object in response array", nil)
	}

	return fields, nil
}

// MapFields converts raw API fields to a domain user by explicit renaming
// and type coercion.
func (p *Parser) MapFields(fields map[string]any) (*domain.User, error) {
	var (
		rec record
		err error
	)

	if rec.Name, err = stringField(fields, fieldName); err != nil {
		return nil, err
	}
	if rec.Surname, err = stringField(fields, fieldSurname); err != nil {
		return nil, err
	}
	if rec.Patronymic, err = stringField(fields, fieldPatronymic); err != nil {
		return nil, err
	}
	gender, err := stringField(fields, fieldGender)
	if err != nil {
		return nil, err
	}
	rec.Gender = string(normalizeGender(gender))
	if rec.Region, err = stringField(fields, fieldRegion); err != nil {
		return nil, err
	}
	if rec.City, err = stringField(fields, fieldCity); err != nil {
		return nil, err
	}
	if rec.Street, err = stringField(fields, fieldStreet); err != nil {
		return nil, err
	}

	house, _, err := intField(fields, fieldHouse)
	if err != nil {
		return nil, err
	}
	rec.House = int(house)

	birth, ok, err := intField(fields, fieldBirthDate)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, pkgerrors.NewParseError(fieldBirthDate, "is required", nil)
	}
	rec.BirthDate = birth

	if err := p.validate.Struct(rec); err != nil {
		return nil, formatValidationError(err)
	}

	now := p.now()
	if birth > now.Unix() {
		return nil, pkgerrors.NewParseError(fieldBirthDate, "is in the future", nil)
	}
	if birth < minBirthUnix {
		return nil, pkgerrors.NewParseError(fieldBirthDate, "is before year 1", nil)
	}

	dob := date.FromUnix(birth)
	return &domain.User{
		Name:        rec.Name,
		Surname:     rec.Surname,
		Patronymic:  rec.Patronymic,
		Gender:      domain.Gender(rec.Gender),
		DateOfBirth: dob,
		Age:         dob.CountPassedYearsAt(now),
		Region:      rec.Region,
		City:        rec.City,
		Street:      rec.Street,
		House:       rec.House,
	}, nil
}

// normalizeGender maps the spellings the API uses onto domain genders.
// Unknown values are returned unchanged so validation rejects them.
func normalizeGender(s string) domain.Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "male", "м", "муж", "мужской":
		return domain.GenderMale
	case "f", "female", "ж", "жен", "женский":
		return domain.GenderFemale
	default:
		return domain.Gender(s)
	}
}

// stringField returns the trimmed string under key, or "" when it is absent or null.
func stringField(fields map[string]any, key string) (string, error) {
	v, ok := fields[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", pkgerrors.NewParseError(key, fmt.Sprintf("expected string, got %T", v), nil)
	}
	return strings.TrimSpace(s), nil
}

// intField accepts a JSON integer or a string holding one. The bool result
// is false when the key is absent, null or an empty string.
func intField(fields map[string]any, key string) (int64, bool, error) {
	v, ok := fields[key]
	if !ok || v == nil {
		return 0, false, nil
	}

	var raw string
	switch n := v.(type) {
	case json.Number:
		raw = n.String()
	case string:
		raw = strings.TrimSpace(n)
		if raw == "" {
			return 0, false, nil
		}
	default:
		return 0, false, pkgerrors.NewParseError(key, fmt.Sprintf("expected integer, got %T", v), nil)
	}

	i, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, pkgerrors.NewParseError(key, "expected integer", err)
	}
	return i, true, nil
}

// formatValidationError converts validator.ValidationErrors into a ParseError.
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return pkgerrors.NewParseError("", "invalid record", err)
	}

	var messages []string
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of [%s]", e.Field(), e.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
		}
	}
	return pkgerrors.NewParseError("", strings.Join(messages, ", "), nil)
}
