package coursestore

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dalemusser/coursehub/internal/app/system/apperr"
	"github.com/dalemusser/coursehub/internal/domain/models"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateInput is the set of fields a client may supply when creating a course.
type CreateInput struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
}

// UpdateInput carries a partial update. Nil fields are left unchanged; an
// empty Description clears it.
type UpdateInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// Empty reports whether the update names no fields at all.
func (in UpdateInput) Empty() bool {
	return in.Title == nil && in.Description == nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON name so messages match the request body.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// idShape is the set of strings we accept as an id at all. Anything outside it
// is a malformed id; anything inside it that is not a stored id is simply absent.
var idShape = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ParseID converts a path id into an ObjectID.
//
// Malformed ids yield InvalidArgument. Well-formed ids that cannot be an
// ObjectID (for example "doesnotexist") yield NotFound, since no document can
// carry them.
func ParseID(id string) (primitive.ObjectID, error) {
	if !idShape.MatchString(id) {
		return primitive.NilObjectID, apperr.InvalidArgument("invalid id")
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperr.NotFound()
	}
	return oid, nil
}

func (in CreateInput) normalize() (CreateInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = trimPtr(in.Description)
	if in.Description != nil && *in.Description == "" {
		in.Description = nil
	}
	if err := validate.Struct(in); err != nil {
		return CreateInput{}, translate(err)
	}
	if err := checkLengths(&in.Title, in.Description); err != nil {
		return CreateInput{}, err
	}
	return in, nil
}

func (in UpdateInput) normalize() (UpdateInput, error) {
	if in.Empty() {
		return UpdateInput{}, apperr.InvalidArgument("no fields to update")
	}
	in.Title = trimPtr(in.Title)
	in.Description = trimPtr(in.Description)
	if in.Title != nil && *in.Title == "" {
		return UpdateInput{}, apperr.InvalidArgument("title must not be empty")
	}
	if err := checkLengths(in.Title, in.Description); err != nil {
		return UpdateInput{}, err
	}
	return in, nil
}

// checkLengths enforces the same limits the collection validator uses.
func checkLengths(title, description *string) error {
	if err := maxRunes("title", title, models.CourseTitleMaxLen); err != nil {
		return err
	}
	return maxRunes("description", description, models.CourseDescriptionMaxLen)
}

func maxRunes(field string, s *string, max int) error {
	if s != nil && utf8.RuneCountInString(*s) > max {
		return apperr.InvalidArgument(fmt.Sprintf("%s must be at most %d characters", field, max))
	}
	return nil
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

// translate turns validator output into a single client-facing InvalidArgument.
func translate(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return apperr.InvalidArgument("invalid input")
	}
	fe := ves[0]
	switch fe.Tag() {
	case "required":
		return apperr.InvalidArgument(fe.Field() + " is required")
	default:
		return apperr.InvalidArgument(fe.Field() + " is invalid")
	}
}

func cloneCourse(c models.Course) models.Course {
	if c.Description != nil {
		d := *c.Description
		c.Description = &d
	}
	return c
}
