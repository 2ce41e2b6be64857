package validation

import "github.com/goliatone/go-regform/pkg/model"

// Messages reported by the default schema.
const (
	MsgFirstNameRequired       = "first name is required"
	MsgLastNameRequired        = "last name is required"
	MsgEmailRequired           = "email is required"
	MsgPhoneRequired           = "phone number is required"
	MsgPhoneDigits             = "phone number must be 10 digits"
	MsgPasswordRequired        = "password is required"
	MsgPasswordMinLength       = "minimum 8 characters"
	MsgPasswordSymbol          = "password must contain at least one symbol"
	MsgPasswordNumber          = "password must contain at least one number"
	MsgPasswordLowercase       = "password must contain at least one lowercase letter"
	MsgPasswordUppercase       = "password must contain at least one uppercase letter"
	MsgConfirmPasswordRequired = "confirm password is required"
	MsgPasswordMismatch        = "password must match"
	MsgAgeRequired             = "age is required"
	MsgAgeNumber               = "age must be a number"
	MsgAgeMin                  = "you must be at least 18 year old"
	MsgAgeMax                  = "you can not be older than 100"
	MsgGenderRequired          = "gender is required"
	MsgInterestsRequired       = "select at least one intrest"
	MsgBirthDateRequired       = "Date of birth is required"
)

// Age bounds enforced by the default schema.
const (
	MinAge = 18
	MaxAge = 100
)

// Schema maps each field to its ordered rules.
type Schema map[model.Field][]Rule

// Clone returns a copy whose rule slices can be modified independently.
func (s Schema) Clone() Schema {
	out := make(Schema, len(s))
	for field, rules := range s {
		out[field] = append([]Rule(nil), rules...)
	}
	return out
}

var defaultSchema = Schema{
	model.FieldFirstName: {
		Required(model.FieldFirstName, MsgFirstNameRequired),
	},
	model.FieldLastName: {
		Required(model.FieldLastName, MsgLastNameRequired),
	},
	// malformed addresses share the required message.
	model.FieldEmail: {
		Required(model.FieldEmail, MsgEmailRequired),
		Tag(model.FieldEmail, "email", MsgEmailRequired),
	},
	model.FieldPhoneNumber: {
		Required(model.FieldPhoneNumber, MsgPhoneRequired),
		Matches(model.FieldPhoneNumber, phonePattern, MsgPhoneDigits),
	},
	model.FieldPassword: {
		Required(model.FieldPassword, MsgPasswordRequired),
		MinLength(model.FieldPassword, 8, MsgPasswordMinLength),
		ContainsAny(model.FieldPassword, PasswordSymbols, MsgPasswordSymbol),
		Matches(model.FieldPassword, digitPattern, MsgPasswordNumber),
		Matches(model.FieldPassword, lowercasePattern, MsgPasswordLowercase),
		Matches(model.FieldPassword, uppercasePattern, MsgPasswordUppercase),
	},
	model.FieldConfirmPassword: {
		Required(model.FieldConfirmPassword, MsgConfirmPasswordRequired),
		EqualsField(model.FieldConfirmPassword, model.FieldPassword, MsgPasswordMismatch),
	},
	model.FieldAge: {
		Required(model.FieldAge, MsgAgeRequired),
		Number(model.FieldAge, MsgAgeNumber),
		Min(model.FieldAge, MinAge, MsgAgeMin),
		Max(model.FieldAge, MaxAge, MsgAgeMax),
	},
	model.FieldGender: {
		Required(model.FieldGender, MsgGenderRequired),
		Tag(model.FieldGender, "oneof=male female other", MsgGenderRequired),
	},
	model.FieldInterests: {
		MinInterests(1, MsgInterestsRequired),
	},
	model.FieldBirthDate: {
		Required(model.FieldBirthDate, MsgBirthDateRequired),
		Date(model.FieldBirthDate, MsgBirthDateRequired),
	},
}

// DefaultSchema returns a copy of the registration schema.
func DefaultSchema() Schema {
	return defaultSchema.Clone()
}
