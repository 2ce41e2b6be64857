package model

// Snapshot is the complete value of every form field at one instant. All
// fields are always present; callers treat a Snapshot received from the store
// as read-only and go through the store to change it.
type Snapshot struct {
	FirstName       string     `json:"firstName"`
	LastName        string     `json:"lastName"`
	Email           string     `json:"email"`
	PhoneNumber     string     `json:"phoneNumber"`
	Password        string     `json:"password"`
	ConfirmPassword string     `json:"confirmPassword"`
	Age             string     `json:"age"`
	Gender          Gender     `json:"gender"`
	Interests       []Interest `json:"interests"`
	BirthDate       string     `json:"birthDate"`
}

// Clone returns a deep copy. A nil interests slice is normalised to an empty
// set so snapshots serialise with "interests": [].
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Interests = make([]Interest, len(s.Interests))
	copy(out.Interests, s.Interests)
	return out
}

// Value returns the text value of a scalar field. The interests field and
// unknown fields report false.
func (s Snapshot) Value(field Field) (string, bool) {
	switch field {
	case FieldFirstName:
		return s.FirstName, true
	case FieldLastName:
		return s.LastName, true
	case FieldEmail:
		return s.Email, true
	case FieldPhoneNumber:
		return s.PhoneNumber, true
	case FieldPassword:
		return s.Password, true
	case FieldConfirmPassword:
		return s.ConfirmPassword, true
	case FieldAge:
		return s.Age, true
	case FieldGender:
		return string(s.Gender), true
	case FieldBirthDate:
		return s.BirthDate, true
	default:
		return "", false
	}
}

// WithValue returns a copy of s with one scalar field replaced.
func (s Snapshot) WithValue(field Field, value string) (Snapshot, bool) {
	out := s.Clone()
	switch field {
	case FieldFirstName:
		out.FirstName = value
	case FieldLastName:
		out.LastName = value
	case FieldEmail:
		out.Email = value
	case FieldPhoneNumber:
		out.PhoneNumber = value
	case FieldPassword:
		out.Password = value
	case FieldConfirmPassword:
		out.ConfirmPassword = value
	case FieldAge:
		out.Age = value
	case FieldGender:
		out.Gender = Gender(value)
	case FieldBirthDate:
		out.BirthDate = value
	default:
		return s, false
	}
	return out, true
}

// HasInterest reports whether tag is part of the selected set.
func (s Snapshot) HasInterest(tag Interest) bool {
	for _, selected := range s.Interests {
		if selected == tag {
			return true
		}
	}
	return false
}

// Redacted returns a copy with secret fields blanked, suitable for logs and
// response payloads.
func (s Snapshot) Redacted() Snapshot {
	out := s.Clone()
	out.Password = ""
	out.ConfirmPassword = ""
	return out
}

// Public returns the snapshot keyed by field name without secret fields.
// Interests are always a non-nil list of tag strings.
func (s Snapshot) Public() map[string]any {
	out := make(map[string]any, len(fieldOrder))
	for _, field := range fieldOrder {
		if field.Secret() {
			continue
		}
		if field == FieldInterests {
			tags := make([]string, 0, len(s.Interests))
			for _, tag := range s.Interests {
				tags = append(tags, string(tag))
			}
			out[string(field)] = tags
			continue
		}
		value, _ := s.Value(field)
		out[string(field)] = value
	}
	return out
}
