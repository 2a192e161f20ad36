package models

// RegisterForm is the sign-up payload. Agent-only fields are validated only
// when the form is sent with RoleAgent.
type RegisterForm struct {
	Email           string `json:"email"              validate:"required,email"`
	Username        string `json:"username"           validate:"required,min=3"`
	FullName        string `json:"full_name"          validate:"required"`
	Password        string `json:"password"           validate:"required,min=6"`
	ConfirmPassword string `json:"-"                  validate:"required,eqfield=Password"`
	Phone           string `json:"phone,omitempty"`
	Bio             string `json:"bio,omitempty"`

	LicenseNumber string   `json:"license_number,omitempty"`
	Company       string   `json:"company,omitempty"`
	Title         string   `json:"title,omitempty"`
	Specialties   []string `json:"specialties,omitempty"`
}

// AgentFields carries the fields the agent sign-up additionally requires.
type AgentFields struct {
	Phone         string `validate:"required"`
	LicenseNumber string `validate:"required"`
}

// Agent returns the agent-only subset of f for validation.
func (f RegisterForm) Agent() AgentFields {
	return AgentFields{Phone: f.Phone, LicenseNumber: f.LicenseNumber}
}

// Identity is what the register endpoint returns about the created account.
type Identity struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     Role   `json:"-"`
}

// ProfileUpdate is a partial edit of the current account. Nil fields are
// left untouched by the backend.
type ProfileUpdate struct {
	FullName       *string  `json:"full_name,omitempty"`
	Phone          *string  `json:"phone,omitempty"`
	Bio            *string  `json:"bio,omitempty"`
	ProfilePicture *string  `json:"profile_picture,omitempty"`
	Company        *string  `json:"company,omitempty"`
	Specialties    []string `json:"specialties,omitempty"`
}

// Empty reports whether the update would change nothing.
func (u ProfileUpdate) Empty() bool {
	return u.FullName == nil && u.Phone == nil && u.Bio == nil &&
		u.ProfilePicture == nil && u.Company == nil && u.Specialties == nil
}
