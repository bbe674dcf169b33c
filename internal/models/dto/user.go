package dto

// UpdateUserRequest is a partial profile update: only fields present in the
// JSON body are applied. An entirely empty patch is rejected upstream.
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// IsEmpty reports whether no field was provided.
func (r UpdateUserRequest) IsEmpty() bool {
	return r.Username == nil && r.Email == nil && r.Password == nil
}
