package handler

// credentialsRequest is the body of POST /registro and POST /login. Fields are
// pointers so an empty string fails min rather than required.
type credentialsRequest struct {
	Username *string `json:"nombre" validate:"required,min=1" swaggertype:"string"`
	Password *string `json:"password" validate:"required,min=6" swaggertype:"string"`
}

func (r credentialsRequest) credentials() (username, password string) {
	return deref(r.Username), deref(r.Password)
}

type messageResponse struct {
	Message string `json:"message"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
