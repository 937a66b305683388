package authController

// Request shapes filled in by the auth validators and read back by the
// handlers through c.Locals.

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	// Email accepts an email address or a 10-digit mobile number.
	Email    string `json:"email"`
	Password string `json:"password"`
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type ResendOTPRequest struct {
	Email string `json:"email"`
}

type SendMobileOTPRequest struct {
	Mobile string `json:"mobile"`
}

type VerifyMobileOTPRequest struct {
	OTP string `json:"otp"`
}
