package utils

import (
	"fmt"
	"math/rand"
	"time"
)

// OTPValidity is how long an issued code stays usable.
const OTPValidity = 10 * time.Minute

// GenerateOTP generates a 6-digit OTP
func GenerateOTP() string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	otp := ""
	for i := 0; i < 6; i++ {
		otp += fmt.Sprintf("%d", rng.Intn(10))
	}
	return otp
}
