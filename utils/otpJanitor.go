package utils

import (
	"log"
	"time"

	"ledgerline/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

func logJanitor(message string) {
	log.Printf("[OTP-JANITOR %s] %s", time.Now().Format(time.RFC3339), message)
}

// clearExpiredOTPs nulls out codes whose window has elapsed. Verification
// already rejects expired codes; this keeps stale secrets out of the table.
func clearExpiredOTPs(db *gorm.DB) {
	now := time.Now()

	res := db.Model(&models.User{}).
		Where("otp_expires_at IS NOT NULL AND otp_expires_at < ?", now).
		Updates(map[string]interface{}{"otp": "", "otp_expires_at": nil})
	if res.Error != nil {
		logJanitor("Error clearing expired email OTPs: " + res.Error.Error())
	} else if res.RowsAffected > 0 {
		logJanitor("Cleared expired email OTPs")
	}

	res = db.Model(&models.User{}).
		Where("mobile_otp_expires_at IS NOT NULL AND mobile_otp_expires_at < ?", now).
		Updates(map[string]interface{}{"mobile_otp": "", "mobile_otp_expires_at": nil})
	if res.Error != nil {
		logJanitor("Error clearing expired mobile OTPs: " + res.Error.Error())
	} else if res.RowsAffected > 0 {
		logJanitor("Cleared expired mobile OTPs")
	}
}

// InitializeOTPJanitor runs the cleanup hourly in IST.
func InitializeOTPJanitor(db *gorm.DB) *cron.Cron {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		loc = time.FixedZone("IST", 5*60*60+30*60)
	}

	c := cron.New(cron.WithLocation(loc))
	c.AddFunc("0 * * * *", func() {
		clearExpiredOTPs(db)
	})
	c.Start()

	logJanitor("OTP janitor started - runs hourly")
	return c
}
