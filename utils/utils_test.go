package utils

import (
	"testing"
	"time"

	"ledgerline/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestGenerateOTPFormat(t *testing.T) {
	for i := 0; i < 20; i++ {
		otp := GenerateOTP()
		require.Len(t, otp, 6)
		for _, r := range otp {
			assert.True(t, r >= '0' && r <= '9')
		}
	}
}

func TestClearExpiredOTPs(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	stale := models.User{
		Name: "Stale", Email: "stale@x.com", Password: "x",
		OTP: "111111", OTPExpiresAt: &past,
		MobileOTP: "222222", MobileOTPExpiresAt: &past,
	}
	fresh := models.User{
		Name: "Fresh", Email: "fresh@x.com", Password: "x",
		OTP: "333333", OTPExpiresAt: &future,
	}
	require.NoError(t, db.Create(&stale).Error)
	require.NoError(t, db.Create(&fresh).Error)

	clearExpiredOTPs(db)

	require.NoError(t, db.First(&stale, stale.ID).Error)
	assert.Empty(t, stale.OTP)
	assert.Nil(t, stale.OTPExpiresAt)
	assert.Empty(t, stale.MobileOTP)
	assert.Nil(t, stale.MobileOTPExpiresAt)

	require.NoError(t, db.First(&fresh, fresh.ID).Error)
	assert.Equal(t, "333333", fresh.OTP)
	assert.NotNil(t, fresh.OTPExpiresAt)
}
