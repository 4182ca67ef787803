package tasks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCronSpec(t *testing.T) {
	assert.NoError(t, ValidateCronSpec(AuthCleanupSpec))
	assert.NoError(t, ValidateCronSpec(MediaReconcileSpec))
	assert.NoError(t, ValidateCronSpec("*/15 * * * *"))

	assert.Error(t, ValidateCronSpec(""))
	assert.Error(t, ValidateCronSpec("every day at noon"))
	assert.Error(t, ValidateCronSpec("61 * * * *"))
}

func TestCronScheduleOptionType(t *testing.T) {
	opt := CronSchedule("0 3 * * *")
	assert.Equal(t, "cron=0 3 * * *", opt.String())
	assert.Equal(t, "0 3 * * *", opt.Value())
}
