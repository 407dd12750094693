package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clawcat502/library/internal/models"
)

func TestApplyReadingToggle(t *testing.T) {
	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	later := now.Add(time.Hour)

	t.Run("первое переключение начинает чтение", func(t *testing.T) {
		u := models.NewUser("nik@school.ru", "hash", "Николай", "9А", now)

		event := applyReadingToggle(u, 5, now)

		assert.Equal(t, ReadingStarted, event)
		assert.Equal(t, []int{5}, u.ReadingBooks)
		assert.Equal(t, "2025-09-01 12:00:00", u.ReadingDates["5"])
		assert.Empty(t, u.ReadingHistory)
	})

	t.Run("второе переключение завершает чтение", func(t *testing.T) {
		u := models.NewUser("nik@school.ru", "hash", "Николай", "9А", now)

		applyReadingToggle(u, 5, now)
		event := applyReadingToggle(u, 5, later)

		assert.Equal(t, ReadingFinished, event)
		assert.Empty(t, u.ReadingBooks)
		assert.Equal(t, []int{5}, u.ReadingHistory)
		assert.Equal(t, "2025-09-01 13:00:00", u.HistoryDates["5"])
		_, hasStartDate := u.ReadingDates["5"]
		assert.False(t, hasStartDate)
	})

	t.Run("повторное чтение не дублирует историю", func(t *testing.T) {
		u := models.NewUser("nik@school.ru", "hash", "Николай", "9А", now)

		applyReadingToggle(u, 5, now)
		applyReadingToggle(u, 5, now)
		applyReadingToggle(u, 5, later)
		event := applyReadingToggle(u, 5, later.Add(time.Hour))

		assert.Equal(t, ReadingFinished, event)
		assert.Equal(t, []int{5}, u.ReadingHistory)
		assert.Equal(t, "2025-09-01 14:00:00", u.HistoryDates["5"])
	})

	t.Run("независимые книги не мешают друг другу", func(t *testing.T) {
		u := models.NewUser("nik@school.ru", "hash", "Николай", "9А", now)

		applyReadingToggle(u, 5, now)
		applyReadingToggle(u, 14, now)
		applyReadingToggle(u, 5, later)

		require.Equal(t, []int{14}, u.ReadingBooks)
		assert.Equal(t, []int{5}, u.ReadingHistory)
		assert.Contains(t, u.ReadingDates, "14")
	})
}
