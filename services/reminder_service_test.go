package services

import (
	"testing"
	"time"

	"accel-erp-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestVisitSchedule_Quarterly(t *testing.T) {
	got := VisitSchedule(day(2026, 1, 1), day(2026, 12, 31), 4)

	require.Len(t, got, 4)
	assert.Equal(t, day(2026, 2, 15), got[0])
	assert.Equal(t, day(2026, 5, 17), got[1])
	assert.Equal(t, day(2026, 8, 16), got[2])
	assert.Equal(t, day(2026, 11, 15), got[3])
}

func TestVisitSchedule_StaysInsideContract(t *testing.T) {
	start, end := day(2026, 3, 10), day(2027, 3, 9)
	for n := 1; n <= 12; n++ {
		visits := VisitSchedule(start, end, n)
		require.Len(t, visits, n)
		for i, v := range visits {
			assert.False(t, v.Before(start), "n=%d visit %d", n, i)
			assert.False(t, v.After(end), "n=%d visit %d", n, i)
			if i > 0 {
				assert.True(t, v.After(visits[i-1]), "n=%d visit %d", n, i)
			}
		}
	}
}

func TestVisitSchedule_Degenerate(t *testing.T) {
	assert.Nil(t, VisitSchedule(day(2026, 1, 1), day(2026, 12, 31), 0))
	assert.Nil(t, VisitSchedule(day(2026, 1, 1), day(2026, 1, 1), 3))
	assert.Nil(t, VisitSchedule(day(2026, 6, 1), day(2026, 1, 1), 3))
}

func TestVisitOn(t *testing.T) {
	schedule := VisitSchedule(day(2026, 1, 1), day(2026, 12, 31), 4)

	v, ok := VisitOn(schedule, day(2026, 5, 17).Add(15*time.Hour))
	assert.True(t, ok)
	assert.Equal(t, day(2026, 5, 17), v)

	_, ok = VisitOn(schedule, day(2026, 5, 18))
	assert.False(t, ok)
}

func TestAMCVisitMessage(t *testing.T) {
	q := models.Quotation{
		QuotationNumber: "QTN-20260101-ABC123",
		AMCType:         models.AMCTypeCAMC,
		Customer:        &models.Customer{Name: "Sri Lakshmi Textiles"},
		Engineer:        &models.User{Name: "Ravi"},
	}

	msg := AMCVisitMessage(q, day(2026, 2, 15))

	assert.Equal(t, "Dear Sri Lakshmi Textiles, your CAMC service visit under contract QTN-20260101-ABC123 is scheduled on 15 Feb 2026. Our engineer Ravi will contact you.", msg)
}

func TestAMCVisitMessage_Defaults(t *testing.T) {
	msg := AMCVisitMessage(models.Quotation{QuotationNumber: "QTN-1"}, day(2026, 2, 15))

	assert.Equal(t, "Dear Customer, your AMC service visit under contract QTN-1 is scheduled on 15 Feb 2026.", msg)
}
