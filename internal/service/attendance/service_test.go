package attendance

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/orbai/attendance-backend-go/internal/config"
	"github.com/orbai/attendance-backend-go/internal/domain/attendance"
	"github.com/orbai/attendance-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserID = "7f6b6a4e-9e2a-4a1e-8308-111111111111"

func defaultTestConfig() config.AttendanceConfig {
	return config.AttendanceConfig{
		StandardShiftHours: 8.0,
		ShiftStartHour:     9,
		ShiftStartMinute:   0,
	}
}

func newTestService(t *testing.T) *AttendanceServiceImpl {
	t.Helper()
	return NewAttendanceService(memory.NewAttendanceRepository(), defaultTestConfig())
}

// pinClock fixes the service's clock to a wall-clock moment on 2026-03-02.
func pinClock(svc *AttendanceServiceImpl, hour, minute, second int) time.Time {
	at := time.Date(2026, 3, 2, hour, minute, second, 0, time.UTC)
	svc.now = func() time.Time { return at }
	return at
}

func TestCheckIn_BeforeShiftStartIsPresent(t *testing.T) {
	svc := newTestService(t)
	pinClock(svc, 8, 59, 59)

	result, err := svc.CheckIn(context.Background(), testUserID, attendance.CheckInRequest{})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, result.Status)
	assert.False(t, result.IsLate)
}

func TestCheckIn_AtShiftStartExactlyIsPresent(t *testing.T) {
	svc := newTestService(t)
	pinClock(svc, 9, 0, 0)

	result, err := svc.CheckIn(context.Background(), testUserID, attendance.CheckInRequest{})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, result.Status)
}

func TestCheckIn_AfterShiftStartIsLate(t *testing.T) {
	svc := newTestService(t)
	pinClock(svc, 9, 0, 1)

	result, err := svc.CheckIn(context.Background(), testUserID, attendance.CheckInRequest{})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLate, result.Status)
	assert.True(t, result.IsLate)
}

func TestCheckIn_TwiceSameDayFails(t *testing.T) {
	svc := newTestService(t)
	pinClock(svc, 9, 0, 0)

	_, err := svc.CheckIn(context.Background(), testUserID, attendance.CheckInRequest{})
	require.NoError(t, err)

	_, err = svc.CheckIn(context.Background(), testUserID, attendance.CheckInRequest{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckIn_ConcurrentAttemptsExactlyOneSucceeds(t *testing.T) {
	svc := newTestService(t)
	pinClock(svc, 9, 0, 0)

	const attempts = 20
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CheckIn(context.Background(), testUserID, attendance.CheckInRequest{})
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
		}
	}
	assert.Equal(t, 1, successes)

	status, err := svc.TodayStatus(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StateCheckedIn, status.State)
}

func TestCheckIn_NotesTooLongRejected(t *testing.T) {
	svc := newTestService(t)
	pinClock(svc, 9, 0, 0)

	notes := strings.Repeat("x", 501)
	_, err := svc.CheckIn(context.Background(), testUserID, attendance.CheckInRequest{Notes: &notes})
	assert.Error(t, err)
}

func TestCheckOut_DerivesWorkAndOvertimeHours(t *testing.T) {
	svc := newTestService(t)
	pinClock(svc, 9, 0, 0)

	_, err := svc.CheckIn(context.Background(), testUserID, attendance.CheckInRequest{})
	require.NoError(t, err)

	pinClock(svc, 18, 30, 0)
	result, err := svc.CheckOut(context.Background(), testUserID, attendance.CheckOutRequest{})
	require.NoError(t, err)

	assert.InDelta(t, 9.5, result.WorkHours, 0.001)
	assert.InDelta(t, 1.5, result.OvertimeHours, 0.001)
}

func TestCheckOut_ShortDayHasZeroOvertime(t *testing.T) {
	svc := newTestService(t)
	pinClock(svc, 9, 0, 0)

	_, err := svc.CheckIn(context.Background(), testUserID, attendance.CheckInRequest{})
	require.NoError(t, err)

	pinClock(svc, 13, 0, 0)
	result, err := svc.CheckOut(context.Background(), testUserID, attendance.CheckOutRequest{})
	require.NoError(t, err)

	assert.InDelta(t, 4.0, result.WorkHours, 0.001)
	assert.Zero(t, result.OvertimeHours)
}

func TestCheckOut_NoRecordForTodayFails(t *testing.T) {
	svc := newTestService(t)
	pinClock(svc, 17, 0, 0)

	_, err := svc.CheckOut(context.Background(), testUserID, attendance.CheckOutRequest{})
	assert.ErrorIs(t, err, attendance.ErrNoCheckInFound)
}

func TestCheckOut_RecordWithoutCheckInTimeFails(t *testing.T) {
	svc := newTestService(t)
	at := pinClock(svc, 17, 0, 0)

	// A record can exist for the day without a check-in time, for example
	// after an admin marks the employee absent.
	_, err := svc.repo.RecordCheckIn(context.Background(), attendance.Record{
		ID:     uuid.NewString(),
		UserID: testUserID,
		Date:   dayOf(at),
		Status: attendance.StatusAbsent,
	})
	require.NoError(t, err)

	_, err = svc.CheckOut(context.Background(), testUserID, attendance.CheckOutRequest{})
	assert.ErrorIs(t, err, attendance.ErrMustCheckInFirst)
}

func TestCheckOut_TwiceSameDayFails(t *testing.T) {
	svc := newTestService(t)
	pinClock(svc, 9, 0, 0)

	_, err := svc.CheckIn(context.Background(), testUserID, attendance.CheckInRequest{})
	require.NoError(t, err)

	pinClock(svc, 17, 0, 0)
	_, err = svc.CheckOut(context.Background(), testUserID, attendance.CheckOutRequest{})
	require.NoError(t, err)

	pinClock(svc, 18, 0, 0)
	_, err = svc.CheckOut(context.Background(), testUserID, attendance.CheckOutRequest{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestCheckOut_ConcurrentAttemptsExactlyOneSucceeds(t *testing.T) {
	svc := newTestService(t)
	pinClock(svc, 9, 0, 0)

	_, err := svc.CheckIn(context.Background(), testUserID, attendance.CheckInRequest{})
	require.NoError(t, err)

	pinClock(svc, 17, 0, 0)

	const attempts = 20
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CheckOut(context.Background(), testUserID, attendance.CheckOutRequest{})
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
		}
	}
	assert.Equal(t, 1, successes)
}

func TestCheckOut_NotesAccumulateWithCheckInNotes(t *testing.T) {
	svc := newTestService(t)
	pinClock(svc, 9, 0, 0)

	inNotes := "working from the office"
	_, err := svc.CheckIn(context.Background(), testUserID, attendance.CheckInRequest{Notes: &inNotes})
	require.NoError(t, err)

	pinClock(svc, 17, 0, 0)
	outNotes := "finished sprint review"
	_, err = svc.CheckOut(context.Background(), testUserID, attendance.CheckOutRequest{Notes: &outNotes})
	require.NoError(t, err)

	status, err := svc.TodayStatus(context.Background(), testUserID)
	require.NoError(t, err)
	require.NotNil(t, status.Record)
	require.NotNil(t, status.Record.Notes)
	assert.Equal(t, "working from the office\nCheck-out notes: finished sprint review", *status.Record.Notes)
}

func TestTodayStatus_TriState(t *testing.T) {
	svc := newTestService(t)
	pinClock(svc, 9, 0, 0)
	ctx := context.Background()

	status, err := svc.TodayStatus(ctx, testUserID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StateNotCheckedIn, status.State)
	assert.Nil(t, status.Record)

	_, err = svc.CheckIn(ctx, testUserID, attendance.CheckInRequest{})
	require.NoError(t, err)

	status, err = svc.TodayStatus(ctx, testUserID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StateCheckedIn, status.State)
	require.NotNil(t, status.Record)
	assert.Nil(t, status.Record.CheckOutTime)

	pinClock(svc, 17, 0, 0)
	_, err = svc.CheckOut(ctx, testUserID, attendance.CheckOutRequest{})
	require.NoError(t, err)

	status, err = svc.TodayStatus(ctx, testUserID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StateCheckedOut, status.State)
	require.NotNil(t, status.Record)
	assert.NotNil(t, status.Record.CheckOutTime)
}

func TestAmendRecord_DoesNotRederiveHours(t *testing.T) {
	svc := newTestService(t)
	pinClock(svc, 9, 0, 0)
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, testUserID, attendance.CheckInRequest{})
	require.NoError(t, err)

	pinClock(svc, 17, 0, 0)
	_, err = svc.CheckOut(ctx, testUserID, attendance.CheckOutRequest{})
	require.NoError(t, err)

	status, err := svc.TodayStatus(ctx, testUserID)
	require.NoError(t, err)
	recordID := status.Record.ID

	// Moving the check-in two hours earlier must leave stored hours untouched.
	newCheckIn := "2026-03-02 07:00:00"
	amended, err := svc.AmendRecord(ctx, attendance.AmendRequest{
		ID:          recordID,
		CheckInTime: &newCheckIn,
	})
	require.NoError(t, err)

	require.NotNil(t, amended.WorkHours)
	assert.InDelta(t, 8.0, *amended.WorkHours, 0.001)
	require.NotNil(t, amended.CheckInTime)
	assert.Equal(t, "2026-03-02 07:00:00", *amended.CheckInTime)
}

func TestAmendRecord_OverwritesStatusAndHours(t *testing.T) {
	svc := newTestService(t)
	pinClock(svc, 9, 30, 0)
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, testUserID, attendance.CheckInRequest{})
	require.NoError(t, err)

	status, err := svc.TodayStatus(ctx, testUserID)
	require.NoError(t, err)

	halfDay := attendance.StatusHalfDay
	workHours := 4.0
	amended, err := svc.AmendRecord(ctx, attendance.AmendRequest{
		ID:        status.Record.ID,
		Status:    &halfDay,
		WorkHours: &workHours,
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusHalfDay, amended.Status)
	require.NotNil(t, amended.WorkHours)
	assert.InDelta(t, 4.0, *amended.WorkHours, 0.001)
}

func TestAmendRecord_NoFieldsRejected(t *testing.T) {
	svc := newTestService(t)
	pinClock(svc, 9, 0, 0)

	_, err := svc.AmendRecord(context.Background(), attendance.AmendRequest{ID: "some-id"})
	assert.Error(t, err)
}

func TestAmendRecord_UnknownRecordFails(t *testing.T) {
	svc := newTestService(t)
	pinClock(svc, 9, 0, 0)

	halfDay := attendance.StatusHalfDay
	_, err := svc.AmendRecord(context.Background(), attendance.AmendRequest{
		ID:     "00000000-0000-0000-0000-000000000000",
		Status: &halfDay,
	})
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}

func TestCheckOut_BeforeCheckInClampsToZeroAndFlags(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	pinClock(svc, 9, 0, 0)
	_, err := svc.CheckIn(ctx, testUserID, attendance.CheckInRequest{})
	require.NoError(t, err)

	// Clock skew: check-out lands before the recorded check-in.
	pinClock(svc, 8, 0, 0)
	result, err := svc.CheckOut(ctx, testUserID, attendance.CheckOutRequest{})
	require.NoError(t, err)
	assert.Zero(t, result.WorkHours)
	assert.Zero(t, result.OvertimeHours)

	status, err := svc.TodayStatus(ctx, testUserID)
	require.NoError(t, err)
	require.NotNil(t, status.Record.Notes)
	assert.Contains(t, *status.Record.Notes, "flagged")
}

func TestMyRecords_FiltersAndPaginates(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for day := 1; day <= 5; day++ {
		at := time.Date(2026, 3, day, 9, 30, 0, 0, time.UTC)
		svc.now = func() time.Time { return at }
		_, err := svc.CheckIn(ctx, testUserID, attendance.CheckInRequest{})
		require.NoError(t, err)
	}

	result, err := svc.MyRecords(ctx, testUserID, attendance.MyRecordsFilter{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, result.TotalCount)
	assert.Len(t, result.Records, 2)
	assert.Equal(t, 3, result.TotalPages)

	start := "2026-03-04"
	result, err = svc.MyRecords(ctx, testUserID, attendance.MyRecordsFilter{StartDate: &start})
	require.NoError(t, err)
	assert.EqualValues(t, 2, result.TotalCount)
}

func TestCheckOut_OtherUserUnaffected(t *testing.T) {
	svc := newTestService(t)
	pinClock(svc, 9, 0, 0)
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, testUserID, attendance.CheckInRequest{})
	require.NoError(t, err)

	pinClock(svc, 17, 0, 0)
	_, err = svc.CheckOut(ctx, "different-user", attendance.CheckOutRequest{})
	assert.True(t, errors.Is(err, attendance.ErrNoCheckInFound))
}
