package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventure-app/eventure-api/internal/domain"
)

type attendanceKey struct {
	eventID uint
	userID  uint
}

// memAttendanceRepo mirrors the storage contract: the capacity check
// and the write happen under one lock, like the row-locked transaction
// in the real DAO.
type memAttendanceRepo struct {
	mu       sync.Mutex
	records  map[attendanceKey]domain.Attendance
	order    []attendanceKey
	capacity map[uint]int
}

func newMemAttendanceRepo(capacity map[uint]int) *memAttendanceRepo {
	return &memAttendanceRepo{
		records:  make(map[attendanceKey]domain.Attendance),
		capacity: capacity,
	}
}

func (r *memAttendanceRepo) confirmedLocked(eventID uint) int {
	n := 0
	for key, a := range r.records {
		if key.eventID == eventID && a.Approved {
			n++
		}
	}

	return n
}

func (r *memAttendanceRepo) Create(_ context.Context, attendance domain.Attendance) (domain.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := attendanceKey{eventID: attendance.EventID, userID: attendance.UserID}
	if _, exists := r.records[key]; exists {
		return domain.Attendance{}, ErrAlreadyAttending
	}
	if r.confirmedLocked(attendance.EventID) >= r.capacity[attendance.EventID] {
		return domain.Attendance{}, ErrEventFull
	}

	r.records[key] = attendance
	r.order = append(r.order, key)

	return attendance, nil
}

func (r *memAttendanceRepo) Approve(_ context.Context, eventID, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := attendanceKey{eventID: eventID, userID: userID}
	attendance, exists := r.records[key]
	if !exists {
		return ErrNotAttending
	}
	if attendance.Approved {
		return ErrRequestNotPending
	}
	if r.confirmedLocked(eventID) >= r.capacity[eventID] {
		return ErrEventFull
	}

	attendance.Approved = true
	r.records[key] = attendance

	return nil
}

func (r *memAttendanceRepo) Delete(_ context.Context, eventID, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := attendanceKey{eventID: eventID, userID: userID}
	if _, exists := r.records[key]; !exists {
		return ErrNotAttending
	}
	delete(r.records, key)

	return nil
}

func (r *memAttendanceRepo) DeletePending(_ context.Context, eventID, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := attendanceKey{eventID: eventID, userID: userID}
	attendance, exists := r.records[key]
	if !exists {
		return ErrNotAttending
	}
	if attendance.Approved {
		return ErrRequestNotPending
	}
	delete(r.records, key)

	return nil
}

func (r *memAttendanceRepo) Find(_ context.Context, eventID, userID uint) (domain.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	attendance, exists := r.records[attendanceKey{eventID: eventID, userID: userID}]
	if !exists {
		return domain.Attendance{}, ErrNotAttending
	}

	return attendance, nil
}

func (r *memAttendanceRepo) FindByEvent(_ context.Context, eventID uint) ([]domain.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Attendance
	for _, key := range r.order {
		if key.eventID != eventID {
			continue
		}
		if attendance, exists := r.records[key]; exists {
			out = append(out, attendance)
		}
	}

	return out, nil
}

func (r *memAttendanceRepo) CountConfirmed(_ context.Context, eventID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return int64(r.confirmedLocked(eventID)), nil
}

type memEventRepo struct {
	events map[uint]domain.Event
}

func (r *memEventRepo) FindByID(_ context.Context, id uint) (domain.Event, error) {
	event, exists := r.events[id]
	if !exists {
		return domain.Event{}, ErrEventNotFound
	}

	return event, nil
}

func newAttendanceFixture(events ...domain.Event) (*AttendanceService, *memAttendanceRepo) {
	capacity := make(map[uint]int)
	byID := make(map[uint]domain.Event)
	for _, e := range events {
		capacity[e.ID] = e.Capacity
		byID[e.ID] = e
	}

	repo := newMemAttendanceRepo(capacity)
	svc := NewAttendanceService(repo, &memEventRepo{events: byID})

	return svc, repo
}

func TestRequestAttendance(t *testing.T) {
	ungated := domain.Event{ID: 1, OwnerID: 50, Capacity: 2, Approved: true}
	gated := domain.Event{
		ID:       2,
		OwnerID:  50,
		Capacity: 2,
		Approved: true,
		Admissions: []domain.Admission{
			{ID: 10, Name: "free", Amount: 0},
			{ID: 11, Name: "adult", Amount: 100},
		},
	}

	t.Run("ungated event confirms immediately", func(t *testing.T) {
		svc, _ := newAttendanceFixture(ungated)

		attendance, err := svc.RequestAttendance(context.Background(), 7, 1, nil)
		require.NoError(t, err)
		assert.True(t, attendance.Approved)
		assert.Equal(t, domain.AttendanceConfirmed, attendance.State())
	})

	t.Run("gated event leaves the request pending", func(t *testing.T) {
		svc, _ := newAttendanceFixture(gated)

		admissionID := uint(11)
		attendance, err := svc.RequestAttendance(context.Background(), 7, 2, &admissionID)
		require.NoError(t, err)
		assert.False(t, attendance.Approved)
		assert.Equal(t, domain.AttendancePending, attendance.State())
		require.NotNil(t, attendance.Admission)
		assert.Equal(t, 100, *attendance.Admission)
	})

	t.Run("admission must be offered by the event", func(t *testing.T) {
		svc, _ := newAttendanceFixture(gated)

		admissionID := uint(99)
		_, err := svc.RequestAttendance(context.Background(), 7, 2, &admissionID)
		assert.ErrorIs(t, err, ErrAdmissionNotOffered)
	})

	t.Run("double request is rejected", func(t *testing.T) {
		svc, _ := newAttendanceFixture(ungated)

		_, err := svc.RequestAttendance(context.Background(), 7, 1, nil)
		require.NoError(t, err)

		_, err = svc.RequestAttendance(context.Background(), 7, 1, nil)
		assert.ErrorIs(t, err, ErrAlreadyAttending)
	})

	t.Run("unknown event", func(t *testing.T) {
		svc, _ := newAttendanceFixture(ungated)

		_, err := svc.RequestAttendance(context.Background(), 7, 42, nil)
		assert.ErrorIs(t, err, ErrEventNotFound)
	})

	t.Run("full event rejects further confirmations", func(t *testing.T) {
		svc, _ := newAttendanceFixture(ungated)

		_, err := svc.RequestAttendance(context.Background(), 7, 1, nil)
		require.NoError(t, err)
		_, err = svc.RequestAttendance(context.Background(), 8, 1, nil)
		require.NoError(t, err)

		_, err = svc.RequestAttendance(context.Background(), 9, 1, nil)
		assert.ErrorIs(t, err, ErrEventFull)
	})

	t.Run("full event rejects new pending requests", func(t *testing.T) {
		svc, repo := newAttendanceFixture(gated)

		_, err := repo.Create(context.Background(), domain.Attendance{EventID: 2, UserID: 100, Approved: true})
		require.NoError(t, err)
		_, err = repo.Create(context.Background(), domain.Attendance{EventID: 2, UserID: 101, Approved: true})
		require.NoError(t, err)

		// Once confirmed records fill the capacity, even a pending
		// request is refused.
		admissionID := uint(10)
		_, err = svc.RequestAttendance(context.Background(), 7, 2, &admissionID)
		assert.ErrorIs(t, err, ErrEventFull)
	})

	t.Run("pending requests do not consume seats", func(t *testing.T) {
		svc, _ := newAttendanceFixture(gated)

		// Far more pending requests than capacity is fine.
		for userID := uint(1); userID <= 5; userID++ {
			_, err := svc.RequestAttendance(context.Background(), userID, 2, nil)
			require.NoError(t, err)
		}

		count, err := svc.ConfirmedCount(context.Background(), 2)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestRequestAttendanceConcurrentLastSeat(t *testing.T) {
	event := domain.Event{ID: 1, OwnerID: 50, Capacity: 3, Approved: true}
	svc, _ := newAttendanceFixture(event)

	_, err := svc.RequestAttendance(context.Background(), 100, 1, nil)
	require.NoError(t, err)
	_, err = svc.RequestAttendance(context.Background(), 101, 1, nil)
	require.NoError(t, err)

	// One seat left, many racers: exactly one wins.
	const racers = 16
	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.RequestAttendance(context.Background(), uint(i+1), 1, nil)
		}(i)
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		if err == nil {
			won++
		} else {
			assert.ErrorIs(t, err, ErrEventFull)
		}
	}
	assert.Equal(t, 1, won)

	count, err := svc.ConfirmedCount(context.Background(), 1)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}

func TestApproveRequest(t *testing.T) {
	gated := domain.Event{
		ID:         1,
		OwnerID:    50,
		Capacity:   1,
		Approved:   true,
		Admissions: []domain.Admission{{ID: 10, Name: "free"}},
	}
	owner := domain.Actor{ID: 50, Role: domain.RoleUser}

	t.Run("owner confirms a pending request", func(t *testing.T) {
		svc, _ := newAttendanceFixture(gated)

		_, err := svc.RequestAttendance(context.Background(), 7, 1, nil)
		require.NoError(t, err)

		require.NoError(t, svc.ApproveRequest(context.Background(), owner, 1, 7))

		attendance, err := svc.GetAttendance(context.Background(), 7, 1)
		require.NoError(t, err)
		assert.Equal(t, domain.AttendanceConfirmed, attendance.State())
	})

	t.Run("only the owner may approve", func(t *testing.T) {
		svc, _ := newAttendanceFixture(gated)

		_, err := svc.RequestAttendance(context.Background(), 7, 1, nil)
		require.NoError(t, err)

		err = svc.ApproveRequest(context.Background(), domain.Actor{ID: 8, Role: domain.RoleModerator}, 1, 7)
		assert.ErrorIs(t, err, domain.ErrNotOwner)
	})

	t.Run("capacity is re-checked at approval time", func(t *testing.T) {
		svc, _ := newAttendanceFixture(gated)

		_, err := svc.RequestAttendance(context.Background(), 7, 1, nil)
		require.NoError(t, err)
		_, err = svc.RequestAttendance(context.Background(), 8, 1, nil)
		require.NoError(t, err)

		require.NoError(t, svc.ApproveRequest(context.Background(), owner, 1, 7))

		err = svc.ApproveRequest(context.Background(), owner, 1, 8)
		assert.ErrorIs(t, err, ErrEventFull)
	})

	t.Run("approving a confirmed attendance fails", func(t *testing.T) {
		svc, _ := newAttendanceFixture(gated)

		_, err := svc.RequestAttendance(context.Background(), 7, 1, nil)
		require.NoError(t, err)
		require.NoError(t, svc.ApproveRequest(context.Background(), owner, 1, 7))

		err = svc.ApproveRequest(context.Background(), owner, 1, 7)
		assert.ErrorIs(t, err, ErrRequestNotPending)
	})
}

func TestCancelAttendance(t *testing.T) {
	event := domain.Event{ID: 1, OwnerID: 50, Capacity: 1, Approved: true}
	svc, _ := newAttendanceFixture(event)

	_, err := svc.RequestAttendance(context.Background(), 7, 1, nil)
	require.NoError(t, err)

	_, err = svc.RequestAttendance(context.Background(), 8, 1, nil)
	require.ErrorIs(t, err, ErrEventFull)

	// Cancelling the confirmed seat frees it for the next request.
	require.NoError(t, svc.CancelAttendance(context.Background(), 7, 1))

	_, err = svc.RequestAttendance(context.Background(), 8, 1, nil)
	assert.NoError(t, err)

	err = svc.CancelAttendance(context.Background(), 7, 1)
	assert.ErrorIs(t, err, ErrNotAttending)
}

func TestRejectRequest(t *testing.T) {
	gated := domain.Event{
		ID:         1,
		OwnerID:    50,
		Capacity:   2,
		Approved:   true,
		Admissions: []domain.Admission{{ID: 10, Name: "free"}},
	}
	owner := domain.Actor{ID: 50, Role: domain.RoleUser}

	t.Run("owner rejects a pending request", func(t *testing.T) {
		svc, _ := newAttendanceFixture(gated)

		_, err := svc.RequestAttendance(context.Background(), 7, 1, nil)
		require.NoError(t, err)

		require.NoError(t, svc.RejectRequest(context.Background(), owner, 1, 7))

		_, err = svc.GetAttendance(context.Background(), 7, 1)
		assert.ErrorIs(t, err, ErrNotAttending)
	})

	t.Run("confirmed attendances cannot be rejected", func(t *testing.T) {
		svc, _ := newAttendanceFixture(gated)

		_, err := svc.RequestAttendance(context.Background(), 7, 1, nil)
		require.NoError(t, err)
		require.NoError(t, svc.ApproveRequest(context.Background(), owner, 1, 7))

		err = svc.RejectRequest(context.Background(), owner, 1, 7)
		assert.ErrorIs(t, err, ErrRequestNotPending)
	})

	t.Run("non-owner may not reject", func(t *testing.T) {
		svc, _ := newAttendanceFixture(gated)

		_, err := svc.RequestAttendance(context.Background(), 7, 1, nil)
		require.NoError(t, err)

		err = svc.RejectRequest(context.Background(), domain.Actor{ID: 9, Role: domain.RoleUser}, 1, 7)
		assert.ErrorIs(t, err, domain.ErrNotOwner)
	})
}

func TestListAttendees(t *testing.T) {
	event := domain.Event{ID: 1, OwnerID: 50, Capacity: 5, Approved: true}
	svc, _ := newAttendanceFixture(event)

	for userID := uint(1); userID <= 3; userID++ {
		_, err := svc.RequestAttendance(context.Background(), userID, 1, nil)
		require.NoError(t, err)
	}

	t.Run("owner sees the roster in request order", func(t *testing.T) {
		attendees, err := svc.ListAttendees(context.Background(), domain.Actor{ID: 50, Role: domain.RoleUser}, 1)
		require.NoError(t, err)
		require.Len(t, attendees, 3)
		assert.Equal(t, uint(1), attendees[0].UserID)
		assert.Equal(t, uint(3), attendees[2].UserID)
	})

	t.Run("moderator sees the roster", func(t *testing.T) {
		_, err := svc.ListAttendees(context.Background(), domain.Actor{ID: 60, Role: domain.RoleModerator}, 1)
		assert.NoError(t, err)
	})

	t.Run("other users are denied", func(t *testing.T) {
		_, err := svc.ListAttendees(context.Background(), domain.Actor{ID: 2, Role: domain.RoleUser}, 1)
		assert.ErrorIs(t, err, domain.ErrNotOwner)
	})
}
