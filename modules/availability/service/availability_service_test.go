package service

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"planwise-api/core/errors"
	"planwise-api/core/timeslot"
	"planwise-api/modules/availability/dto"
	"planwise-api/modules/availability/repository"
	groupentity "planwise-api/modules/group/entity"

	"github.com/google/uuid"
)

type memorySlots struct {
	mu      sync.Mutex
	slots   map[uuid.UUID][]timeslot.TimeSlot
	known   map[uuid.UUID]bool
	failErr error
}

func newMemorySlots() *memorySlots {
	return &memorySlots{
		slots: map[uuid.UUID][]timeslot.TimeSlot{},
		known: map[uuid.UUID]bool{},
	}
}

func (m *memorySlots) AppendSlots(_ context.Context, userID uuid.UUID, incoming []timeslot.TimeSlot) ([]timeslot.TimeSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	if !m.known[userID] {
		return nil, repository.ErrUserMissing
	}
	merged := timeslot.Normalize(append(append([]timeslot.TimeSlot{}, m.slots[userID]...), incoming...))
	m.slots[userID] = merged
	return merged, nil
}

func (m *memorySlots) GetSlotsByUserID(_ context.Context, userID uuid.UUID) ([]timeslot.TimeSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	return timeslot.Normalize(m.slots[userID]), nil
}

func (m *memorySlots) GetSlotsByUserIDs(_ context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]timeslot.TimeSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	out := make(map[uuid.UUID][]timeslot.TimeSlot, len(userIDs))
	for _, id := range userIDs {
		out[id] = timeslot.Normalize(m.slots[id])
	}
	return out, nil
}

type stubDirectory struct {
	groupID  uuid.UUID
	password string
	users    map[string]*groupentity.User
}

func (d *stubDirectory) Authenticate(_ context.Context, name string, password string) (uuid.UUID, *errors.AppError) {
	if name != "hikers" {
		return uuid.Nil, errors.NewAppError(errors.ErrNotFound, "group not found", nil)
	}
	if password != d.password {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "invalid group password", nil)
	}
	return d.groupID, nil
}

func (d *stubDirectory) FindUser(_ context.Context, groupID uuid.UUID, username string) (*groupentity.User, *errors.AppError) {
	u, ok := d.users[username]
	if !ok || groupID != d.groupID {
		return nil, errors.NewAppError(errors.ErrNotFound, "user not found in group", nil)
	}
	return u, nil
}

type countingNotifier struct {
	mu    sync.Mutex
	calls int
}

func (n *countingNotifier) NotifyGroupChanged(context.Context, uuid.UUID) {
	n.mu.Lock()
	n.calls++
	n.mu.Unlock()
}

func setupTestService(t *testing.T) (*AvailabilityService, *memorySlots, *stubDirectory, *countingNotifier) {
	t.Helper()
	repo := newMemorySlots()
	alice := &groupentity.User{ID: uuid.New(), Name: "alice"}
	repo.known[alice.ID] = true
	dir := &stubDirectory{
		groupID:  uuid.New(),
		password: "secret",
		users:    map[string]*groupentity.User{"alice": alice},
	}
	notifier := &countingNotifier{}
	svc := NewAvailabilityService(repo, dir, notifier, time.UTC, time.Second)
	return svc, repo, dir, notifier
}

func submitRequest(user string, slots ...dto.SlotRequest) *dto.SubmitAvailabilityRequest {
	return &dto.SubmitAvailabilityRequest{
		UserName:  user,
		GroupName: "hikers",
		Password:  "secret",
		Slots:     slots,
	}
}

func TestSubmit_MergesWithExisting(t *testing.T) {
	svc, _, _, notifier := setupTestService(t)
	ctx := context.Background()

	_, appErr := svc.Submit(ctx, submitRequest("alice",
		dto.SlotRequest{StartTime: "2025-05-01T09:00:00Z", EndTime: "2025-05-01T10:00:00Z"}))
	if appErr != nil {
		t.Fatalf("first submit: %v", appErr)
	}

	resp, appErr := svc.Submit(ctx, submitRequest("alice",
		dto.SlotRequest{StartTime: "2025-05-01T10:00:00Z", EndTime: "2025-05-01T11:00:00Z"},
		dto.SlotRequest{StartTime: "2025-05-01T14:00:00Z", EndTime: "2025-05-01T15:00:00Z"}))
	if appErr != nil {
		t.Fatalf("second submit: %v", appErr)
	}

	if len(resp.Slots) != 2 {
		t.Fatalf("expected 2 merged slots, got %+v", resp.Slots)
	}
	wantStart := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2025, 5, 1, 11, 0, 0, 0, time.UTC)
	if !resp.Slots[0].StartTime.Equal(wantStart) || !resp.Slots[0].EndTime.Equal(wantEnd) {
		t.Fatalf("touching slots were not merged: %+v", resp.Slots[0])
	}
	if notifier.calls != 2 {
		t.Fatalf("expected 2 change notifications, got %d", notifier.calls)
	}
}

func TestSubmit_ZonelessTimestampUsesDefaultLocation(t *testing.T) {
	svc, repo, dir, _ := setupTestService(t)
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	svc.location = berlin

	_, appErr := svc.Submit(context.Background(), submitRequest("alice",
		dto.SlotRequest{StartTime: "2025-05-01T09:00:00", EndTime: "2025-05-01T10:00:00"}))
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}

	stored := repo.slots[dir.users["alice"].ID]
	want := time.Date(2025, 5, 1, 7, 0, 0, 0, time.UTC)
	if len(stored) != 1 || !stored[0].Start.Equal(want) {
		t.Fatalf("expected start %v, got %+v", want, stored)
	}
}

func TestSubmit_Errors(t *testing.T) {
	tests := []struct {
		name string
		req  *dto.SubmitAvailabilityRequest
		want errors.ErrorCode
	}{
		{
			name: "start after end",
			req: submitRequest("alice",
				dto.SlotRequest{StartTime: "2025-05-01T10:00:00Z", EndTime: "2025-05-01T09:00:00Z"}),
			want: errors.ErrInvalidInput,
		},
		{
			name: "zero length",
			req: submitRequest("alice",
				dto.SlotRequest{StartTime: "2025-05-01T10:00:00Z", EndTime: "2025-05-01T10:00:00Z"}),
			want: errors.ErrInvalidInput,
		},
		{
			name: "unparseable",
			req: submitRequest("alice",
				dto.SlotRequest{StartTime: "tomorrow", EndTime: "2025-05-01T10:00:00Z"}),
			want: errors.ErrInvalidInput,
		},
		{
			name: "unknown user",
			req: submitRequest("bob",
				dto.SlotRequest{StartTime: "2025-05-01T09:00:00Z", EndTime: "2025-05-01T10:00:00Z"}),
			want: errors.ErrNotFound,
		},
	}

	wrongPassword := submitRequest("alice",
		dto.SlotRequest{StartTime: "2025-05-01T09:00:00Z", EndTime: "2025-05-01T10:00:00Z"})
	wrongPassword.Password = "nope"
	tests = append(tests, struct {
		name string
		req  *dto.SubmitAvailabilityRequest
		want errors.ErrorCode
	}{"wrong password", wrongPassword, errors.ErrUnauthorized})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _, notifier := setupTestService(t)
			_, appErr := svc.Submit(context.Background(), tt.req)
			if appErr == nil || appErr.Code != tt.want {
				t.Fatalf("expected %s, got %v", tt.want, appErr)
			}
			for id, slots := range repo.slots {
				if len(slots) > 0 {
					t.Fatalf("nothing should be stored, user %s has %v", id, slots)
				}
			}
			if notifier.calls != 0 {
				t.Fatalf("no notification expected on failure")
			}
		})
	}
}

func TestAppend_StoreErrors(t *testing.T) {
	svc, repo, _, _ := setupTestService(t)
	slot := []timeslot.TimeSlot{{
		Start: time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC),
	}}

	_, appErr := svc.Append(context.Background(), uuid.New(), slot)
	if appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Fatalf("expected NOT_FOUND for unknown user, got %v", appErr)
	}

	repo.failErr = stderrors.New("connection refused")
	_, appErr = svc.Append(context.Background(), uuid.New(), slot)
	if appErr == nil || appErr.Code != errors.ErrUnavailable {
		t.Fatalf("expected UNAVAILABLE, got %v", appErr)
	}
}

func TestSlotsForUsers_IncludesUsersWithoutSlots(t *testing.T) {
	svc, repo, dir, _ := setupTestService(t)
	alice := dir.users["alice"].ID
	ghost := uuid.New()
	repo.slots[alice] = []timeslot.TimeSlot{{
		Start: time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC),
	}}

	got, appErr := svc.SlotsForUsers(context.Background(), []uuid.UUID{alice, ghost})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if len(got[alice]) != 1 {
		t.Fatalf("expected alice to have one slot, got %v", got[alice])
	}
	if slots, ok := got[ghost]; !ok || len(slots) != 0 {
		t.Fatalf("expected empty entry for user without slots, got %v (present=%v)", slots, ok)
	}
}

func TestListForUser(t *testing.T) {
	svc, _, dir, _ := setupTestService(t)

	resp, appErr := svc.ListForUser(context.Background(), dir.groupID, "alice")
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if resp.UserID != dir.users["alice"].ID || len(resp.Slots) != 0 {
		t.Fatalf("unexpected response: %+v", resp)
	}

	if _, appErr := svc.ListForUser(context.Background(), dir.groupID, "bob"); appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", appErr)
	}
}
